// Package seed holds the built-in good deed catalog used to (re)seed
// the template store.
package seed

import "github.com/kami8ma8810/ichizen-app/internal/template"

type entry struct {
	title       string
	description string
	category    template.Category
	difficulty  template.Difficulty
	tags        string
}

var catalog = []entry{
	{"家族に「おはよう」を明るく言う", "朝の挨拶で一日を気持ちよくスタート", template.CategoryKindness, template.DifficultyEasy, "家族,挨拶,朝"},
	{"配偶者のコーヒーを淹れる", "忙しい朝に一杯のコーヒーでサポート", template.CategoryKindness, template.DifficultyEasy, "家族,サポート,朝"},
	{"子どもの話を最後まで聞く", "忙しくても子どもの話に耳を傾ける", template.CategoryKindness, template.DifficultyEasy, "家族,子ども,傾聴"},
	{"両親に安否確認の連絡をする", "「元気？」の一言で安心してもらう", template.CategoryKindness, template.DifficultyEasy, "家族,両親,連絡"},
	{"兄弟姉妹に近況を聞く", "久しぶりの連絡で関係を温める", template.CategoryKindness, template.DifficultyEasy, "家族,兄弟,連絡"},
	{"誰かに「ありがとう」を伝える", "感謝の気持ちを言葉にする", template.CategoryKindness, template.DifficultyEasy, "感謝,言葉"},
	{"笑顔で挨拶する", "明るく元気に声をかける", template.CategoryKindness, template.DifficultyEasy, "挨拶,笑顔"},

	{"同僚に「お疲れさま」と声をかける", "一言でも相手の気持ちが軽くなります", template.CategoryWork, template.DifficultyEasy, "職場,挨拶,仕事の日"},
	{"会議室のホワイトボードを消す", "次の人が気持ちよく使えるように", template.CategoryWork, template.DifficultyEasy, "職場,清掃,仕事の日"},
	{"コピー機の紙を補充する", "気づいたときにサッと補充", template.CategoryWork, template.DifficultyEasy, "職場,気遣い,仕事の日"},
	{"エレベーターで他の人を待つ", "急いでいても2-3秒待ってあげる", template.CategoryWork, template.DifficultyEasy, "職場,親切,仕事の日"},
	{"プリンターの紙を補充する", "用紙切れに気づいたら新しい紙をセットする", template.CategoryWork, template.DifficultyEasy, "プリンター,紙,補充"},

	{"朝のコーヒーを作って渡す", "パートナーが起きる前に温かいコーヒーを準備する", template.CategoryFamily, template.DifficultyEasy, "コーヒー,朝,思いやり"},
	{"帰宅時に「お疲れさま」と声をかける", "玄関で温かい言葉で迎える", template.CategoryFamily, template.DifficultyEasy, "挨拶,労い,帰宅"},
	{"子どもの話を膝の上で聞く", "子どもが話したがっている時に膝に座らせて聞く", template.CategoryFamily, template.DifficultyEasy, "子ども,膝の上,傾聴"},
	{"週に一度は電話をかける", "「元気？」と安否確認の電話をする", template.CategoryFamily, template.DifficultyEasy, "電話,安否確認,定期連絡"},
	{"家族全員で食事をする", "みんなでテーブルを囲んで食事を楽しむ", template.CategoryFamily, template.DifficultyEasy, "食事,家族団らん,時間"},

	{"近所の人に明るく挨拶する", "顔を合わせたら笑顔で「おはようございます」", template.CategoryCommunity, template.DifficultyEasy, "挨拶,近所,笑顔"},
	{"お隣さんの郵便物を預かる", "不在の際に配達員から郵便物を受け取って預かる", template.CategoryCommunity, template.DifficultyEasy, "郵便,近所,助け合い"},
	{"公共交通機関で席を譲る", "妊婦さんや高齢者、体の不自由な方に席を譲る", template.CategoryCommunity, template.DifficultyEasy, "席譲り,公共交通,思いやり"},
	{"地域の清掃活動に参加する", "月1回の地域清掃に参加してゴミ拾いをする", template.CategoryCommunity, template.DifficultyMedium, "清掃活動,ゴミ拾い,参加"},
	{"近所の子どもたちに「おかえり」と声をかける", "学校から帰ってくる子どもたちに温かく声をかける", template.CategoryCommunity, template.DifficultyEasy, "子ども,声かけ,見守り"},

	{"マイバッグを持参して買い物する", "レジ袋を使わずエコバッグで買い物する", template.CategoryEnvironment, template.DifficultyEasy, "マイバッグ,買い物,レジ袋削減"},
	{"使わない部屋の電気を消す", "誰もいない部屋の照明をこまめに消して節電する", template.CategoryEnvironment, template.DifficultyEasy, "節電,省エネ,電気代節約"},
	{"マイボトルで水分補給する", "ペットボトルの代わりに水筒を持参する", template.CategoryEnvironment, template.DifficultyEasy, "マイボトル,水筒,ペットボトル削減"},
	{"ペットボトルのラベルを剥がす", "リサイクル効率を上げるためラベルとキャップを分別", template.CategoryEnvironment, template.DifficultyEasy, "ペットボトル,ラベル,リサイクル"},
	{"虫を殺さずに外に逃がす", "家に入った虫を殺さずに優しく外へ誘導", template.CategoryEnvironment, template.DifficultyEasy, "虫,生き物,共生"},
	{"道に落ちているゴミを拾う", "小さなゴミでも街をきれいに", template.CategoryEnvironment, template.DifficultyEasy, "ゴミ拾い,街"},

	{"階段を使って移動する", "エレベーターの代わりに階段で軽い運動", template.CategoryHealth, template.DifficultyEasy, "階段,運動,体力"},
	{"1分間のストレッチをする", "首や肩の簡単なストレッチで血行促進", template.CategoryHealth, template.DifficultyEasy, "ストレッチ,血行,肩こり"},
	{"コップ一杯の水を飲む", "水分補給で体の巡りを良くする", template.CategoryHealth, template.DifficultyEasy, "水分補給,デトックス,代謝"},
	{"5分間瞑想する", "目を閉じて呼吸に集中し心を落ち着ける", template.CategoryHealth, template.DifficultyEasy, "瞑想,呼吸,集中"},
	{"寝る1時間前にスマホを見ない", "ブルーライトを避けて質の良い睡眠を準備", template.CategoryHealth, template.DifficultyMedium, "睡眠,スマホ,ブルーライト"},

	{"今日の失敗から学びを見つける", "うまくいかなかった事から改善点を考える", template.CategoryPersonal, template.DifficultyEasy, "失敗,学び,改善"},
	{"今日良いことを3つ思い出す", "どんな小さなことでも嬉しかった出来事を見つける", template.CategoryPersonal, template.DifficultyEasy, "感謝,ポジティブ,幸せ"},
	{"知らない単語を1つ調べる", "今日聞いた言葉で意味が曖昧なものを辞書で確認する", template.CategoryPersonal, template.DifficultyEasy, "語彙,学習,知識"},
	{"姿勢を正す", "背筋を伸ばして正しい姿勢を30秒間保つ", template.CategoryPersonal, template.DifficultyEasy, "姿勢,健康,習慣"},

	{"コンビニの募金箱に小銭を入れる", "お釣りの小銭を災害支援や福祉団体に寄付", template.CategoryCharity, template.DifficultyEasy, "募金,小銭,災害支援"},
	{"古着をリサイクルボックスに入れる", "着なくなった衣類を回収ボックスに寄付", template.CategoryCharity, template.DifficultyEasy, "古着,リサイクル,衣類寄付"},
	{"献血に協力する", "献血ルームや献血車で血液を提供する", template.CategoryCharity, template.DifficultyMedium, "献血,医療支援,血液提供"},
	{"支援情報をSNSでシェア", "災害支援や慈善活動の情報を拡散する", template.CategoryCharity, template.DifficultyEasy, "SNS,情報拡散,支援情報"},

	{"子どもの質問に丁寧に答える", "子どもの疑問に時間をかけて説明してあげる", template.CategoryEducation, template.DifficultyEasy, "子ども,質問,説明"},
	{"同僚の分からない操作を教える", "困っている同僚にパソコンやツールの使い方を説明する", template.CategoryEducation, template.DifficultyEasy, "同僚,操作説明,職場"},
	{"読んだ本の感想をSNSでシェアする", "読書後の気づきや学びを他の人にも共有する", template.CategoryEducation, template.DifficultyEasy, "読書,感想,SNS,共有"},
}

// Catalog returns a fresh copy of the built-in templates. IDs and
// timestamps are assigned by the store.
func Catalog() []*template.GoodDeedTemplate {
	out := make([]*template.GoodDeedTemplate, 0, len(catalog))
	for _, e := range catalog {
		out = append(out, &template.GoodDeedTemplate{
			Title:       e.title,
			Description: e.description,
			Category:    e.category,
			Difficulty:  e.difficulty,
			Tags:        e.tags,
			IsActive:    true,
		})
	}
	return out
}
