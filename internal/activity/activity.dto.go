package activity

type CreateActivityRequest struct {
	UserID      string `json:"userId" validate:"required"`
	TemplateID  string `json:"templateId,omitempty"`
	Date        string `json:"date" validate:"required"`
	Note        string `json:"note,omitempty"`
	Mood        string `json:"mood,omitempty"`
	CustomTitle string `json:"customTitle,omitempty"`
}
