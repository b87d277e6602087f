package services

import "time"

// timeNow is swapped out in tests to pin "today".
var timeNow = time.Now
