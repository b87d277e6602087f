package services

import "errors"

// ErrValidation marks request-shape problems surfaced as 400s.
var ErrValidation = errors.New("invalid request")
