package service

import "errors"

// ErrValidation wraps every request-shape failure so handlers can map the
// whole family to a 400 without inspecting messages.
var ErrValidation = errors.New("validation failed")
