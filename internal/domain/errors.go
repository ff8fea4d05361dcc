package domain

import "errors"

var (
	ErrNoActiveProfile    = errors.New("no active profile")
	ErrPrintingNotAllowed = errors.New("printing not allowed")
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid")
)
