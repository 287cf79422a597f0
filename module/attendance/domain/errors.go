package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInUse               = errors.New("still in use")
	ErrNotEligible         = errors.New("outside establishment radius")
	ErrInvalidSequence     = errors.New("invalid clock sequence")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
)
