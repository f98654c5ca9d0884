package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrConflict           = errors.New("CONFLICT")
	ErrVersionConflict    = errors.New("VERSION_CONFLICT")
	ErrValidation         = errors.New("VALIDATION")
	ErrCategoryInUse      = errors.New("CATEGORY_IN_USE")
	ErrCategoryCycle      = errors.New("CATEGORY_CYCLE")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
)
