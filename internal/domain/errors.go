package domain

import "errors"

var (
	ErrInvalidShift      = errors.New("invalid shift")
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrDuplicateKey      = errors.New("duplicate schedule key")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrInvalidSaleReport = errors.New("invalid sale report")
	ErrSecretNotFound    = errors.New("secret not found")
)
