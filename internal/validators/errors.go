package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername    = errors.New("username is required")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrResponseTooLong  = errors.New("auth message response is too long")
	ErrEmptyCommand     = errors.New("cmd cannot be empty")
	ErrEmptyCommandPart = errors.New("cmd elements cannot be empty")
	ErrInvalidEnv       = errors.New("env entries must be KEY=VALUE")
)
