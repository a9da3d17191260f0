package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-greeter/models"
)

const (
	FieldUsername = "username"
	FieldResponse = "response"
	FieldCmd      = "cmd"
	FieldEnv      = "env"
)

const (
	maxUsernameLength = 256
	maxResponseLength = 4096
)

// RequestValidator checks daemon requests before the fake session daemon
// acts on them.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateSession:
		return v.validateCreateSession(ctx, value, fields...)
	case *models.CreateSession:
		return v.validateCreateSession(ctx, *value, fields...)

	case models.PostAuthMessageResponse:
		return v.validatePostAuthMessageResponse(ctx, value, fields...)
	case *models.PostAuthMessageResponse:
		return v.validatePostAuthMessageResponse(ctx, *value, fields...)

	case models.StartSession:
		return v.validateStartSession(ctx, value, fields...)
	case *models.StartSession:
		return v.validateStartSession(ctx, *value, fields...)

	case models.CancelSession, *models.CancelSession:
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateCreateSession(ctx context.Context, req models.CreateSession, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if req.Username == "" {
				return ErrEmptyUsername
			}
			if len(req.Username) > maxUsernameLength || strings.ContainsFunc(req.Username, unicode.IsControl) {
				return ErrInvalidUsername
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePostAuthMessageResponse(ctx context.Context, req models.PostAuthMessageResponse, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResponse}
	}

	for _, f := range fields {
		switch f {
		case FieldResponse:
			if req.Response != nil && len(*req.Response) > maxResponseLength {
				return ErrResponseTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateStartSession(ctx context.Context, req models.StartSession, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCmd, FieldEnv}
	}

	for _, f := range fields {
		switch f {
		case FieldCmd:
			if len(req.Cmd) == 0 {
				return ErrEmptyCommand
			}
			for _, part := range req.Cmd {
				if strings.TrimSpace(part) == "" {
					return ErrEmptyCommandPart
				}
			}
		case FieldEnv:
			for _, kv := range req.Env {
				key, _, ok := strings.Cut(kv, "=")
				if !ok || key == "" {
					return ErrInvalidEnv
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
