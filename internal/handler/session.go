package handler

import (
	"context"

	"github.com/MKhiriev/go-greeter/internal/crypto"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/validators"
	"github.com/MKhiriev/go-greeter/models"
)

type promptPurpose int

const (
	purposeBanner promptPurpose = iota
	purposePassword
	purposeOTP
)

type pendingPrompt struct {
	purpose promptPurpose
	msg     models.AuthMessage
}

// Session is the daemon side of one connection: at most one login
// conversation at a time, driven by the requests the greeter sends. It is
// not safe for concurrent use.
type Session struct {
	users     *UserDirectory
	verifier  crypto.PasswordVerifier
	validator validators.Validator

	active        bool
	username      string
	user          User
	known         bool
	queue         []pendingPrompt
	authenticated bool
}

func newSession(users *UserDirectory, verifier crypto.PasswordVerifier, validator validators.Validator) *Session {
	return &Session{users: users, verifier: verifier, validator: validator}
}

// Handle answers one request. It logs through the logger attached to ctx.
func (s *Session) Handle(ctx context.Context, req models.Request) models.Response {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("request", req.RequestType()).Msg("invalid request")
		return genericError(err.Error())
	}

	switch r := req.(type) {
	case models.CreateSession:
		return s.create(log, r)
	case models.PostAuthMessageResponse:
		return s.answer(log, r)
	case models.StartSession:
		return s.start(log, r)
	case models.CancelSession:
		log.Debug().Str("username", s.username).Msg("session cancelled")
		s.reset()
		return models.Success{}
	}
	return genericError(descMalformedRequest)
}

func (s *Session) create(log *logger.Logger, req models.CreateSession) models.Response {
	if s.active {
		return genericError(descAlreadyConfiguring)
	}

	s.active = true
	s.username = req.Username
	s.user, s.known = s.users.Lookup(req.Username)
	log.Info().Str("username", req.Username).Bool("known", s.known).Msg("session created")

	if s.known && s.user.Banner != "" {
		s.queue = append(s.queue, pendingPrompt{
			purpose: purposeBanner,
			msg:     models.AuthMessage{Kind: models.AuthMessageInfo, Text: s.user.Banner},
		})
	}
	s.queue = append(s.queue, pendingPrompt{
		purpose: purposePassword,
		msg:     models.AuthMessage{Kind: models.AuthMessageSecret, Text: "Password:"},
	})
	if s.known && s.user.OTP != "" {
		s.queue = append(s.queue, pendingPrompt{
			purpose: purposeOTP,
			msg:     models.AuthMessage{Kind: models.AuthMessageVisible, Text: "OTP:"},
		})
	}

	return s.queue[0].msg
}

func (s *Session) answer(log *logger.Logger, req models.PostAuthMessageResponse) models.Response {
	if !s.active {
		return genericError(descNoSession)
	}
	if len(s.queue) == 0 {
		return genericError(descNoPromptPending)
	}

	current := s.queue[0]
	s.queue = s.queue[1:]

	reply := ""
	if req.Response != nil {
		reply = *req.Response
	}

	if !s.accept(current.purpose, reply) {
		log.Info().Str("username", s.username).Msg("authentication failed")
		s.reset()
		return models.ErrorResponse{Kind: models.ErrorKindAuth, Description: descAuthFailed}
	}

	if len(s.queue) > 0 {
		return s.queue[0].msg
	}

	s.authenticated = true
	log.Info().Str("username", s.username).Msg("authenticated")
	return models.Success{}
}

func (s *Session) accept(purpose promptPurpose, reply string) bool {
	switch purpose {
	case purposeBanner:
		return true
	case purposePassword:
		if !s.known {
			return s.verifier.VerifyUnknown(reply)
		}
		return s.verifier.Verify(s.user.PasswordHash, reply)
	case purposeOTP:
		return reply == s.user.OTP
	}
	return false
}

func (s *Session) start(log *logger.Logger, req models.StartSession) models.Response {
	if !s.active || !s.authenticated {
		return genericError(descNotAuthenticated)
	}

	log.Info().
		Str("username", s.username).
		Strs("cmd", req.Cmd).
		Strs("env", req.Env).
		Msg("session started")
	s.reset()
	return models.Success{}
}

func (s *Session) reset() {
	s.active = false
	s.username = ""
	s.user = User{}
	s.known = false
	s.queue = nil
	s.authenticated = false
}

func genericError(description string) models.ErrorResponse {
	return models.ErrorResponse{Kind: models.ErrorKindGeneric, Description: description}
}
