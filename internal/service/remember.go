package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/store"
	"github.com/MKhiriev/go-greeter/models"
)

type rememberService struct {
	repo   store.RememberRepository
	logger *logger.Logger
}

// NewRememberService returns a [RememberService] backed by repo. A nil repo
// yields a service that remembers nothing.
func NewRememberService(repo store.RememberRepository, log *logger.Logger) RememberService {
	return &rememberService{repo: repo, logger: log}
}

func (s *rememberService) Recall(ctx context.Context) (models.Remembered, bool) {
	if s.repo == nil {
		return models.Remembered{}, false
	}

	r, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNothingRemembered) {
			s.logger.Err(err).Msg("load remembered login")
		}
		return models.Remembered{}, false
	}
	return r, true
}

func (s *rememberService) Remember(ctx context.Context, r models.Remembered) {
	if s.repo == nil || r.Username == "" {
		return
	}

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.Err(err).Msg("save remembered login")
		return
	}
	s.logger.Debug().Str("username", r.Username).Str("session", r.Session).Msg("login remembered")
}
