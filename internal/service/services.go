package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/store"
	"github.com/MKhiriev/go-greeter/internal/utils"
)

type Services struct {
	Launcher LaunchDispatcher
	Remember RememberService
	Sessions *SessionPicker

	conversation ConversationConfig
	ids          IDGenerator
	logger       *logger.Logger
}

// NewServices wires the greeter services. The session picker is loaded from
// the catalogue once; the default session comes from cfg, then from the
// remembered login.
func NewServices(ctx context.Context, storages *store.Storages, cfg *config.GreeterConfig, logger *logger.Logger) (*Services, error) {
	entries, err := storages.Sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	picker, err := NewSessionPicker(entries, cfg.Launch.FallbackCommand)
	if err != nil {
		return nil, err
	}

	remember := NewRememberService(storages.Remember, logger)

	defaultSession := cfg.Conversation.DefaultSession
	if defaultSession == "" {
		if r, ok := remember.Recall(ctx); ok {
			defaultSession = r.Session
		}
	}
	if defaultSession != "" && !picker.Select(defaultSession) {
		logger.Warn().Str("session", defaultSession).Msg("default session not found, using first entry")
	}

	return &Services{
		Launcher: NewLaunchDispatcher(cfg.Launch, logger),
		Remember: remember,
		Sessions: picker,
		conversation: ConversationConfig{
			DefaultUsername: cfg.Conversation.DefaultUsername,
			MaxPromptRounds: cfg.Conversation.MaxPromptRounds,
		},
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

// NewConversation returns a fresh conversation tagged with a new
// conversation_id. The identity field is pre-filled from the remembered
// login when no default username is configured.
func (s *Services) NewConversation(ctx context.Context) *Conversation {
	conv := NewConversation(s.conversation, s.logger.WithConversation(s.ids.Generate()))
	if r, ok := s.Remember.Recall(ctx); ok {
		conv.Prefill(r.Username)
	}
	return conv
}
