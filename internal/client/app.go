package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/internal/app"
	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/service"
	"github.com/MKhiriev/go-greeter/internal/store"
	"github.com/MKhiriev/go-greeter/internal/tui"
	"github.com/MKhiriev/go-greeter/models"
)

// loginFunc runs the interactive part of a login until the conversation is
// authenticated. It returns the connection the conversation ended on.
type loginFunc func(ctx context.Context, conv *service.Conversation, sessions *service.SessionPicker, transport adapter.Transport) (tui.Result, error)

type App struct {
	storages *store.Storages
	services *service.Services
	dialer   adapter.Dialer
	login    loginFunc
	guard    *tui.TerminalGuard
	logger   *logger.Logger
}

// NewApp wires storage, services, the daemon dialer, and the terminal UI.
// It fails when stdin is not a terminal or no session can be offered.
func NewApp(ctx context.Context, cfg *config.GreeterConfig, log *logger.Logger) (*App, error) {
	guard, err := tui.NewTerminalGuard(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("check terminal: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	services, err := service.NewServices(ctx, storages, cfg, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	dialer := adapter.NewSocketDialer(cfg.Adapter, log)
	ui := tui.New(dialer, log)

	return &App{
		storages: storages,
		services: services,
		dialer:   dialer,
		login:    ui.LoginFlow,
		guard:    guard,
		logger:   log,
	}, nil
}

// Run performs one login: it connects to the daemon, runs the login screen
// until authentication succeeds, starts the selected session, and remembers
// the login. It returns nil only after the daemon accepted start_session.
// The terminal is restored before Run returns.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if restoreErr := a.guard.Restore(); restoreErr != nil {
			a.logger.Err(restoreErr).Msg("restore terminal")
		}
		if closeErr := a.storages.Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("close storages")
		}
	}()

	transport, err := a.dialer.Dial(ctx)
	if err != nil {
		return fmt.Errorf("connect to session daemon: %w", err)
	}

	conv := a.services.NewConversation(ctx)
	result, err := a.login(ctx, conv, a.services.Sessions, transport)
	if result.Transport != nil {
		defer func() {
			if closeErr := result.Transport.Close(); closeErr != nil {
				a.logger.Debug().Err(closeErr).Msg("close session daemon connection")
			}
		}()
	}
	if err != nil {
		return err
	}
	if result.Transport == nil {
		return fmt.Errorf("%w: no connection after login", adapter.ErrConnClosed)
	}

	entry := a.services.Sessions.Current()
	if err = a.services.Launcher.Launch(ctx, result.Transport, conv, entry); err != nil {
		return err
	}

	a.services.Remember.Remember(ctx, models.Remembered{
		Username: conv.Identity(),
		Session:  entry.Name,
	})
	a.logger.Info().Str("username", conv.Identity()).Str("session", entry.Name).Msg("login complete")
	return nil
}

// UserMessage returns the wording shown to the user for an error that ended
// the greeter.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, tui.ErrUserQuit):
		return app.MsgUserQuit
	case errors.Is(err, tui.ErrNotATerminal):
		return app.MsgNotATerminal
	case errors.Is(err, service.ErrNoSessions):
		return app.MsgNoSessions
	case errors.Is(err, service.ErrLaunchRejected):
		return app.MsgLaunchRejected
	case errors.Is(err, adapter.ErrConnect):
		return app.MsgDaemonUnreachable
	case errors.Is(err, adapter.ErrIO), errors.Is(err, adapter.ErrPeerDisconnected):
		return app.MsgConnectionLost
	case errors.Is(err, adapter.ErrFraming), errors.Is(err, adapter.ErrProtocolViolation):
		return app.MsgProtocolError
	case isConfigError(err):
		return app.MsgInvalidConfig
	}
	return app.MsgUnexpectedError
}

func isConfigError(err error) bool {
	return errors.Is(err, config.ErrMissingSocket) ||
		errors.Is(err, config.ErrInvalidAdapterConfigs) ||
		errors.Is(err, config.ErrInvalidConversationConfigs) ||
		errors.Is(err, config.ErrInvalidLaunchConfigs)
}
