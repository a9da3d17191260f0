package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/service"
)

// Result is what the login screen leaves behind.
type Result struct {
	// Transport is the connection the conversation ended on. It is set even
	// when Run fails, so the caller can close it.
	Transport adapter.Transport
}

type TUI struct {
	dialer adapter.Dialer
	logger *logger.Logger

	// options are extra program options; tests use them to swap the
	// terminal for buffers.
	options []tea.ProgramOption
}

func New(dialer adapter.Dialer, log *logger.Logger) *TUI {
	return &TUI{dialer: dialer, logger: log}
}

// WithIO returns a copy of t that reads keys from in and draws to out instead
// of the controlling terminal.
func (t *TUI) WithIO(in io.Reader, out io.Writer) *TUI {
	c := *t
	c.options = append(append([]tea.ProgramOption(nil), t.options...), tea.WithInput(in), tea.WithOutput(out))
	return &c
}

// LoginFlow runs the login screen on transport until conv is authenticated.
// It returns [ErrUserQuit] on ctrl+c and the conversation's fatal error when
// the daemon conversation cannot continue.
func (t *TUI) LoginFlow(
	ctx context.Context,
	conv *service.Conversation,
	sessions *service.SessionPicker,
	transport adapter.Transport,
) (Result, error) {
	model := NewLoginModel(ctx, conv, sessions, t.dialer, transport, t.logger)

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, t.options...)
	finalModel, runErr := tea.NewProgram(model, opts...).Run()

	result, ok := finalModel.(*LoginModel)
	if !ok || result == nil {
		result = model
	}
	out := Result{Transport: result.Transport()}

	switch {
	case result.Err() != nil:
		return out, result.Err()
	case runErr != nil:
		return out, runErr
	case result.QuitByUser():
		return out, ErrUserQuit
	case !conv.Authenticated():
		return out, ErrNotAuthenticated
	}
	return out, nil
}
