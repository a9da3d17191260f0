// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/internal/app"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/service"
	"github.com/MKhiriev/go-greeter/models"
)

// clockInterval is how often the clock is redrawn.
const clockInterval = 30 * time.Second

// LoginModel is the Bubble Tea model for the login screen. The conversation
// owns all form state; the model turns key events into conversation
// keystrokes, runs each requested round trip as a command, and feeds the
// answer back in Update. The program quits once the conversation is
// authenticated, on a fatal error, or on ctrl+c.
type LoginModel struct {
	ctx       context.Context
	cancel    context.CancelFunc
	conv      *service.Conversation
	sessions  *service.SessionPicker
	dialer    adapter.Dialer
	transport adapter.Transport
	logger    *logger.Logger

	identity textinput.Model
	reply    textinput.Model
	spinner  spinner.Model

	now      func() time.Time
	clock    time.Time
	hostname string

	err        error
	quitByUser bool
}

// NewLoginModel creates a [LoginModel] for conv. transport is the connection
// dialed at startup; dialer opens replacements when the conversation asks for
// a fresh connection.
func NewLoginModel(
	ctx context.Context,
	conv *service.Conversation,
	sessions *service.SessionPicker,
	dialer adapter.Dialer,
	transport adapter.Transport,
	log *logger.Logger,
) *LoginModel {
	identity := textinput.New()
	identity.Placeholder = "username"
	identity.CharLimit = 256
	identity.Width = 32
	identity.Cursor.SetMode(cursor.CursorStatic)

	reply := textinput.New()
	reply.CharLimit = 1024
	reply.Width = 32
	reply.EchoCharacter = '*'
	reply.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	hostname, _ := os.Hostname()

	ctx, cancel := context.WithCancel(ctx)
	m := &LoginModel{
		ctx:       ctx,
		cancel:    cancel,
		conv:      conv,
		sessions:  sessions,
		dialer:    dialer,
		transport: transport,
		logger:    log,
		identity:  identity,
		reply:     reply,
		spinner:   sp,
		now:       time.Now,
		hostname:  hostname,
	}
	m.clock = m.now()
	m.syncInputs()
	return m
}

// Init implements [tea.Model].
func (m *LoginModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		m.spinner.Tick,
		tickClock(),
	)
}

// Update implements [tea.Model]. Handled messages:
//   - startMsg     issues create_session when a default username is set.
//   - responseMsg  feeds the daemon's answer to the conversation.
//   - clockMsg     redraws the clock and schedules the next tick.
//   - key events   session picker keys, ctrl+c, and form keystrokes.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.syncInputs()
	return model, cmd
}

func (m *LoginModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		step, err := m.conv.Start()
		if err != nil {
			return m.fail(err)
		}
		return m, m.dispatch(step)
	case responseMsg:
		return m.handleResponse(msg)
	case clockMsg:
		m.clock = time.Time(msg)
		return m, tickClock()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *LoginModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m.quit()
	case key.Matches(msg, keys.nextSession):
		m.sessions.Next()
		return m, nil
	case key.Matches(msg, keys.prevSession):
		m.sessions.Prev()
		return m, nil
	}

	var cmds []tea.Cmd
	for _, k := range conversationKeys(msg) {
		step, err := m.conv.HandleKey(k)
		if err != nil {
			return m.fail(err)
		}
		cmds = append(cmds, m.dispatch(step))
	}
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) handleResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	if msg.transport != nil {
		m.transport = msg.transport
	}
	if msg.err != nil {
		return m.fail(msg.err)
	}

	step, err := m.conv.HandleResponse(msg.resp)
	if err != nil {
		return m.fail(err)
	}
	if m.conv.Authenticated() {
		return m.quit()
	}
	return m, m.dispatch(step)
}

// dispatch turns a conversation step into a command. A reconnect drops the
// current connection; the next request then goes out on a freshly dialed one.
func (m *LoginModel) dispatch(step service.Step) tea.Cmd {
	if step.Idle() {
		return nil
	}
	if step.Reconnect && m.transport != nil {
		if err := m.transport.Close(); err != nil {
			m.logger.Debug().Err(err).Msg("close connection before reconnect")
		}
		m.transport = nil
	}
	if step.Request == nil {
		return nil
	}
	return roundTrip(m.ctx, m.dialer, m.transport, step.Request)
}

func roundTrip(ctx context.Context, dialer adapter.Dialer, t adapter.Transport, req models.Request) tea.Cmd {
	return func() tea.Msg {
		dialed := t == nil
		if dialed {
			fresh, err := dialer.Dial(ctx)
			if err != nil {
				return responseMsg{err: err}
			}
			t = fresh
		}

		resp, err := t.RoundTrip(ctx, req)
		if dialed && ctx.Err() != nil {
			// модель уже вышла и не заберёт это соединение
			_ = t.Close()
			return responseMsg{err: ctx.Err()}
		}
		return responseMsg{transport: t, resp: resp, err: err}
	}
}

func (m *LoginModel) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Err(err).Str("state", m.conv.State().String()).Msg("conversation ended with error")
	m.err = err
	return m.quit()
}

// quit stops the program and cancels round trips still in flight.
func (m *LoginModel) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func tickClock() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// syncInputs copies the conversation's view into the text inputs.
func (m *LoginModel) syncInputs() {
	v := m.conv.Snapshot()

	m.identity.SetValue(v.Username)
	m.identity.CursorEnd()
	m.reply.SetValue(v.Reply)
	m.reply.CursorEnd()

	m.reply.Placeholder = ""
	m.reply.EchoMode = textinput.EchoNormal
	if v.Masked() {
		m.reply.EchoMode = textinput.EchoPassword
	}

	if v.Focus == service.FieldIdentity {
		m.identity.Focus()
		m.reply.Blur()
	} else {
		m.identity.Blur()
		m.reply.Focus()
	}
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	v := m.conv.Snapshot()

	var b strings.Builder

	for _, notice := range v.Notices {
		b.WriteString(noticeStyle.Render(notice))
		b.WriteString("\n")
	}
	if len(v.Notices) > 0 {
		b.WriteString("\n")
	}

	session := m.sessions.Current()
	b.WriteString(labelStyle.Render("session"))
	b.WriteString("< ")
	b.WriteString(sessionStyle.Render(fitText(session.Name, 28)))
	b.WriteString(" >")
	if session.Kind != "" {
		b.WriteString(helpStyle.Render(" " + string(session.Kind)))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("login"))
	b.WriteString(m.identity.View())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(promptLabel(v)))
	b.WriteString(m.reply.View())

	if v.Busy {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" waiting for session daemon")
	}

	title := titleStyle.Render(v.Title)
	if v.State == service.StateFailed || v.Title == app.MsgTitleLoginFailed {
		title = errorStyle.Render(v.Title)
	}

	page := renderPage(
		header(m.hostname, formatClock(m.clock)),
		title,
		b.String(),
		app.MsgHotKeys,
	)
	return appStyle.Render(page)
}

// promptLabel names the reply field after the daemon's prompt, trimmed of the
// trailing colon the label style already implies.
func promptLabel(v service.View) string {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.PromptText), ":"))
	if text == "" {
		return "password"
	}
	return strings.ToLower(fitText(text, 9))
}

// Transport returns the connection the conversation currently runs on. It may
// differ from the one passed to [NewLoginModel] after a reconnect, and is nil
// if the last reconnect has not dialed yet.
func (m *LoginModel) Transport() adapter.Transport { return m.transport }

// Err returns the fatal error that ended the program, if any.
func (m *LoginModel) Err() error { return m.err }

// QuitByUser reports whether the program was closed with ctrl+c.
func (m *LoginModel) QuitByUser() bool { return m.quitByUser }
