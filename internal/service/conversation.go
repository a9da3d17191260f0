// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-greeter/internal/app"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

// State is a step of the login conversation.
type State int

const (
	// StateUnauthenticated: no session has been created yet.
	StateUnauthenticated State = iota
	// StateAwaitingCreateAck: create_session sent.
	StateAwaitingCreateAck
	// StatePromptVisible: the daemon asked for an echoed reply.
	StatePromptVisible
	// StatePromptSecret: the daemon asked for a masked reply.
	StatePromptSecret
	// StatePromptInfoPending: an info or error message is being acknowledged.
	StatePromptInfoPending
	// StateAwaitingPromptAck: post_auth_message_response sent.
	StateAwaitingPromptAck
	// StateAwaitingCancelAck: cancel_session sent after the identity changed.
	StateAwaitingCancelAck
	// StateAuthenticated: the daemon accepted the credentials.
	StateAuthenticated
	// StateLaunchRequested: start_session sent.
	StateLaunchRequested
	// StateLaunched: the daemon accepted start_session.
	StateLaunched
	// StateFailed: the daemon answered with a generic error.
	StateFailed
)

var stateNames = [...]string{
	StateUnauthenticated:   "unauthenticated",
	StateAwaitingCreateAck: "awaiting_create_ack",
	StatePromptVisible:     "prompt_visible",
	StatePromptSecret:      "prompt_secret",
	StatePromptInfoPending: "prompt_info_pending",
	StateAwaitingPromptAck: "awaiting_prompt_ack",
	StateAwaitingCancelAck: "awaiting_cancel_ack",
	StateAuthenticated:     "authenticated",
	StateLaunchRequested:   "launch_requested",
	StateLaunched:          "launched",
	StateFailed:            "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Awaiting reports whether a request is outstanding in s.
func (s State) Awaiting() bool {
	switch s {
	case StateAwaitingCreateAck, StateAwaitingPromptAck, StateAwaitingCancelAck, StateLaunchRequested:
		return true
	}
	return false
}

// Field is an input field of the login form.
type Field int

const (
	FieldIdentity Field = iota
	FieldReply
)

// KeyKind classifies a keystroke delivered to [Conversation.HandleKey].
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeySubmit
	KeyNextField
	KeyBackspace
)

// Key is one discrete keystroke.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns the keystroke for typing r.
func RuneKey(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

var (
	SubmitKey    = Key{Kind: KeySubmit}
	NextFieldKey = Key{Kind: KeyNextField}
	BackspaceKey = Key{Kind: KeyBackspace}
)

// Step tells the caller what to do after a conversation event.
type Step struct {
	// Request, when non-nil, must be sent next.
	Request models.Request
	// Reconnect asks the caller to drop the current connection and dial a
	// fresh one before sending Request (if any).
	Reconnect bool
}

// Idle reports whether the step requires no action.
func (s Step) Idle() bool {
	return s.Request == nil && !s.Reconnect
}

// View is what the render sink needs to draw the conversation.
type View struct {
	State      State
	Focus      Field
	Username   string
	Reply      string
	PromptKind models.AuthMessageKind
	PromptText string
	// Notices are the info and error messages of the current conversation,
	// oldest first.
	Notices []string
	Title   string
	Error   string
	// Busy is true while a request is outstanding; keystrokes are ignored.
	Busy bool
}

// Masked reports whether the reply must be drawn masked.
func (v View) Masked() bool {
	return v.PromptKind == models.AuthMessageSecret
}

// ConversationConfig holds the conversation's startup values.
type ConversationConfig struct {
	// DefaultUsername, when set, is submitted on Start and after every auth
	// failure.
	DefaultUsername string
	// MaxPromptRounds bounds auth_message responses per conversation. Zero
	// disables the bound.
	MaxPromptRounds int
}

const (
	titleLogin       = app.MsgTitleLogin
	titleLoginFailed = app.MsgTitleLoginFailed
)

// Conversation is the login state machine. It performs no I/O: each event
// returns a [Step] describing the request to send next, and the caller feeds
// the daemon's answer back through HandleResponse. It is not safe for
// concurrent use; one control loop owns it.
type Conversation struct {
	cfg    ConversationConfig
	logger *logger.Logger

	state State
	focus Field

	username []rune
	reply    []rune

	// identity is the username the current daemon conversation was created for.
	identity string
	// pendingIdentity is the username to create once a cancel is acknowledged.
	pendingIdentity string

	prompt  models.AuthMessage
	notices []string
	rounds  int

	title   string
	failure string
}

// NewConversation returns a conversation in StateUnauthenticated.
func NewConversation(cfg ConversationConfig, log *logger.Logger) *Conversation {
	return &Conversation{
		cfg:    cfg,
		logger: log,
		title:  titleLogin,
	}
}

// State returns the current state.
func (c *Conversation) State() State { return c.state }

// Identity returns the username the daemon conversation was created for.
func (c *Conversation) Identity() string { return c.identity }

// Authenticated reports whether the daemon accepted the credentials and no
// launch has been attempted yet.
func (c *Conversation) Authenticated() bool { return c.state == StateAuthenticated }

// Prefill puts username into the identity field without submitting it. It has
// no effect once the conversation has started or when a default username is
// configured.
func (c *Conversation) Prefill(username string) {
	if c.state != StateUnauthenticated || c.cfg.DefaultUsername != "" || len(c.username) > 0 {
		return
	}
	c.username = []rune(username)
}

// Start issues create_session for the configured default username. Without a
// default it returns an idle step and waits for the user.
func (c *Conversation) Start() (Step, error) {
	if c.state != StateUnauthenticated {
		return Step{}, fmt.Errorf("%w: state %s", ErrAlreadyStarted, c.state)
	}
	if c.cfg.DefaultUsername == "" {
		return Step{}, nil
	}

	c.username = []rune(c.cfg.DefaultUsername)
	return c.create(c.cfg.DefaultUsername), nil
}

// HandleKey applies one keystroke. Keystrokes are ignored while a request is
// outstanding.
func (c *Conversation) HandleKey(k Key) (Step, error) {
	if c.state.Awaiting() || c.state == StateAuthenticated || c.state == StateLaunched {
		return Step{}, nil
	}

	switch k.Kind {
	case KeyRune:
		c.typeRune(k.Rune)
	case KeyBackspace:
		c.erase()
	case KeyNextField:
		c.toggleFocus()
	case KeySubmit:
		return c.submit(), nil
	}
	return Step{}, nil
}

func (c *Conversation) replyEditable() bool {
	return c.state == StatePromptVisible || c.state == StatePromptSecret
}

func (c *Conversation) typeRune(r rune) {
	switch c.focus {
	case FieldIdentity:
		c.username = append(c.username, r)
	case FieldReply:
		if c.replyEditable() {
			c.reply = append(c.reply, r)
		}
	}
}

func (c *Conversation) erase() {
	switch c.focus {
	case FieldIdentity:
		if n := len(c.username); n > 0 {
			c.username = c.username[:n-1]
		}
	case FieldReply:
		if n := len(c.reply); n > 0 {
			c.reply = c.reply[:n-1]
		}
	}
}

func (c *Conversation) toggleFocus() {
	if c.focus == FieldIdentity {
		c.focus = FieldReply
		return
	}
	c.focus = FieldIdentity
}

func (c *Conversation) submit() Step {
	if c.focus == FieldReply {
		if c.replyEditable() {
			return c.sendReply()
		}
		if len(c.username) == 0 {
			c.focus = FieldIdentity
			return Step{}
		}
	}
	return c.submitIdentity()
}

func (c *Conversation) submitIdentity() Step {
	username := string(c.username)
	if username == "" {
		c.focus = FieldIdentity
		return Step{}
	}

	switch c.state {
	case StateUnauthenticated:
		return c.create(username)
	case StateFailed:
		c.logger.Info().Msg("restarting conversation after daemon error")
		c.clearConversation()
		c.title = titleLogin
		step := c.create(username)
		step.Reconnect = true
		return step
	case StatePromptVisible, StatePromptSecret:
		if username == c.identity {
			c.focus = FieldReply
			return Step{}
		}
		c.pendingIdentity = username
		c.transition(StateAwaitingCancelAck)
		return Step{Request: models.CancelSession{}}
	}
	return Step{}
}

func (c *Conversation) create(username string) Step {
	c.identity = username
	c.focus = FieldReply
	c.transition(StateAwaitingCreateAck)
	return Step{Request: models.CreateSession{Username: username}}
}

func (c *Conversation) sendReply() Step {
	req := models.Reply(string(c.reply))
	c.logger.Debug().
		Str("prompt_kind", string(c.prompt.Kind)).
		Int("reply_len", len(c.reply)).
		Msg("replying to prompt")

	c.clearReply()
	c.transition(StateAwaitingPromptAck)
	return Step{Request: req}
}

// HandleResponse applies the daemon's answer to the outstanding request.
// Errors are fatal protocol violations.
func (c *Conversation) HandleResponse(resp models.Response) (Step, error) {
	if !c.state.Awaiting() {
		return Step{}, fmt.Errorf("%w: %s in state %s", ErrUnexpectedResponse, responseName(resp), c.state)
	}

	switch c.state {
	case StateAwaitingCreateAck, StateAwaitingPromptAck:
		return c.handleConversationResponse(resp)
	case StateAwaitingCancelAck:
		return c.handleCancelResponse(resp)
	case StateLaunchRequested:
		return c.handleLaunchResponse(resp)
	}
	return Step{}, fmt.Errorf("%w: state %s", ErrUnexpectedResponse, c.state)
}

func (c *Conversation) handleConversationResponse(resp models.Response) (Step, error) {
	switch r := resp.(type) {
	case models.AuthMessage:
		return c.handlePrompt(r)
	case models.Success:
		c.logger.Info().Str("username", c.identity).Msg("authenticated")
		c.clearReply()
		c.transition(StateAuthenticated)
		return Step{}, nil
	case models.ErrorResponse:
		return c.handleError(r), nil
	default:
		return Step{}, fmt.Errorf("%w: %T", ErrUnexpectedResponse, resp)
	}
}

func (c *Conversation) handlePrompt(msg models.AuthMessage) (Step, error) {
	c.rounds++
	if c.cfg.MaxPromptRounds > 0 && c.rounds > c.cfg.MaxPromptRounds {
		return Step{}, fmt.Errorf("%w: %d", ErrTooManyPrompts, c.rounds)
	}

	c.title = titleLogin
	c.prompt = msg

	switch msg.Kind {
	case models.AuthMessageVisible:
		c.clearReply()
		c.focus = FieldReply
		c.transition(StatePromptVisible)
		return Step{}, nil
	case models.AuthMessageSecret:
		c.clearReply()
		c.focus = FieldReply
		c.transition(StatePromptSecret)
		return Step{}, nil
	case models.AuthMessageInfo, models.AuthMessageError:
		c.notices = append(c.notices, msg.Text)
		c.transition(StatePromptInfoPending)
		c.transition(StateAwaitingPromptAck)
		return Step{Request: models.Acknowledge()}, nil
	default:
		return Step{}, fmt.Errorf("%w: auth message kind %q", ErrUnexpectedResponse, msg.Kind)
	}
}

func (c *Conversation) handleError(r models.ErrorResponse) Step {
	if r.Kind == models.ErrorKindAuth {
		c.logger.Info().Str("username", c.identity).Msg("authentication failed, resetting conversation")
		c.clearConversation()
		c.username = nil
		c.identity = ""
		c.focus = FieldIdentity
		c.title = titleLoginFailed
		c.transition(StateUnauthenticated)

		if c.cfg.DefaultUsername != "" {
			c.username = []rune(c.cfg.DefaultUsername)
			step := c.create(c.cfg.DefaultUsername)
			step.Reconnect = true
			return step
		}
		return Step{Reconnect: true}
	}

	c.logger.Warn().Str("description", r.Description).Msg("daemon reported an error")
	c.clearReply()
	c.prompt = models.AuthMessage{}
	c.failure = r.Description
	c.title = r.Description
	c.focus = FieldIdentity
	c.transition(StateFailed)
	return Step{}
}

func (c *Conversation) handleCancelResponse(resp models.Response) (Step, error) {
	switch r := resp.(type) {
	case models.Success:
		username := c.pendingIdentity
		c.clearConversation()
		c.transition(StateUnauthenticated)
		return c.create(username), nil
	case models.ErrorResponse:
		c.pendingIdentity = ""
		return c.handleError(r), nil
	default:
		return Step{}, fmt.Errorf("%w: %s after cancel_session", ErrUnexpectedResponse, responseName(resp))
	}
}

// BeginLaunch records that req is about to be sent. It fails unless the
// conversation is authenticated.
func (c *Conversation) BeginLaunch(req models.StartSession) (models.Request, error) {
	if c.state != StateAuthenticated {
		return nil, fmt.Errorf("%w: state %s", ErrNotAuthenticated, c.state)
	}
	c.transition(StateLaunchRequested)
	return req, nil
}

func (c *Conversation) handleLaunchResponse(resp models.Response) (Step, error) {
	switch r := resp.(type) {
	case models.Success:
		c.transition(StateLaunched)
		return Step{}, nil
	case models.ErrorResponse:
		return Step{}, fmt.Errorf("%w: %w", ErrLaunchRejected, r)
	default:
		return Step{}, fmt.Errorf("%w: %s", ErrLaunchRejected, responseName(resp))
	}
}

// Snapshot returns the current view for rendering.
func (c *Conversation) Snapshot() View {
	v := View{
		State:    c.state,
		Focus:    c.focus,
		Username: string(c.username),
		Reply:    string(c.reply),
		Title:    c.title,
		Error:    c.failure,
		Busy:     c.state.Awaiting(),
	}
	if c.state == StatePromptVisible || c.state == StatePromptSecret {
		v.PromptKind = c.prompt.Kind
		v.PromptText = c.prompt.Text
	}
	if len(c.notices) > 0 {
		v.Notices = append([]string(nil), c.notices...)
	}
	return v
}

func (c *Conversation) transition(next State) {
	c.logger.Debug().Str("from", c.state.String()).Str("to", next.String()).Msg("conversation transition")
	c.state = next
}

func (c *Conversation) clearReply() {
	clear(c.reply)
	c.reply = nil
}

// clearConversation drops everything tied to the daemon conversation but
// keeps the identity field.
func (c *Conversation) clearConversation() {
	c.clearReply()
	c.prompt = models.AuthMessage{}
	c.notices = nil
	c.rounds = 0
	c.failure = ""
	c.pendingIdentity = ""
}

func responseName(resp models.Response) string {
	if resp == nil {
		return "<nil>"
	}
	return resp.ResponseType()
}
