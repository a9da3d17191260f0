// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/mock"
	"github.com/MKhiriev/go-greeter/internal/validators"
	"github.com/MKhiriev/go-greeter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logger.Logger {
	return logger.Nop()
}

func newTestSession(t *testing.T) (*Session, *mock.MockPasswordVerifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	verifier := mock.NewMockPasswordVerifier(ctrl)

	users, err := ParseUsers([]byte(testUsersYAML))
	require.NoError(t, err)

	return newSession(users, verifier, validators.NewRequestValidator()), verifier
}

func secretPrompt(text string) models.AuthMessage {
	return models.AuthMessage{Kind: models.AuthMessageSecret, Text: text}
}

// ── create_session ─────────────────────────────────────────────────────────

func TestSession_Create_BannerThenPassword(t *testing.T) {
	s, verifier := newTestSession(t)
	ctx := context.Background()

	resp := s.Handle(ctx, models.CreateSession{Username: "alice"})
	assert.Equal(t, models.AuthMessage{Kind: models.AuthMessageInfo, Text: "Welcome back"}, resp)

	// баннер подтверждается пустым ответом
	resp = s.Handle(ctx, models.PostAuthMessageResponse{})
	assert.Equal(t, secretPrompt("Password:"), resp)

	verifier.EXPECT().Verify("$2a$04$hash-alice", "hunter2").Return(true)
	resp = s.Handle(ctx, models.Reply("hunter2"))
	assert.Equal(t, models.Success{}, resp)
	assert.True(t, s.authenticated)
}

func TestSession_Create_WhileActive(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.Handle(ctx, models.CreateSession{Username: "alice"})
	resp := s.Handle(ctx, models.CreateSession{Username: "bob"})

	assert.Equal(t, genericError(descAlreadyConfiguring), resp)
	assert.Equal(t, "alice", s.username)
}

func TestSession_Create_InvalidUsername(t *testing.T) {
	s, _ := newTestSession(t)

	resp := s.Handle(context.Background(), models.CreateSession{Username: ""})

	errResp, ok := resp.(models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, models.ErrorKindGeneric, errResp.Kind)
	assert.Equal(t, validators.ErrEmptyUsername.Error(), errResp.Description)
	assert.False(t, s.active)
}

// ── post_auth_message_response ─────────────────────────────────────────────

func TestSession_UnknownUser_GetsPasswordPromptThenAuthError(t *testing.T) {
	s, verifier := newTestSession(t)
	ctx := context.Background()

	resp := s.Handle(ctx, models.CreateSession{Username: "mallory"})
	assert.Equal(t, secretPrompt("Password:"), resp)

	verifier.EXPECT().VerifyUnknown("guess").Return(false)
	resp = s.Handle(ctx, models.Reply("guess"))
	assert.Equal(t, models.ErrorResponse{Kind: models.ErrorKindAuth, Description: descAuthFailed}, resp)
	assert.False(t, s.active)
}

func TestSession_WrongPassword_ResetsSession(t *testing.T) {
	s, verifier := newTestSession(t)
	ctx := context.Background()

	s.Handle(ctx, models.CreateSession{Username: "bob"})
	verifier.EXPECT().Verify("$2a$04$hash-bob", "wrong").Return(false)

	resp := s.Handle(ctx, models.Reply("wrong"))
	assert.Equal(t, models.ErrorKindAuth, resp.(models.ErrorResponse).Kind)

	// после auth_error можно начать заново на том же соединении
	resp = s.Handle(ctx, models.CreateSession{Username: "bob"})
	assert.Equal(t, secretPrompt("Password:"), resp)
}

func TestSession_OTP(t *testing.T) {
	ctx := context.Background()

	t.Run("correct", func(t *testing.T) {
		s, verifier := newTestSession(t)
		s.Handle(ctx, models.CreateSession{Username: "bob"})
		verifier.EXPECT().Verify("$2a$04$hash-bob", "pw").Return(true)

		resp := s.Handle(ctx, models.Reply("pw"))
		assert.Equal(t, models.AuthMessage{Kind: models.AuthMessageVisible, Text: "OTP:"}, resp)

		resp = s.Handle(ctx, models.Reply("123456"))
		assert.Equal(t, models.Success{}, resp)
	})

	t.Run("wrong", func(t *testing.T) {
		s, verifier := newTestSession(t)
		s.Handle(ctx, models.CreateSession{Username: "bob"})
		verifier.EXPECT().Verify("$2a$04$hash-bob", "pw").Return(true)
		s.Handle(ctx, models.Reply("pw"))

		resp := s.Handle(ctx, models.Reply("000000"))
		assert.Equal(t, models.ErrorKindAuth, resp.(models.ErrorResponse).Kind)
		assert.False(t, s.authenticated)
	})
}

func TestSession_Answer_NoSession(t *testing.T) {
	s, _ := newTestSession(t)

	resp := s.Handle(context.Background(), models.Reply("pw"))
	assert.Equal(t, genericError(descNoSession), resp)
}

func TestSession_Answer_AfterAuthenticated(t *testing.T) {
	s, verifier := newTestSession(t)
	ctx := context.Background()

	s.Handle(ctx, models.CreateSession{Username: "alice"})
	s.Handle(ctx, models.PostAuthMessageResponse{})
	verifier.EXPECT().Verify(gomock.Any(), "pw").Return(true)
	s.Handle(ctx, models.Reply("pw"))

	resp := s.Handle(ctx, models.Reply("again"))
	assert.Equal(t, genericError(descNoPromptPending), resp)
}

// ── start_session / cancel_session ─────────────────────────────────────────

func TestSession_Start_NotAuthenticated(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	start := models.StartSession{Cmd: []string{"sway"}}

	assert.Equal(t, genericError(descNotAuthenticated), s.Handle(ctx, start))

	s.Handle(ctx, models.CreateSession{Username: "alice"})
	assert.Equal(t, genericError(descNotAuthenticated), s.Handle(ctx, start))
}

func TestSession_Start_AfterSuccess(t *testing.T) {
	s, verifier := newTestSession(t)
	ctx := context.Background()

	s.Handle(ctx, models.CreateSession{Username: "bob"})
	verifier.EXPECT().Verify(gomock.Any(), "pw").Return(true)
	s.Handle(ctx, models.Reply("pw"))
	s.Handle(ctx, models.Reply("123456"))

	resp := s.Handle(ctx, models.StartSession{Cmd: []string{"sway"}, Env: []string{"XDG_SESSION_TYPE=wayland"}})
	assert.Equal(t, models.Success{}, resp)
	assert.False(t, s.active)
	assert.False(t, s.authenticated)
}

func TestSession_Start_InvalidCommand(t *testing.T) {
	s, _ := newTestSession(t)

	resp := s.Handle(context.Background(), models.StartSession{Cmd: []string{" "}})
	assert.Equal(t, genericError(validators.ErrEmptyCommandPart.Error()), resp)
}

func TestSession_Cancel(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.Handle(ctx, models.CreateSession{Username: "alice"})
	assert.Equal(t, models.Success{}, s.Handle(ctx, models.CancelSession{}))
	assert.False(t, s.active)
	assert.Empty(t, s.queue)

	// cancel без активной сессии тоже успешен
	assert.Equal(t, models.Success{}, s.Handle(ctx, models.CancelSession{}))
}
