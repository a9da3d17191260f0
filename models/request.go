// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Wire values of the "type" field for requests sent to the session daemon.
const (
	RequestTypeCreateSession           = "create_session"
	RequestTypePostAuthMessageResponse = "post_auth_message_response"
	RequestTypeStartSession            = "start_session"
	RequestTypeCancelSession           = "cancel_session"
)

// Request is a message sent to the session daemon. The set of implementations
// is closed: only the types declared in this file satisfy it.
type Request interface {
	// RequestType returns the wire value of the "type" field.
	RequestType() string

	isRequest()
}

// CreateSession begins a new authentication conversation for Username.
type CreateSession struct {
	Username string `json:"username"`
}

// PostAuthMessageResponse answers the most recent auth message. Response is
// nil when the prompt did not ask for a reply (info and error prompts); the
// "response" key is then omitted from the wire body.
type PostAuthMessageResponse struct {
	Response *string `json:"response,omitempty"`
}

// StartSession commits to launching Cmd once authentication has succeeded.
// Env is optional and omitted from the wire body when empty.
type StartSession struct {
	Cmd []string `json:"cmd"`
	Env []string `json:"env,omitempty"`
}

// CancelSession aborts the conversation in progress.
type CancelSession struct{}

func (CreateSession) RequestType() string           { return RequestTypeCreateSession }
func (PostAuthMessageResponse) RequestType() string { return RequestTypePostAuthMessageResponse }
func (StartSession) RequestType() string            { return RequestTypeStartSession }
func (CancelSession) RequestType() string           { return RequestTypeCancelSession }

func (CreateSession) isRequest()           {}
func (PostAuthMessageResponse) isRequest() {}
func (StartSession) isRequest()            {}
func (CancelSession) isRequest()           {}

// Reply builds a PostAuthMessageResponse carrying text.
func Reply(text string) PostAuthMessageResponse {
	return PostAuthMessageResponse{Response: &text}
}

// Acknowledge builds a PostAuthMessageResponse without a reply payload.
func Acknowledge() PostAuthMessageResponse {
	return PostAuthMessageResponse{}
}
