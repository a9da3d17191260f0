// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// ErrInvalidUsersFile is returned when the users file cannot be parsed or
	// holds an entry without a name or password hash.
	ErrInvalidUsersFile = errors.New("invalid users file")
	// ErrDuplicateUser is returned when two entries share a name.
	ErrDuplicateUser = errors.New("duplicate user in users file")
)

// Descriptions sent in error responses.
const (
	descAuthFailed         = "pam_authenticate: AUTH_ERR"
	descAlreadyConfiguring = "a session is already being configured"
	descNoSession          = "no session active"
	descNoPromptPending    = "no auth message pending"
	descNotAuthenticated   = "session not yet authenticated"
	descMalformedRequest   = "malformed request"
)
