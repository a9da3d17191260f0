// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errEmptySocketPath = errors.New("socket path is empty")
	errSocketInUse     = errors.New("socket is in use by another process")
	errNotASocket      = errors.New("path exists and is not a socket")
)
