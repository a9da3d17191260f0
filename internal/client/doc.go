// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the greeter's process lifecycle.
//
// It connects to the session daemon, runs the terminal login screen, starts
// the selected session once authentication succeeds, and remembers the login
// for the next start.
package client
