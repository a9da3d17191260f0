// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks invariants shared by every program before a view is built.
func (cfg *StructuredConfig) validate() error {
	if cfg.Greetd.ResponseTimeout < 0 || cfg.Greetd.DialTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidAdapterConfigs)
	}
	if cfg.Greetd.MaxPromptRounds < 0 {
		return fmt.Errorf("%w: max prompt rounds must be positive", ErrInvalidConversationConfigs)
	}
	return nil
}

func (cfg *GreeterConfig) validate() error {
	if cfg.Adapter.SocketPath == "" {
		return ErrMissingSocket
	}

	if cfg.Conversation.MaxPromptRounds < 1 {
		return ErrInvalidConversationConfigs
	}

	if len(cfg.Launch.SessionDirs) == 0 && cfg.Launch.FallbackCommand == "" {
		return ErrInvalidLaunchConfigs
	}

	return nil
}

func (cfg *FakeGreetConfig) validate() error {
	if cfg.SocketPath == "" {
		return ErrMissingSocket
	}

	if cfg.UsersFile == "" {
		return ErrMissingUsersFile
	}

	return nil
}
