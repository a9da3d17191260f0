// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// passwordVerifier is the private implementation of [PasswordVerifier].
type passwordVerifier struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordVerifier constructs a [PasswordVerifier] that hashes with cost.
// A cost outside bcrypt's range falls back to [bcrypt.DefaultCost].
func NewPasswordVerifier(cost int) PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &passwordVerifier{cost: cost}
}

// Hash implements [PasswordVerifier].
func (p *passwordVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify implements [PasswordVerifier].
func (p *passwordVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyUnknown implements [PasswordVerifier]. The dummy hash is generated
// lazily with the verifier's cost.
func (p *passwordVerifier) VerifyUnknown(password string) bool {
	p.dummyOnce.Do(func() {
		p.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not a real password"), p.cost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(password))
	return false
}
