// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
)

var ErrInvalidAdminToken = errors.New("invalid admin token")

// ValidateAdminToken checks the provided token against the configured one
// in constant time. An unconfigured expected token rejects everything.
func ValidateAdminToken(provided, expected string) error {
	if expected == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminToken
	}
	return nil
}
