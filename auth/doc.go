// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth validates the static admin credential.

Admin endpoints (vote inspection, store status) require the X-Admin-Token
header to match the configured ADMIN_TOKEN:

	if err := auth.ValidateAdminToken(r.Header.Get("X-Admin-Token"), cfg.AdminToken); err != nil {
		// 401
	}

The comparison is constant-time (hmac.Equal) to avoid leaking the token
length or prefix through timing.
*/
package auth
