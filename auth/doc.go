// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin key guarding dataset reloads.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(auth.ReloadScope, salt)
	err := auth.ValidateAdminKey(auth.ReloadScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same scope and salt always produce the same key, so nothing needs to be
stored. Print it with:

	juniorwahl -admin-salt "$ADMIN_KEY_SALT" -print-admin-key

and send it in the X-Admin-Key header. Without a salt every key is rejected
with ErrNoSalt.
*/
package auth
