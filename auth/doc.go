// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token generation utilities.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

Passwords shorter than MinPasswordLen are rejected with ErrWeakPassword.

# Session Tokens

Session tokens are random 32-byte (256-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded and sent as "Authorization: Bearer <token>".
The sessions table maps them to a profile until they expire.

# ID Generation

Profiles get UUIDs; other records get random hex IDs:

	userID := auth.NewUserID()
	id, err := auth.GenerateID(16)  // 32 hex characters

# Emails

NormalizeEmail trims and lower-cases addresses so that lookups are
case-insensitive, and rejects anything that is not a bare address.
*/
package auth
