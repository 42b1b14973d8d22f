// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth signs the single directory administrator in.

There is no account table: the username and bcrypt hash come from the
environment, and a successful login returns a short-lived RS256 access token
that the admin routes verify on every request.
*/
package auth

import "time"

// Credentials is the configured administrator.
type Credentials struct {
	Username     string
	PasswordHash string
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is an issued access token.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"` // seconds
	ExpiresAt   time.Time `json:"expires_at"`
}

// Principal describes the caller of GET /auth/me.
type Principal struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
