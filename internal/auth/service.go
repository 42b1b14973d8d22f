// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/sec"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given subject.
	GenerateAccessToken(subject, username string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// decoyHash is compared against when the username is wrong, so that both
// failure paths pay for one bcrypt comparison.
const decoyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z0hZ3ZrE8bKp3p5y3x0gQ7Gm"

// Service implements the administrator login.
type Service struct {
	credentials Credentials
	tokens      TokenProvider
	ttl         time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new [Service].
func NewService(credentials Credentials, tokens TokenProvider, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
	}
}

/*
Login validates the administrator credentials and issues an access token.

Returns:
  - *Session: The signed token and its lifetime
  - error: UNAUTHORIZED for any credential mismatch, without saying which part
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(service.credentials.Username)) == 1

	hash := service.credentials.PasswordHash
	if !usernameOK || hash == "" {
		hash = decoyHash
	}
	passwordOK := sec.CheckPasswordHash(input.Password, hash)

	if !usernameOK || !passwordOK || service.credentials.PasswordHash == "" {
		service.logger.WarnContext(context, "admin_login_failed", slog.String("username", input.Username))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	issuedAt := service.now()
	token, err := service.tokens.GenerateAccessToken(constants.AdminSubject, service.credentials.Username, sec.RoleAdmin, service.ttl)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "admin_login_succeeded", slog.String("username", service.credentials.Username))

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(service.ttl.Seconds()),
		ExpiresAt:   issuedAt.Add(service.ttl),
	}, nil
}

// PrincipalFrom converts verified token claims into the public identity view.
func PrincipalFrom(claims *sec.AuthClaims) Principal {
	principal := Principal{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal
}
