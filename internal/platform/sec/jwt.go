// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The admin login issues RS256 access tokens here and the
// authentication middleware verifies them.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The role travels in the token so the middleware can authorize admin
// routes without a lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService handles generation and verification of JWT tokens using RS256.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
// It reads PEM encoded RSA keys from the provided filesystem paths.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenServiceFromKeys(privateKey, publicKey, issuer), nil
}

// NewTokenServiceFromKeys creates a TokenService from already parsed keys.
func NewTokenServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		now:        time.Now,
	}
}

// GenerateAccessToken creates a new JWT access token.
func (service *TokenService) GenerateAccessToken(subject, username string, role UserRole, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Username: username,
		Role:     string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, issuer and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	}, jwt.WithIssuer(service.issuer), jwt.WithTimeFunc(service.now))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
