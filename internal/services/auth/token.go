package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hyunw/bboard/internal/dependencies/clock"
	"github.com/hyunw/bboard/internal/model"
)

// Claims are the identity attributes encoded in a bearer token
type Claims struct {
	jwt.RegisteredClaims
	AccountID   string `json:"account_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// TokenIssuer signs and verifies bearer tokens with a single server-wide
// symmetric key. Tokens are stateless: validity is determined purely by
// signature and expiry, with no store lookup and no revocation list, so a
// token stays valid until it expires.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewTokenIssuer creates a TokenIssuer. The secret must be injected from
// configuration; rotating it requires a restart.
func NewTokenIssuer(secret []byte, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue produces a signed token carrying the account's identity claims
func (t *TokenIssuer) Issue(account *model.Account) (string, error) {
	now := t.clock.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		AccountID:   string(account.ID),
		Username:    account.Username,
		DisplayName: account.DisplayName,
	})

	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning its claims.
// Failures map to ErrTokenMissing, ErrTokenMalformed, ErrTokenExpired, or
// ErrTokenInvalidSignature.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(tok *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
