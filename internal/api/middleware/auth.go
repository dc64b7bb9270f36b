package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hyunw/bboard/internal/api/apierr"
	"github.com/hyunw/bboard/internal/services/auth"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Auth creates authentication middleware. Each request is verified
// independently against the bearer token's signature and expiry; there is
// no session state.
func Auth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header.
// A missing header and a header without a token segment both count as a
// missing token.
func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrTokenMissing
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", auth.ErrTokenMissing
	}
	return token, nil
}

// GetClaims returns the verified claims from the request context
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

// MustGetClaims returns the verified claims or panics
func MustGetClaims(ctx context.Context) *auth.Claims {
	claims := GetClaims(ctx)
	if claims == nil {
		panic("no claims in context - auth middleware not applied?")
	}
	return claims
}
