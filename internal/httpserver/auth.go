package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// authClient is the caller identified by a valid token.
type authClient struct {
	Subject string `json:"subject"`
}

// ctxClientKey is the context key type for storing authClient.
type ctxClientKey struct{}

// SignToken creates an HS256 JWT for subject that expires after days (default 14).
func SignToken(secret, subject string, days int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	if days <= 0 {
		days = 14
	}
	now := time.Now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid JWT and injects authClient into the request
// context. With no secret configured every request passes.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	secret := []byte(s.cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "")
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid_token", "")
				return
			}
			sub, _ := claims.GetSubject()
			if sub == "" {
				writeError(w, http.StatusUnauthorized, "invalid_token", "")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClientKey{}, &authClient{Subject: sub})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
