package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ctxPlayerKey is the context key type for storing the player id.
type ctxPlayerKey struct{}

// withOptionalAuth decorates requests with the player id if a valid JWT is present.
// It never 401s; checks are open to guests.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := bearer(r); tok != "" {
				claims := jwt.MapClaims{}
				t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
					return []byte(s.opts.JWTSecret), nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				if err == nil && t.Valid {
					if id, _ := claims["id"].(string); id != "" {
						r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// playerID returns the authenticated player id, or "" for guests.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
