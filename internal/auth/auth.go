package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config represents authentication configuration
type Config struct {
	Username     string
	PasswordHash string // bcrypt hash
}

// Middleware creates a basic auth middleware guarding the masking endpoints.
func Middleware(config Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := parseBasicAuth(r)
			if !ok {
				unauthorized(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(username), []byte(config.Username)) != 1 {
				unauthorized(w)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(config.PasswordHash), []byte(password)); err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseBasicAuth extracts credentials from an Authorization header.
func parseBasicAuth(r *http.Request) (username, password string, ok bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="snowmask"`)
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("401 Unauthorized\n"))
}
