package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const cronSecretHeader = "X-Cron-Secret"

// RequireCronSecret guards the job trigger endpoints. The secret may come as
// "Authorization: Bearer <secret>" or in the X-Cron-Secret header. With an
// empty secret the endpoints are open.
func RequireCronSecret(secret string) func(http.Handler) http.Handler {
	expected := []byte(secret)

	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if matchesSecret(r, expected) {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized")
		})
	}
}

func matchesSecret(r *http.Request, expected []byte) bool {
	if token, err := bearerToken(r); err == nil && equalSecret(token, expected) {
		return true
	}
	if v := strings.TrimSpace(r.Header.Get(cronSecretHeader)); v != "" && equalSecret(v, expected) {
		return true
	}
	return false
}

func equalSecret(got string, expected []byte) bool {
	return subtle.ConstantTimeCompare([]byte(got), expected) == 1
}
