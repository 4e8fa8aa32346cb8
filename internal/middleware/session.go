package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tamaleria/orderform/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// EnsureSession resolves the caller's session from the signed cookie,
// creating a fresh session (with its default order) when the cookie is
// missing, invalid or expired. The session lands in the request context.
func EnsureSession(store *session.Store, secret string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if cookie, err := r.Cookie(session.CookieName); err == nil {
				if claims, err := session.ValidateToken(secret, cookie.Value); err == nil {
					sess, _ = store.Get(claims.SessionID)
				}
			}

			if sess == nil {
				sess = store.Create()
				token, err := session.GenerateToken(secret, sess.ID, ttl)
				if err != nil {
					log.WithError(err).Error("sign session token")
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by EnsureSession, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
