package auth

import (
    "context"
    "net/http"

    "quizprep-server/internal/httpx"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminIDFromContext returns the admin id the session middleware resolved for
// this request. Handlers pass it on explicitly; nothing below the HTTP
// boundary re-reads the cookie.
func AdminIDFromContext(ctx context.Context) (uint, bool) {
    id, ok := ctx.Value(adminIDKey).(uint)
    return id, ok
}

// CookiePresence is the coarse pre-check: it rejects requests that carry no
// session cookie at all, without verifying the signature. Cheap gate for
// page loads and obviously unauthenticated calls. The authoritative check is
// SessionMiddleware.
func CookiePresence(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if _, err := r.Cookie(SessionCookie); err != nil {
            httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
            return
        }
        next.ServeHTTP(w, r)
    })
}

// SessionMiddleware verifies the session cookie and threads the resolved
// admin id through the request context. It never lets an unverified request
// reach a mutating handler.
func SessionMiddleware(sessions *SessionManager) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            cookie, err := r.Cookie(SessionCookie)
            if err != nil {
                httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
                return
            }

            adminID, ok := sessions.Verify(cookie.Value)
            if !ok {
                httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
                return
            }

            ctx := context.WithValue(r.Context(), adminIDKey, adminID)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
