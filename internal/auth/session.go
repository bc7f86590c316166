package auth

import (
    "net/http"
    "os"
    "time"

    "github.com/dgrijalva/jwt-go"
)

const (
    // SessionCookie is the HTTP-only cookie carrying the admin session token.
    SessionCookie = "admin_session"

    sessionTTL = 7 * 24 * time.Hour
)

// SessionManager issues and verifies the signed admin session tokens carried
// in the session cookie. Verification never returns an error to callers: a
// missing, malformed or expired token is simply not a session.
type SessionManager struct {
    secret []byte
}

func NewSessionManager(secret string) *SessionManager {
    return &SessionManager{secret: []byte(secret)}
}

func (m *SessionManager) Issue(adminID uint) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "admin_id": adminID,
        "exp":      time.Now().Add(sessionTTL).Unix(),
    })
    return token.SignedString(m.secret)
}

func (m *SessionManager) Verify(tokenString string) (uint, bool) {
    token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
        return m.secret, nil
    })
    if err != nil || !token.Valid {
        return 0, false
    }

    claims, ok := token.Claims.(*jwt.MapClaims)
    if !ok {
        return 0, false
    }

    adminID, ok := (*claims)["admin_id"].(float64)
    if !ok {
        return 0, false
    }

    return uint(adminID), true
}

// SetCookie attaches the session token to the response.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
    http.SetCookie(w, &http.Cookie{
        Name:     SessionCookie,
        Value:    token,
        Path:     "/",
        MaxAge:   int(sessionTTL.Seconds()),
        HttpOnly: true,
        Secure:   os.Getenv("APP_ENV") == "production",
        SameSite: http.SameSiteLaxMode,
    })
}

// ClearCookie expires the session cookie immediately.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
    http.SetCookie(w, &http.Cookie{
        Name:     SessionCookie,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
        Secure:   os.Getenv("APP_ENV") == "production",
        SameSite: http.SameSiteLaxMode,
    })
}
