package auth

import (
    "encoding/json"
    "errors"
    "net/http"

    "quizprep-server/internal/httpx"
    "quizprep-server/pkg/logger"
)

type Handler struct {
    service  *Service
    sessions *SessionManager
    log      *logger.Logger
}

func NewHandler(service *Service, sessions *SessionManager, log *logger.Logger) *Handler {
    return &Handler{
        service:  service,
        sessions: sessions,
        log:      log,
    }
}

type credentialsRequest struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type adminResponse struct {
    ID       uint   `json:"id"`
    Username string `json:"username"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
    var req credentialsRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    if req.Username == "" || req.Password == "" {
        httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
        return
    }

    admin, err := h.service.Signup(req.Username, req.Password)
    if err != nil {
        if errors.Is(err, ErrUsernameTaken) {
            httpx.WriteError(w, http.StatusConflict, err.Error())
            return
        }
        h.log.WithError(err).Error("signup failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        return
    }

    httpx.WriteJSON(w, http.StatusCreated, map[string]any{
        "message": "Admin created successfully",
        "admin":   adminResponse{ID: admin.ID, Username: admin.Username},
    })
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
    var req credentialsRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    if req.Username == "" || req.Password == "" {
        httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
        return
    }

    token, admin, err := h.service.Login(req.Username, req.Password)
    if err != nil {
        if errors.Is(err, ErrInvalidCredentials) {
            httpx.WriteError(w, http.StatusUnauthorized, err.Error())
            return
        }
        h.log.WithError(err).Error("login failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        return
    }

    h.sessions.SetCookie(w, token)
    httpx.WriteJSON(w, http.StatusOK, map[string]any{
        "message": "Login successful",
        "admin":   adminResponse{ID: admin.ID, Username: admin.Username},
    })
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
    h.sessions.ClearCookie(w)
    httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Verify reports whether the caller holds a live session bound to an existing
// admin. The session middleware has already verified the token.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
    adminID, ok := AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
        return
    }

    admin, err := h.service.Verify(adminID)
    if err != nil {
        if errors.Is(err, ErrAdminNotFound) {
            httpx.WriteJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
            return
        }
        h.log.WithError(err).Error("verify failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        return
    }

    httpx.WriteJSON(w, http.StatusOK, map[string]any{
        "authenticated": true,
        "admin":         adminResponse{ID: admin.ID, Username: admin.Username},
    })
}
