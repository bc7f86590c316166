package mcqgen

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "quizprep-server/internal/httpx"
    "quizprep-server/pkg/logger"
)

// minTextLength guards against accidental empty OCR output; short recognized
// text is tolerated above this floor.
const minTextLength = 5

// Generator is the completion contract the handler depends on.
type Generator interface {
    Generate(ctx context.Context, extractedText string) ([]MCQ, error)
}

type Handler struct {
    generator Generator
    log       *logger.Logger
}

func NewHandler(generator Generator, log *logger.Logger) *Handler {
    return &Handler{generator: generator, log: log}
}

type generateRequest struct {
    ExtractedText string `json:"extractedText"`
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
    var req generateRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    if len(strings.TrimSpace(req.ExtractedText)) < minTextLength {
        httpx.WriteError(w, http.StatusBadRequest, "No text provided")
        return
    }

    mcqs, err := h.generator.Generate(r.Context(), req.ExtractedText)
    if err != nil {
        if errors.Is(err, ErrMalformedCompletion) {
            h.log.WithError(err).Warn("model returned malformed MCQ JSON")
        } else {
            h.log.WithError(err).Error("mcq generation failed")
        }
        httpx.WriteError(w, http.StatusInternalServerError, "Failed to generate MCQs")
        return
    }

    httpx.WriteJSON(w, http.StatusOK, map[string]any{"mcqs": mcqs})
}
