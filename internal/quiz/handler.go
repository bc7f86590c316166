package quiz

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/google/uuid"

    "quizprep-server/internal/httpx"
    "quizprep-server/internal/models"
    "quizprep-server/pkg/logger"
)

type Handler struct {
    service *Service
    log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
    return &Handler{service: service, log: log}
}

type submitRequest struct {
    Answers []models.Answer `json:"answers"`
    Subject string          `json:"subject"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
    var req submitRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    id, err := h.service.Submit(req.Answers, req.Subject)
    if err != nil {
        switch {
        case errors.Is(err, ErrEmptySubmission):
            httpx.WriteError(w, http.StatusBadRequest, err.Error())
        case errors.Is(err, ErrQuestionsNotFound):
            httpx.WriteError(w, http.StatusNotFound, err.Error())
        default:
            h.log.WithError(err).Error("quiz submit failed")
            httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        }
        return
    }

    httpx.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}

type resultResponse struct {
    TotalQuestions  int                 `json:"totalQuestions"`
    CorrectAnswers  int                 `json:"correctAnswers"`
    WrongAnswers    int                 `json:"wrongAnswers"`
    ScorePercentage int                 `json:"scorePercentage"`
    Results         []models.ResultItem `json:"results"`
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
    id := r.URL.Query().Get("id")
    if id == "" {
        httpx.WriteError(w, http.StatusBadRequest, "Missing id")
        return
    }
    if _, err := uuid.Parse(id); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid id")
        return
    }

    result, err := h.service.GetResult(id)
    if err != nil {
        if errors.Is(err, ErrResultNotFound) {
            httpx.WriteError(w, http.StatusNotFound, err.Error())
            return
        }
        h.log.WithError(err).Error("result fetch failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        return
    }

    items := result.Items
    if items == nil {
        items = []models.ResultItem{}
    }
    httpx.WriteJSON(w, http.StatusOK, resultResponse{
        TotalQuestions:  result.TotalQuestions,
        CorrectAnswers:  result.CorrectAnswers,
        WrongAnswers:    result.WrongAnswers,
        ScorePercentage: result.ScorePercentage,
        Results:         items,
    })
}
