package question

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-playground/validator/v10"
    "github.com/gorilla/mux"

    "quizprep-server/internal/auth"
    "quizprep-server/internal/httpx"
    "quizprep-server/internal/models"
    "quizprep-server/pkg/logger"
)

// 10 MiB cap on uploaded spreadsheets.
const maxUploadBytes = 10 << 20

var validate = validator.New()

type Handler struct {
    service *Service
    log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
    return &Handler{service: service, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
    questions, err := h.service.ListQuestions(r.URL.Query().Get("subject"))
    if err != nil {
        h.log.WithError(err).Error("list questions failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
        return
    }
    httpx.WriteJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    var input models.QuestionInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }
    if err := validate.Struct(input); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "All fields are required and correct_index must be between 0 and 3")
        return
    }

    q, err := h.service.CreateQuestion(adminID, input)
    if err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusCreated, map[string]any{"question": q})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    id, err := parseID(r)
    if err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid question id")
        return
    }

    var input models.QuestionInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }
    if err := validate.Struct(input); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "All fields are required and correct_index must be between 0 and 3")
        return
    }

    q, err := h.service.UpdateQuestion(adminID, id, input)
    if err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusOK, map[string]any{"question": q})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    id, err := parseID(r)
    if err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid question id")
        return
    }

    if err := h.service.DeleteQuestion(adminID, id); err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Question deleted successfully"})
}

type uploadRequest struct {
    Rows []models.RawRow `json:"rows"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    var req uploadRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    summary, err := h.service.UploadQuestions(adminID, req.Rows)
    if err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusOK, summary)
}

// UploadFile accepts a multipart CSV or XLSX upload and feeds the parsed rows
// through the same ingestion pipeline as the JSON route.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
        return
    }

    file, header, err := r.FormFile("file")
    if err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Missing file field")
        return
    }
    defer file.Close()

    rows, err := ParseSpreadsheet(header.Filename, file)
    if err != nil {
        if errors.Is(err, ErrUnsupportedFile) {
            httpx.WriteError(w, http.StatusBadRequest, err.Error())
            return
        }
        h.log.WithError(err).Warn("spreadsheet parse failed")
        httpx.WriteError(w, http.StatusBadRequest, "Could not parse spreadsheet")
        return
    }

    summary, err := h.service.UploadQuestions(adminID, rows)
    if err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusOK, summary)
}

type bulkRequest struct {
    Questions []models.RawRow `json:"questions"`
}

func (h *Handler) BulkInsert(w http.ResponseWriter, r *http.Request) {
    adminID, ok := auth.AdminIDFromContext(r.Context())
    if !ok {
        httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    var req bulkRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
        return
    }

    count, err := h.service.InsertDrafts(adminID, req.Questions)
    if err != nil {
        h.writeServiceError(w, err)
        return
    }
    httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
    subjects, err := h.service.Subjects()
    if err != nil {
        h.log.WithError(err).Error("list subjects failed")
        httpx.WriteJSON(w, http.StatusOK, map[string]any{"subjects": []string{}})
        return
    }
    httpx.WriteJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, ErrNoRows), errors.Is(err, ErrAllRowsInvalid):
        httpx.WriteError(w, http.StatusBadRequest, err.Error())
    case errors.Is(err, ErrAllDuplicates):
        httpx.WriteError(w, http.StatusConflict, err.Error())
    case errors.Is(err, ErrQuestionNotFound):
        httpx.WriteError(w, http.StatusNotFound, err.Error())
    default:
        h.log.WithError(err).Error("question request failed")
        httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
    }
}

func parseID(r *http.Request) (uint, error) {
    raw := mux.Vars(r)["id"]
    id, err := strconv.ParseUint(raw, 10, 32)
    if err != nil {
        return 0, err
    }
    return uint(id), nil
}
