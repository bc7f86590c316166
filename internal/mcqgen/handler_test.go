package mcqgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizprep-server/pkg/logger"
)

type fakeGenerator struct {
	mcqs []MCQ
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) ([]MCQ, error) {
	return f.mcqs, f.err
}

func TestGenerateHandler(t *testing.T) {
	gen := &fakeGenerator{mcqs: []MCQ{{QuestionText: "q", CorrectIndex: 0}}}
	handler := NewHandler(gen, logger.NewLogger("test"))

	body, _ := json.Marshal(map[string]string{"extractedText": "Photosynthesis converts light into chemical energy."})
	req := httptest.NewRequest(http.MethodPost, "/api/mcq/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		MCQs []MCQ `json:"mcqs"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.Len(t, payload.MCQs, 1)
	assert.Equal(t, "q", payload.MCQs[0].QuestionText)
}

func TestGenerateHandlerShortText(t *testing.T) {
	handler := NewHandler(&fakeGenerator{}, logger.NewLogger("test"))

	body, _ := json.Marshal(map[string]string{"extractedText": "  ab "})
	req := httptest.NewRequest(http.MethodPost, "/api/mcq/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandlerUpstreamFailure(t *testing.T) {
	handler := NewHandler(&fakeGenerator{err: errors.New("boom")}, logger.NewLogger("test"))

	body, _ := json.Marshal(map[string]string{"extractedText": "long enough text"})
	req := httptest.NewRequest(http.MethodPost, "/api/mcq/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
