package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub ExtractService ───────────────────────────────────────────────────────

type stubExtractService struct {
	resp []dto.ContactResponse
	err  error
}

func (s *stubExtractService) ExtractAndPersist(_ context.Context, _ string) ([]dto.ContactResponse, error) {
	return s.resp, s.err
}

var _ service.ExtractService = (*stubExtractService)(nil)

func newExtractRouter(svc service.ExtractService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/extract/text", NewExtractHandler(svc).ExtractFromText)
	return r
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestExtractFromText_MissingText(t *testing.T) {
	r := newExtractRouter(&stubExtractService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExtractFromText_EmptyText(t *testing.T) {
	r := newExtractRouter(&stubExtractService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{"text": ""})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExtractFromText_TooLong(t *testing.T) {
	r := newExtractRouter(&stubExtractService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{
		"text": strings.Repeat("a", 10001),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExtractFromText_OK(t *testing.T) {
	email := "john@techcorp.com"
	r := newExtractRouter(&stubExtractService{resp: []dto.ContactResponse{
		{ID: uuid.New(), Email: &email, CustomFields: []dto.CustomFieldResponse{}},
	}})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{
		"text": "John, john@techcorp.com",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got []dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, email, *got[0].Email)
}

func TestExtractFromText_NoContactsFound(t *testing.T) {
	// Text with nothing extractable is a success with an empty array,
	// not an error.
	r := newExtractRouter(&stubExtractService{resp: []dto.ContactResponse{}})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{
		"text": "nothing to see here",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestExtractFromText_UpstreamFailure(t *testing.T) {
	r := newExtractRouter(&stubExtractService{err: service.ErrUpstreamUnavailable})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{"text": "x"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Extraction from AI failed")
}

func TestExtractFromText_MalformedModelOutput(t *testing.T) {
	r := newExtractRouter(&stubExtractService{err: service.ErrMalformedResponse})

	w := doJSON(t, r, http.MethodPost, "/api/v1/extract/text", map[string]any{"text": "x"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid response")
}
