package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub ContactService ───────────────────────────────────────────────────────

type stubContactService struct {
	listResp   []dto.ContactResponse
	createResp dto.ContactResponse
	err        error
}

func (s *stubContactService) Create(_ context.Context, _ dto.CreateContactRequest) (dto.ContactResponse, error) {
	return s.createResp, s.err
}

func (s *stubContactService) List(_ context.Context) ([]dto.ContactResponse, error) {
	return s.listResp, s.err
}

func (s *stubContactService) Update(_ context.Context, _ uuid.UUID, _ dto.UpdateContactRequest) error {
	return s.err
}

func (s *stubContactService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

var _ service.ContactService = (*stubContactService)(nil)

func newContactsRouter(svc service.ContactService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewContactsHandler(svc)
	r.GET("/api/v1/contacts", h.List)
	r.POST("/api/v1/contacts", h.Create)
	r.PUT("/api/v1/contacts/:id", h.Update)
	r.DELETE("/api/v1/contacts/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestListContacts_OK(t *testing.T) {
	name := "Ada"
	r := newContactsRouter(&stubContactService{listResp: []dto.ContactResponse{
		{ID: uuid.New(), Name: &name, CustomFields: []dto.CustomFieldResponse{}},
	}})

	w := doJSON(t, r, http.MethodGet, "/api/v1/contacts", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	// custom_fields serializes as [], never null
	fields, ok := got[0]["custom_fields"].([]any)
	require.True(t, ok)
	assert.Empty(t, fields)
}

func TestCreateContact_OK(t *testing.T) {
	name := "Ada"
	r := newContactsRouter(&stubContactService{
		createResp: dto.ContactResponse{ID: uuid.New(), Name: &name, CustomFields: []dto.CustomFieldResponse{}},
	})

	w := doJSON(t, r, http.MethodPost, "/api/v1/contacts", map[string]any{"name": "Ada"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateContact_ValidationError(t *testing.T) {
	r := newContactsRouter(&stubContactService{
		err: &service.ValidationFailedError{Issues: []apierror.Issue{
			{Field: "name", Message: "at least one of name or email must be provided"},
		}},
	})

	w := doJSON(t, r, http.MethodPost, "/api/v1/contacts", map[string]any{"company": "Acme"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error struct {
			Issues []struct {
				Field string `json:"field"`
			} `json:"issues"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Error.Issues)
	assert.Equal(t, "name", body.Error.Issues[0].Field)
}

func TestCreateContact_MalformedJSON(t *testing.T) {
	r := newContactsRouter(&stubContactService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateContact_InvalidID(t *testing.T) {
	r := newContactsRouter(&stubContactService{})

	w := doJSON(t, r, http.MethodPut, "/api/v1/contacts/not-a-uuid", map[string]any{"name": "X"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateContact_NotFound(t *testing.T) {
	r := newContactsRouter(&stubContactService{err: service.ErrNotFound})

	w := doJSON(t, r, http.MethodPut, "/api/v1/contacts/"+uuid.NewString(), map[string]any{"name": "X"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateContact_OK(t *testing.T) {
	r := newContactsRouter(&stubContactService{})

	w := doJSON(t, r, http.MethodPut, "/api/v1/contacts/"+uuid.NewString(), map[string]any{"name": "X"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "msg")
}

func TestDeleteContact_NotFound(t *testing.T) {
	r := newContactsRouter(&stubContactService{err: service.ErrNotFound})

	w := doJSON(t, r, http.MethodDelete, "/api/v1/contacts/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteContact_OK(t *testing.T) {
	r := newContactsRouter(&stubContactService{})

	w := doJSON(t, r, http.MethodDelete, "/api/v1/contacts/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}
