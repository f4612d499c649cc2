//go:build integration

package router_test

// End-to-end tests over real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - create → list round-trip with nested custom fields
//   - partial update refreshes only the touched columns
//   - delete cascades to custom_fields at the database level
//   - extraction persists in model order with a substituted model client
//   - not-found update/delete answer 404

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/b0g1dan23/ai-contact-extractor/internal/config"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/infra"
	"github.com/b0g1dan23/ai-contact-extractor/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// scriptedModel returns a fixed completion without leaving the process.
type scriptedModel struct{ response string }

func (m *scriptedModel) Complete(_ context.Context, _ string) (string, error) {
	return m.response, nil
}

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	model  *scriptedModel
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("contacts"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	redisC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(redisURL)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:           "test",
		CORSOrigins:   "http://localhost:5173",
		AdminUsername: "admin",
		AdminPassword: "admin",
	}

	model := &scriptedModel{}
	gin.SetMode(gin.TestMode)
	engine := router.New(cfg, db, rdb, model, infra.NewCircuitBreaker(infra.DefaultCBConfig()))

	return &testEnv{engine: engine, db: db, model: model}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestE2E_CreateListRoundTrip(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name":  "Grace Hopper",
		"email": "grace@navy.mil",
		"custom_fields": []map[string]string{
			{"label": "rank", "value": "rear admiral"},
			{"label": "invention", "value": "COBOL"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.CustomFields, 2)

	w = env.do(t, http.MethodGet, "/api/v1/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	require.Len(t, listed[0].CustomFields, 2)
	for _, f := range listed[0].CustomFields {
		assert.Equal(t, created.ID, f.ContactID)
	}
}

func TestE2E_PartialUpdate(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name":    "Linus",
		"company": "Transmeta",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPut, "/api/v1/contacts/"+created.ID.String(), map[string]any{
		"company": "Linux Foundation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/contacts", nil)
	var listed []dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Linux Foundation", *listed[0].Company)
	assert.Equal(t, "Linus", *listed[0].Name)
	assert.True(t, listed[0].UpdatedAt.After(created.UpdatedAt) || listed[0].UpdatedAt.Equal(created.UpdatedAt))
}

func TestE2E_DeleteCascades(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name": "Doomed",
		"custom_fields": []map[string]string{
			{"label": "a", "value": "1"},
			{"label": "b", "value": "2"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodDelete, "/api/v1/contacts/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The FK cascade must leave zero field rows behind.
	var count int64
	require.NoError(t, env.db.Table("custom_fields").
		Where("contact_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestE2E_ExtractPersistsInModelOrder(t *testing.T) {
	env := setupEnv(t)
	env.model.response = `{"contacts":[
		{"name":"Jane Doe","email":"jane@alpha.io","company":"Alpha","location":null,"phone":null,"job_title":null,"notes":null,"custom_fields":[{"label":"team","value":"payments"}]},
		{"name":"Mark Roe","email":"mark@beta.io","company":"Beta","location":null,"phone":null,"job_title":null,"notes":null,"custom_fields":[]}
	]}`

	w := env.do(t, http.MethodPost, "/api/v1/extract/text", map[string]any{
		"text": "Jane Doe (jane@alpha.io, Alpha, payments team) and Mark Roe (mark@beta.io, Beta)",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var extracted []dto.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &extracted))
	require.Len(t, extracted, 2)
	assert.Equal(t, "jane@alpha.io", *extracted[0].Email)
	require.Len(t, extracted[0].CustomFields, 1)
	assert.Equal(t, "mark@beta.io", *extracted[1].Email)
	assert.Empty(t, extracted[1].CustomFields)
}

func TestE2E_NotFoundIsDistinct(t *testing.T) {
	env := setupEnv(t)
	missing := uuid.NewString()

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/contacts/%s", missing), map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/contacts/%s", missing), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestE2E_StoreConstraintWithoutValidator(t *testing.T) {
	// Direct SQL bypassing every application layer: the CHECK
	// constraint must still refuse an identity-less contact.
	env := setupEnv(t)

	err := env.db.Exec(`INSERT INTO contacts (company) VALUES ('Acme')`).Error
	assert.Error(t, err)
}
