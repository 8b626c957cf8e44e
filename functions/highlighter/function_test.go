package highlighter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_ServesRoutes(t *testing.T) {
	t.Setenv("HIGHLIGHTER_ENABLE_PUBLISH", "false")
	t.Setenv("HIGHLIGHTER_ENABLE_EXPORT", "false")

	h, err := newHandler(context.Background(), "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/models/anterior/click/chest", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Bench Press"`)
}

func TestNewHandler_BadDataFile(t *testing.T) {
	t.Setenv("HIGHLIGHTER_DATA_FILE", "workout.csv")

	_, err := newHandler(context.Background(), "")
	assert.Error(t, err)
}
