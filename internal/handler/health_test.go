package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odotravel/globetrotter/internal/handler"
)

func TestGetHealth(t *testing.T) {
	h := srv(nil, nil, nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetOpenAPI(t *testing.T) {
	spec := []byte("openapi: 3.0.3\n")
	h := handler.NewServer(nil, nil, nil, spec).Routes()

	rec := do(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(spec), rec.Body.String())
}

func TestGetOpenAPI_DisabledWithoutSpec(t *testing.T) {
	h := srv(nil, nil, nil)

	rec := do(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
