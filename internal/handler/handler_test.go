package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/catalog-api/internal/utils"
)

func TestFailAttachesDetailsWhenVerbose(t *testing.T) {
	SetVerboseErrors(true)
	defer SetVerboseErrors(false)

	svc := new(MockProductService)
	router := setupProductRouter(svc)
	svc.On("Get", mock.Anything, "p1").Return(nil, errors.New("mongo: socket closed"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Equal(t, "mongo: socket closed", resp.Details)
}

func TestFailSuppressesDetailsInProduction(t *testing.T) {
	SetVerboseErrors(false)

	svc := new(MockProductService)
	router := setupProductRouter(svc)
	svc.On("Get", mock.Anything, "p1").Return(nil, errors.New("mongo: socket closed"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Empty(t, resp.Details)
}

func TestBadRequestDetails(t *testing.T) {
	svc := new(MockProductService)
	router := setupProductRouter(svc)

	send := func() utils.ErrorResponse {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp utils.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	SetVerboseErrors(true)
	defer SetVerboseErrors(false)
	resp := send()
	assert.Equal(t, "Invalid request body", resp.Message)
	assert.NotEmpty(t, resp.Details)

	SetVerboseErrors(false)
	resp = send()
	assert.Equal(t, "Invalid request body", resp.Message)
	assert.Empty(t, resp.Details)
}
