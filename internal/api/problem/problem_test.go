package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/transfers", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	w := httptest.NewRecorder()

	Write(w, req, http.StatusBadRequest, Type("wallet/invalid-amount"), "", "amount must be positive")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var details Details
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "https://errors.walletledger.dev/wallet/invalid-amount", details.Type)
	assert.Equal(t, http.StatusText(http.StatusBadRequest), details.Title)
	assert.Equal(t, http.StatusBadRequest, details.Status)
	assert.Equal(t, "amount must be positive", details.Detail)
	assert.Equal(t, "/v1/transfers", details.Instance)
	assert.Equal(t, "trace-123", details.RequestID)
}

func TestWriteDefaultsType(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, nil, http.StatusInternalServerError, "", "", "boom")

	var details Details
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "about:blank", details.Type)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), details.Title)
}
