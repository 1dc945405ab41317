package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovematch_server/services"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &services.ValidationError{Message: "Please fill in all fields"}, http.StatusBadRequest, "Please fill in all fields"},
		{"username taken", fmt.Errorf("Signup failed: %w", services.ErrUsernameTaken), http.StatusConflict, "Username already exists"},
		{"login failed", services.ErrInvalidCredentials, http.StatusUnauthorized, "Login failed"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", services.ErrNotFound, http.StatusNotFound, "Not found"},
		{"chat not configured", services.ErrChatNotConfigured, http.StatusInternalServerError, services.ErrChatNotConfigured.Error()},
		{"unknown", errors.New("dynamo exploded"), http.StatusInternalServerError, "Failed to do the thing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err, "Failed to do the thing")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var payload struct {
		UserID string `json:"userId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"userId":"u1"}`))
	require.NoError(t, DecodeJSON(req, &payload))
	assert.Equal(t, "u1", payload.UserID)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.NoError(t, DecodeJSON(req, &payload))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"userId":`))
	assert.Error(t, DecodeJSON(req, &payload))
}
