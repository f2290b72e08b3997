package httpjson

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFields_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/verify-pin/", strings.NewReader(`{"pin": 1234, "album_id": " abc ", "extra": true}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	fields, err := ReadFields(r, "pin", "album_id", "missing")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"pin": "1234", "album_id": "abc"}, fields)
}

func TestReadFields_Form(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/verify-pin/", strings.NewReader("pin=4321&album_id=xyz"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fields, err := ReadFields(r, "pin", "album_id")
	require.NoError(t, err)

	assert.Equal(t, "4321", fields["pin"])
	assert.Equal(t, "xyz", fields["album_id"])
}

func TestReadFields_BadJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/verify-pin/", strings.NewReader(`{"pin":`))
	r.Header.Set("Content-Type", "application/json")

	_, err := ReadFields(r, "pin")
	assert.Error(t, err)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "PIN is required")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"PIN is required"}`, w.Body.String())
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://api.example.com/x", nil)
	assert.Equal(t, "http://api.example.com", BaseURL(r))

	r.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://api.example.com", BaseURL(r))
}
