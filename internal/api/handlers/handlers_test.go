package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondRejection(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondRejection(rec, "day_blocked", "", "holiday")

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "day_blocked", body["reason"])
	assert.NotContains(t, body, "slot")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"x"}`},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "truncated", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := DecodeJSON(req, &v)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())

	_, err = ParseOptionalDate("10/06/2025")
	assert.Error(t, err)
}
