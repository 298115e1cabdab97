package inlegalbert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnhancement(t *testing.T) {
	const q = "bail in murder case"

	tests := []struct {
		name string
		body string
		want string
	}{
		{"classification list", `[{"label":"CRIMINAL","score":0.91}]`, q + " - Enhanced by InLegalBERT: CRIMINAL"},
		{"nested classification list", `[[{"label":"BAIL","score":0.7}]]`, q + " - Enhanced by InLegalBERT: BAIL"},
		{"generated text", `{"generated_text":"Section 439 CrPC"}`, q + " - Enhanced: Section 439 CrPC"},
		{"result field", `{"result":"criminal law"}`, q + " - Enhanced: criminal law"},
		{"generated text wins over result", `{"generated_text":"a","result":"b"}`, q + " - Enhanced: a"},
		{"empty list", `[]`, q},
		{"list without label", `[{"score":0.2}]`, q},
		{"object without known keys", `{"error":"loading"}`, q},
		{"not json", `<html>`, q},
		{"scalar", `42`, q},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEnhancement(q, []byte(tt.body)))
		})
	}
}

func TestEnhance_SendsInferencePayload(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"PROPERTY"}]`))
	}))
	defer server.Close()

	cfg := DefaultConfig("hf-key")
	cfg.URL = server.URL
	a := NewAdapter(cfg)

	enhanced, err := a.Enhance(context.Background(), "register a flat")
	require.NoError(t, err)
	assert.Equal(t, "register a flat - Enhanced by InLegalBERT: PROPERTY", enhanced)
	assert.Equal(t, "register a flat", got["inputs"])
	assert.Equal(t, map[string]any{"wait_for_model": true}, got["options"])
}

func TestEnhance_NonOKKeepsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	cfg := DefaultConfig("hf-key")
	cfg.URL = server.URL
	a := NewAdapter(cfg)

	enhanced, err := a.Enhance(context.Background(), "q")
	assert.Equal(t, "q", enhanced)
	require.Error(t, err)
	code, ok := output.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestEnhance_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	cfg := DefaultConfig("hf-key")
	cfg.URL = server.URL
	cfg.Timeout = 20 * time.Millisecond
	a := NewAdapter(cfg)

	enhanced, err := a.Enhance(context.Background(), "q")
	assert.Error(t, err)
	assert.Equal(t, "q", enhanced)
}

func TestEnhance_MissingKey(t *testing.T) {
	a := NewAdapter(DefaultConfig(""))

	enhanced, err := a.Enhance(context.Background(), "q")
	assert.ErrorIs(t, err, output.ErrMissingAPIKey)
	assert.Equal(t, "q", enhanced)
}
