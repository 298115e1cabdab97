package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResearch struct {
	got entity.QueryRequest
}

func (s *stubResearch) Research(_ context.Context, req entity.QueryRequest) entity.ResearchAnswer {
	s.got = req
	return entity.ResearchAnswer{
		Query:      strings.TrimSpace(req.Query),
		AIResponse: "analysis",
		ModelUsed:  entity.ModelDynamicResearch,
		Confidence: 0.8,
	}
}

type stubJunior struct {
	got entity.QueryRequest
}

func (s *stubJunior) Ask(_ context.Context, req entity.QueryRequest) entity.JuniorAnswer {
	s.got = req
	return entity.JuniorAnswer{Query: req.Query, Answer: "answer", ModelUsed: entity.ModelJunior, Confidence: 0.9}
}

func newTestRouter() (http.Handler, *stubResearch, *stubJunior) {
	research := &stubResearch{}
	junior := &stubJunior{}
	router := NewRouter(RouterConfig{
		Handlers: NewHandlers(research, junior, nil),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("# metrics"))
		}),
	})
	return router, research, junior
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealthAndRoot(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, body := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "healthy", "version": "1.0.4"}, body)

	rec, body = do(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"service": "LegalIndia Backend", "status": "Active"}, body)
}

func TestResearchRoute(t *testing.T) {
	for _, path := range []string{"/api/v1/research", "/api/v1/research/"} {
		t.Run(path, func(t *testing.T) {
			router, research, _ := newTestRouter()

			rec, body := do(t, router, http.MethodPost, path, `{"query":" bail ","client_id":"acme","extra":1}`)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, entity.QueryRequest{Query: " bail ", ClientID: "acme"}, research.got)
			assert.Equal(t, map[string]any{
				"query":       "bail",
				"ai_response": "analysis",
				"model_used":  "Dynamic Legal Research Engine",
				"confidence":  0.8,
			}, body)
		})
	}
}

func TestJuniorRoute(t *testing.T) {
	router, _, junior := newTestRouter()

	rec, body := do(t, router, http.MethodPost, "/api/v1/junior/", `{"query":"What is FIR?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "What is FIR?", junior.got.Query)
	assert.Equal(t, "demo", junior.got.Tenant())
	assert.Equal(t, "answer", body["answer"])
	assert.Equal(t, "AI Legal Junior", body["model_used"])
}

func TestMalformedBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"empty", "", "request body is required"},
		{"not json", "query=bail", "invalid JSON body"},
		{"wrong type", `{"query":42}`, `field "query" must be a string`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newTestRouter()

			rec, body := do(t, router, http.MethodPost, "/api/v1/research", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.detail, body["detail"])
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/research/", nil)
	req.Header.Set("Origin", "https://app.legalindia.ai")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.legalindia.ai", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_EchoesOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "https://app.legalindia.ai", "https://app.legalindia.ai"},
		{"listed", []string{"https://app.legalindia.ai"}, "https://app.legalindia.ai", "https://app.legalindia.ai"},
		{"not listed", []string{"https://app.legalindia.ai"}, "https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(RouterConfig{AllowedOrigins: tt.allowed})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, _ := do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}
