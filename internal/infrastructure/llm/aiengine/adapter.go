package aiengine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

var _ output.EngineProbe = (*Adapter)(nil)

const serviceName = "ai_engine"

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HealthTimeout bounds the GET /health probe. Zero falls back to Timeout.
	HealthTimeout time.Duration
	Logger        output.LoggerPort
	Metrics       output.MetricsPort
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		Timeout:       30 * time.Second,
		HealthTimeout: 10 * time.Second,
	}
}

// Adapter talks to the internal lindia-ai engine over its JSON HTTP API.
type Adapter struct {
	client        *resty.Client
	baseURL       string
	timeout       time.Duration
	healthTimeout time.Duration
	logger        output.LoggerPort
	metrics       output.MetricsPort
}

func NewAdapter(cfg Config) *Adapter {
	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = cfg.Timeout
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Adapter{
		client:        client,
		baseURL:       baseURL,
		timeout:       cfg.Timeout,
		healthTimeout: healthTimeout,
		logger:        log.WithField("service", serviceName),
		metrics:       metrics,
	}
}

func (a *Adapter) Endpoint() string {
	return a.baseURL
}

// Infer posts the query to /inference. The answer and model fields are
// optional in the response; callers substitute their own defaults when blank.
func (a *Adapter) Infer(ctx context.Context, req output.InferenceRequest) (*output.InferenceResponse, error) {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/inference")
	elapsed := time.Since(start)
	if err != nil {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeError, elapsed)
		return nil, fmt.Errorf("%s request failed: %w", serviceName, err)
	}

	if resp.StatusCode() != 200 {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeStatus, elapsed)
		a.logger.Warn("Inference returned non-200", "status", resp.StatusCode())
		return nil, &output.StatusError{
			Service: serviceName,
			Code:    resp.StatusCode(),
			Body:    truncate(resp.String(), 200),
		}
	}
	a.metrics.ObserveUpstream(serviceName, output.OutcomeSuccess, elapsed)

	if !gjson.ValidBytes(resp.Body()) {
		return nil, fmt.Errorf("%s: undecodable response body", serviceName)
	}
	body := gjson.ParseBytes(resp.Body())
	if !body.IsObject() {
		return nil, fmt.Errorf("%s: response body is not a JSON object", serviceName)
	}
	return &output.InferenceResponse{
		Answer: field(body, "answer"),
		Model:  field(body, "model"),
	}, nil
}

func field(body gjson.Result, key string) *string {
	v := body.Get(key)
	if !v.Exists() {
		return nil
	}
	s := v.String()
	return &s
}

// Health issues GET /health and succeeds only on a 200 response.
func (a *Adapter) Health(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, a.healthTimeout)
	defer cancel()

	resp, err := a.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("%s health check failed: %w", serviceName, err)
	}
	if resp.StatusCode() != 200 {
		return &output.StatusError{Service: serviceName, Code: resp.StatusCode()}
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
