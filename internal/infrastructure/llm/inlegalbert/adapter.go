package inlegalbert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

var _ output.QueryEnhancer = (*Adapter)(nil)

const serviceName = "inlegalbert"

type Config struct {
	APIKey  string
	URL     string
	Timeout time.Duration
	Logger  output.LoggerPort
	Metrics output.MetricsPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		URL:     "https://api-inference.huggingface.co/models/law-ai/InLegalBERT",
		Timeout: 30 * time.Second,
	}
}

// Adapter enhances legal queries through the Hugging Face hosted InLegalBERT model.
type Adapter struct {
	client  *resty.Client
	url     string
	apiKey  string
	logger  output.LoggerPort
	metrics output.MetricsPort
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

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Adapter{
		client:  client,
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		logger:  log.WithField("service", serviceName),
		metrics: metrics,
	}
}

type inferenceRequest struct {
	Inputs  string           `json:"inputs"`
	Options inferenceOptions `json:"options"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Enhance returns the query with the model's contribution appended. A 200
// response in an unrecognised shape yields the query unchanged with a nil
// error; transport failures and other statuses are returned as errors and the
// caller decides to continue with the original query.
func (a *Adapter) Enhance(ctx context.Context, query string) (string, error) {
	if a.apiKey == "" {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeSkipped, 0)
		return query, fmt.Errorf("%s: %w", serviceName, output.ErrMissingAPIKey)
	}

	start := time.Now()
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetBody(inferenceRequest{
			Inputs:  query,
			Options: inferenceOptions{WaitForModel: true},
		}).
		Post(a.url)
	elapsed := time.Since(start)
	if err != nil {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeError, elapsed)
		return query, fmt.Errorf("%s request failed: %w", serviceName, err)
	}

	if resp.StatusCode() != 200 {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeStatus, elapsed)
		return query, &output.StatusError{
			Service: serviceName,
			Code:    resp.StatusCode(),
			Body:    truncate(resp.String(), 200),
		}
	}
	a.metrics.ObserveUpstream(serviceName, output.OutcomeSuccess, elapsed)

	enhanced := ParseEnhancement(query, resp.Body())
	a.logger.Debug("Query enhanced", "preview", truncate(enhanced, 100))
	return enhanced, nil
}

// ParseEnhancement understands the response shapes the inference API returns:
// a classification list whose first entry carries a label, or an object with
// generated_text or result.
func ParseEnhancement(query string, body []byte) string {
	if !gjson.ValidBytes(body) {
		return query
	}
	data := gjson.ParseBytes(body)

	switch {
	case data.IsArray():
		first := data.Get("0")
		if first.IsArray() {
			first = first.Get("0")
		}
		if label := first.Get("label").String(); label != "" {
			return fmt.Sprintf("%s - Enhanced by InLegalBERT: %s", query, label)
		}
	case data.IsObject():
		if text := data.Get("generated_text").String(); text != "" {
			return fmt.Sprintf("%s - Enhanced: %s", query, text)
		}
		if result := data.Get("result").String(); result != "" {
			return fmt.Sprintf("%s - Enhanced: %s", query, result)
		}
	}
	return query
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
