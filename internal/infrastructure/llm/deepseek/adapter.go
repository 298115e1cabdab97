package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*DeepSeekAdapter)(nil)

const serviceName = "deepseek"

type DeepSeekAdapter struct {
	client  *openai.Client
	model   string
	apiKey  string
	logger  output.LoggerPort
	metrics output.MetricsPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
	Metrics output.MetricsPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   "deepseek-chat",
		BaseURL: "https://api.deepseek.com/v1",
		Timeout: 60 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"contentLength", req.ContentLength,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("HTTP Request failed", "error", err)
		return resp, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}

func NewDeepSeekAdapter(cfg Config) *DeepSeekAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Logger != nil {
		transport = &loggingTransport{
			base:   http.DefaultTransport,
			logger: cfg.Logger,
		}
	}
	config.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = output.NopMetrics{}
	}

	return &DeepSeekAdapter{
		client:  openai.NewClientWithConfig(config),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		logger:  log,
		metrics: metrics,
	}
}

// Chat sends one non-streaming completion request. A response without
// choices or with blank content is reported as ErrEmptyResponse.
func (a *DeepSeekAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if a.apiKey == "" {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeSkipped, 0)
		return nil, fmt.Errorf("%s: %w", serviceName, output.ErrMissingAPIKey)
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	elapsed := time.Since(start)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			a.metrics.ObserveUpstream(serviceName, output.OutcomeStatus, elapsed)
			return nil, fmt.Errorf("chat completion failed: %w", &output.StatusError{
				Service: serviceName,
				Code:    apiErr.HTTPStatusCode,
				Body:    apiErr.Message,
			})
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			a.metrics.ObserveUpstream(serviceName, output.OutcomeStatus, elapsed)
			return nil, fmt.Errorf("chat completion failed: %w", &output.StatusError{
				Service: serviceName,
				Code:    reqErr.HTTPStatusCode,
			})
		}
		a.metrics.ObserveUpstream(serviceName, output.OutcomeError, elapsed)
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		a.metrics.ObserveUpstream(serviceName, output.OutcomeError, elapsed)
		return nil, fmt.Errorf("%s: no choices in response: %w", serviceName, output.ErrEmptyResponse)
	}
	a.metrics.ObserveUpstream(serviceName, output.OutcomeSuccess, elapsed)

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
		Model:   resp.Model,
	}, nil
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	role := entity.MessageRole(msg.Role)
	if role == "" {
		role = entity.RoleAssistant
	}
	return entity.Message{
		Role:    role,
		Content: msg.Content,
	}
}
