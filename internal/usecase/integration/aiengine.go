package integration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

// AIEngineValidator probes the inference service and checks that the backend
// sources actually call it.
type AIEngineValidator struct {
	engine    output.EngineProbe
	workspace output.Workspace
	checklist entity.Checklist
	now       func() time.Time
}

func NewAIEngineValidator(engine output.EngineProbe, ws output.Workspace, cl entity.Checklist) *AIEngineValidator {
	return &AIEngineValidator{engine: engine, workspace: ws, checklist: cl, now: time.Now}
}

func (v *AIEngineValidator) Component() entity.Component { return entity.ComponentAIEngine }

func (v *AIEngineValidator) Validate(ctx context.Context) entity.ComponentResult {
	health := v.health(ctx)
	inference, model := v.inference(ctx)
	backend := v.backendIntegration()

	models := 0
	if model != "" {
		models = 1
	}
	return entity.ComponentResult{
		Component: entity.ComponentAIEngine,
		Overall:   entity.StatusOf(health.Valid && inference.Valid),
		Steps:     []entity.StepResult{health, inference, backend},
		Summary:   fmt.Sprintf("Endpoint: %t, Models: %d", health.Valid, models),
	}
}

func (v *AIEngineValidator) health(ctx context.Context) entity.StepResult {
	timeout := v.checklist.Integration.HealthTimeout
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := v.engine.Endpoint()
	start := v.now()
	err := v.engine.Health(ctx)
	elapsed := float64(v.now().Sub(start).Microseconds()) / 1000

	if err == nil {
		return entity.StepResult{
			Name:  "health",
			Valid: true,
			Fields: entity.Fields{
				{Key: "endpoint", Value: endpoint},
				{Key: "response_time", Value: math.Round(elapsed*10) / 10},
			},
			Message: fmt.Sprintf("AI Engine healthy at %s (response: %.0fms)", endpoint, elapsed),
		}
	}
	if code, ok := output.StatusCode(err); ok {
		return entity.StepResult{
			Name:    "health",
			Fields:  entity.Fields{{Key: "endpoint", Value: endpoint}, {Key: "status", Value: code}},
			Message: fmt.Sprintf("AI Engine at %s returned %d", endpoint, code),
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return entity.StepResult{
			Name:    "health",
			Fields:  entity.Fields{{Key: "endpoint", Value: endpoint}, {Key: "error", Value: "Timeout"}},
			Message: fmt.Sprintf("AI Engine timeout after %s", timeout),
		}
	}
	return entity.StepResult{
		Name:    "health",
		Fields:  entity.Fields{{Key: "endpoint", Value: endpoint}, {Key: "error", Value: err.Error()}},
		Message: "AI Engine unreachable: " + err.Error(),
	}
}

func (v *AIEngineValidator) inference(ctx context.Context) (entity.StepResult, string) {
	cfg := v.checklist.Integration
	ctx, cancel := context.WithTimeout(ctx, cfg.InferenceTimeout)
	defer cancel()

	resp, err := v.engine.Infer(ctx, output.InferenceRequest{
		Query:    cfg.ProbeQuery,
		Context:  cfg.ProbeContext,
		TenantID: cfg.ProbeTenant,
	})
	if err != nil {
		if code, ok := output.StatusCode(err); ok {
			return entity.StepResult{
				Name:    "inference",
				Fields:  entity.Fields{{Key: "status", Value: code}},
				Message: fmt.Sprintf("Inference failed: %d", code),
			}, ""
		}
		return entity.StepResult{
			Name:    "inference",
			Fields:  entity.Fields{{Key: "error", Value: err.Error()}},
			Message: "Inference test failed: " + err.Error(),
		}, ""
	}

	model := resp.ModelOr("")
	if model == "" {
		model = "unknown"
	}
	return entity.StepResult{
		Name:    "inference",
		Valid:   true,
		Fields:  entity.Fields{{Key: "model", Value: model}},
		Message: fmt.Sprintf("AI inference working (model: %s)", model),
	}, model
}

// backendIntegration is informational: it does not affect the overall result.
func (v *AIEngineValidator) backendIntegration() entity.StepResult {
	backend := v.checklist.Backend
	files, err := v.workspace.Files(backend.SourceGlobs, backend.SourceExcludeGlobs)
	if err != nil {
		return entity.StepResult{
			Name:    "integration",
			Fields:  entity.Fields{{Key: "error", Value: err.Error()}},
			Message: "Integration check failed: " + err.Error(),
		}
	}

	markers := v.checklist.Integration.BackendMarkers
	seen := make([]bool, len(markers))
	for _, f := range files {
		data, err := v.workspace.ReadFile(f)
		if err != nil {
			continue
		}
		for i, marker := range markers {
			if !seen[i] && strings.Contains(string(data), marker) {
				seen[i] = true
			}
		}
	}
	found := make([]string, 0, len(markers))
	for i, marker := range markers {
		if seen[i] {
			found = append(found, marker)
		}
	}

	if len(found) == 0 {
		return entity.StepResult{
			Name:    "integration",
			Fields:  entity.Fields{{Key: "patterns", Value: found}},
			Message: "No AI integration patterns found in backend",
			Warning: true,
		}
	}
	return entity.StepResult{
		Name:    "integration",
		Valid:   true,
		Fields:  entity.Fields{{Key: "patterns", Value: found}},
		Message: "Backend has AI integration configured",
	}
}
