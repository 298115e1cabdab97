package integration

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/bmatcuk/doublestar/v4"
)

// APIIntegration is a component file that talks to the backend.
type APIIntegration struct {
	File    string `json:"file"`
	Pattern string `json:"pattern"`
}

// FrontendValidator inspects the React frontend without building it.
type FrontendValidator struct {
	checklist entity.FrontendChecklist
	workspace output.Workspace
}

func NewFrontendValidator(cl entity.FrontendChecklist, ws output.Workspace) *FrontendValidator {
	return &FrontendValidator{checklist: cl, workspace: ws}
}

func (v *FrontendValidator) Component() entity.Component { return entity.ComponentFrontend }

func (v *FrontendValidator) Validate(_ context.Context) entity.ComponentResult {
	dir := v.checklist.Dir
	if !v.workspace.IsDir(dir) {
		return entity.ComponentResult{
			Component: entity.ComponentFrontend,
			Overall:   entity.StatusNotApplicable,
			Reason:    "Frontend not present",
		}
	}

	structure, components := v.structure()
	api, integrations := v.apiIntegration()
	steps := []entity.StepResult{structure, api, v.envConfig(), v.entryDocument()}

	return entity.ComponentResult{
		Component: entity.ComponentFrontend,
		Overall:   entity.StatusOf(structure.Valid && api.Valid),
		Steps:     steps,
		Summary:   fmt.Sprintf("%d components, %d API integrations", components, integrations),
	}
}

func (v *FrontendValidator) file(name string) string {
	return path.Join(v.checklist.Dir, name)
}

func (v *FrontendValidator) componentFiles() ([]string, error) {
	return v.workspace.Glob(v.file(v.checklist.Components))
}

func (v *FrontendValidator) structure() (entity.StepResult, int) {
	var missing []string
	for _, name := range v.checklist.Required {
		if !v.workspace.Exists(v.file(name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return entity.StepResult{
			Name:    "structure",
			Fields:  entity.Fields{{Key: "missing", Value: missing}},
			Message: "Missing files: " + strings.Join(missing, ", "),
		}, 0
	}

	components, err := v.componentFiles()
	if err != nil {
		return entity.StepResult{
			Name:    "structure",
			Fields:  entity.Fields{{Key: "error", Value: err.Error()}},
			Message: "Component scan failed: " + err.Error(),
		}, 0
	}
	return entity.StepResult{
		Name:    "structure",
		Valid:   true,
		Fields:  entity.Fields{{Key: "components", Value: len(components)}},
		Message: fmt.Sprintf("Frontend structure valid, %d React components", len(components)),
	}, len(components)
}

func (v *FrontendValidator) apiIntegration() (entity.StepResult, int) {
	pattern := v.file(v.checklist.Components)
	base, _ := doublestar.SplitPattern(pattern)
	if !v.workspace.IsDir(base) {
		return entity.StepResult{
			Name:    "api_integration",
			Fields:  entity.Fields{{Key: "reason", Value: "No src directory"}},
			Message: "No src directory",
		}, 0
	}

	files, err := v.componentFiles()
	if err != nil {
		return entity.StepResult{
			Name:    "api_integration",
			Fields:  entity.Fields{{Key: "error", Value: err.Error()}},
			Message: "Component scan failed: " + err.Error(),
		}, 0
	}

	found := make([]APIIntegration, 0)
	for _, f := range files {
		data, err := v.workspace.ReadFile(f)
		if err != nil {
			continue
		}
		content := string(data)
		for _, marker := range v.checklist.APIMarkers {
			if strings.Contains(content, marker) {
				rel := strings.TrimPrefix(f, base+"/")
				found = append(found, APIIntegration{File: rel, Pattern: marker})
				break
			}
		}
	}

	return entity.StepResult{
		Name:  "api_integration",
		Valid: true,
		Fields: entity.Fields{
			{Key: "integrations", Value: len(found)},
			{Key: "points", Value: found},
		},
		Message: fmt.Sprintf("Found %d API integration points", len(found)),
	}, len(found)
}

// envConfig is informational and never invalid.
func (v *FrontendValidator) envConfig() entity.StepResult {
	found := make([]string, 0, len(v.checklist.EnvFiles))
	for _, name := range v.checklist.EnvFiles {
		if v.workspace.Exists(v.file(name)) {
			found = append(found, name)
		}
	}
	step := entity.StepResult{
		Name:   "env_config",
		Valid:  true,
		Fields: entity.Fields{{Key: "files", Value: found}},
	}
	if len(found) == 0 {
		step.Message, step.Warning = "No environment files found", true
	} else {
		step.Message = "Environment config found: " + strings.Join(found, ", ")
	}
	return step
}

// entryDocument reports on the HTML shell the bundle mounts into.
func (v *FrontendValidator) entryDocument() entity.StepResult {
	step := entity.StepResult{Name: "entry_document", Valid: true}
	for _, name := range v.checklist.EntryDocs {
		rel := v.file(name)
		if !v.workspace.Exists(rel) {
			continue
		}
		summary, err := v.workspace.InspectHTML(rel)
		if err != nil {
			step.Fields = entity.Fields{{Key: "file", Value: name}, {Key: "error", Value: err.Error()}}
			step.Message, step.Warning = fmt.Sprintf("Could not parse %s: %v", name, err), true
			return step
		}
		step.Fields = entity.Fields{
			{Key: "file", Value: name},
			{Key: "title", Value: summary.Title},
			{Key: "scripts", Value: summary.Scripts},
			{Key: "root_mount", Value: summary.HasRootNode},
		}
		step.Message = fmt.Sprintf("Entry document %s (%d scripts, #root mount: %t)", name, summary.Scripts, summary.HasRootNode)
		step.Warning = !summary.HasRootNode
		return step
	}
	step.Fields = entity.Fields{{Key: "file", Value: ""}}
	step.Message, step.Warning = "No entry document found", true
	return step
}
