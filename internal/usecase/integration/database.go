package integration

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

// DatabaseValidator checks the SQLite file and the migration and model files
// that describe it.
type DatabaseValidator struct {
	inspector output.SchemaInspector
	workspace output.Workspace
	checklist entity.IntegrationChecklist
	path      string
}

// NewDatabaseValidator resolves dbPath against the workspace root when it is
// relative. An empty dbPath uses the checklist database.
func NewDatabaseValidator(inspector output.SchemaInspector, ws output.Workspace, cl entity.IntegrationChecklist, dbPath string) *DatabaseValidator {
	if dbPath == "" {
		dbPath = cl.Database
	}
	if !filepath.IsAbs(dbPath) {
		dbPath = ws.Abs(dbPath)
	}
	return &DatabaseValidator{inspector: inspector, workspace: ws, checklist: cl, path: dbPath}
}

func (v *DatabaseValidator) Component() entity.Component { return entity.ComponentDatabase }

func (v *DatabaseValidator) Validate(ctx context.Context) entity.ComponentResult {
	existence := v.existence()
	structure, tables := v.structure(ctx, existence.Valid)
	migrations := v.countFiles("migrations", v.checklist.MigrationGlobs, "migration(s)", "No migrations directory found")
	models := v.countFiles("models", v.checklist.ModelGlobs, "model file(s)", "No model files found")

	return entity.ComponentResult{
		Component: entity.ComponentDatabase,
		Overall:   entity.StatusOf(existence.Valid && structure.Valid),
		Steps:     []entity.StepResult{existence, structure, migrations, models},
		Summary:   fmt.Sprintf("Tables: %d, Connection: %t", tables, structure.Valid),
	}
}

func (v *DatabaseValidator) existence() entity.StepResult {
	size, err := v.inspector.FileSize(v.path)
	if err != nil {
		return entity.StepResult{
			Name:    "existence",
			Message: "Database not found: " + v.path,
		}
	}
	kb := float64(size) / 1024
	return entity.StepResult{
		Name:    "existence",
		Valid:   true,
		Fields:  entity.Fields{{Key: "size_kb", Value: math.Round(kb*10) / 10}},
		Message: fmt.Sprintf("Database found: %s (%.1f KB)", filepath.Base(v.path), kb),
	}
}

func (v *DatabaseValidator) structure(ctx context.Context, exists bool) (entity.StepResult, int) {
	if !exists {
		return entity.StepResult{
			Name:    "structure",
			Fields:  entity.Fields{{Key: "reason", Value: "Database not found"}},
			Message: "Database not found",
		}, 0
	}
	tables, err := v.inspector.Tables(ctx, v.path)
	if err != nil {
		return entity.StepResult{
			Name:    "structure",
			Fields:  entity.Fields{{Key: "error", Value: err.Error()}},
			Message: "Database validation failed: " + err.Error(),
		}, 0
	}
	return entity.StepResult{
		Name:    "structure",
		Valid:   true,
		Fields:  entity.Fields{{Key: "tables", Value: tables}},
		Message: fmt.Sprintf("Found %d tables: %s", len(tables), strings.Join(tables, ", ")),
	}, len(tables)
}

// countFiles never invalidates the component; a missing set only warns.
func (v *DatabaseValidator) countFiles(name string, globs []string, noun, missing string) entity.StepResult {
	files, err := v.workspace.Files(globs, nil)
	if err != nil {
		return entity.StepResult{
			Name:    name,
			Valid:   true,
			Fields:  entity.Fields{{Key: "count", Value: 0}, {Key: "error", Value: err.Error()}},
			Message: fmt.Sprintf("Could not scan %s: %v", name, err),
			Warning: true,
		}
	}
	step := entity.StepResult{
		Name:   name,
		Valid:  true,
		Fields: entity.Fields{{Key: "count", Value: len(files)}},
	}
	if len(files) == 0 {
		step.Message, step.Warning = missing, true
	} else {
		step.Message = fmt.Sprintf("Found %d %s", len(files), noun)
	}
	return step
}
