package di

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/application/service"
	"github.com/Raghavaaa/lindia-b/internal/config"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/checklist"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/console"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/fsscan"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/git"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/llm/aiengine"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/logger"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/report"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/shell"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/sqlite"
	"github.com/Raghavaaa/lindia-b/internal/usecase/deployment"
	"github.com/Raghavaaa/lindia-b/internal/usecase/integration"
	"github.com/Raghavaaa/lindia-b/internal/usecase/verification"

	"github.com/spf13/afero"
)

type VVConfig struct {
	// Root is the project under verification.
	Root string
	// ChecklistPath overrides <root>/vv.yaml. An explicit path must exist.
	ChecklistPath string
	// DBPath overrides the checklist database for the integration run.
	DBPath  string
	NoColor bool
	Verbose bool
	Out     io.Writer
	Env     output.ConfigPort
}

// VVContainer holds the wired verification CLI.
type VVContainer struct {
	Checklist   *entity.Checklist
	Logger      output.LoggerPort
	Verifier    *verification.UseCase
	Integration *integration.UseCase
	Deployer    *deployment.UseCase
}

func NewVVContainer(cfg VVConfig) (*VVContainer, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Format = "console"
	logCfg.Level = "warn"
	if cfg.Verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cl, err := loadChecklist(root, cfg.ChecklistPath)
	if err != nil {
		log.Close()
		return nil, err
	}

	ws := fsscan.NewOSWorkspace(root)
	reporter := console.NewReporter(cfg.Out, cfg.NoColor)
	repo := git.Open(root)
	store := report.NewStore(report.Config{Dir: root, Logger: log})

	registry := service.NewCheckRegistry()
	verification.RegisterDefaultChecks(registry, verification.Deps{
		Checklist: *cl,
		Workspace: ws,
		Runner:    shell.NewRunner(cl.CommandTimeout, log),
		Reporter:  reporter,
	})
	verifier := verification.New(verification.Config{
		Registry: registry,
		Git:      repo,
		Store:    store,
		Reporter: reporter,
		Logger:   log,
	})

	engineURL := config.DefaultAIEngineURL
	if cfg.Env != nil {
		engineURL = cfg.Env.GetWithDefault("AI_ENGINE_URL", engineURL)
	}
	integrationUC := integration.New(integration.Config{
		Validators: []integration.ComponentValidator{
			integration.NewFrontendValidator(cl.Frontend, ws),
			integration.NewAIEngineValidator(newProbe(engineURL, cl, log), ws, *cl),
			integration.NewDatabaseValidator(sqlite.NewInspector(), ws, cl.Integration, cfg.DBPath),
		},
		Store:    store,
		Reporter: reporter,
		Logger:   log,
	})

	deployer := deployment.New(deployment.Config{
		Verifier:   verifier,
		Integrator: integrationUC,
		Git:        repo,
		Store:      store,
		Reporter:   reporter,
		Logger:     log,
	})

	return &VVContainer{
		Checklist:   cl,
		Logger:      log,
		Verifier:    verifier,
		Integration: integrationUC,
		Deployer:    deployer,
	}, nil
}

func (c *VVContainer) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func loadChecklist(root, path string) (*entity.Checklist, error) {
	required := path != ""
	if path == "" {
		path = filepath.Join(root, checklist.DefaultFile)
	}
	cl, err := checklist.Load(afero.NewOsFs(), path, required)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	return cl, nil
}

func newProbe(url string, cl *entity.Checklist, log output.LoggerPort) output.EngineProbe {
	engineCfg := aiengine.DefaultConfig(url)
	engineCfg.Timeout = cl.Integration.InferenceTimeout
	engineCfg.HealthTimeout = cl.Integration.HealthTimeout
	engineCfg.Logger = log
	return aiengine.NewAdapter(engineCfg)
}
