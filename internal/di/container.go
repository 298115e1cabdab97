package di

import (
	"fmt"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/config"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/httpapi"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/llm/aiengine"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/llm/deepseek"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/llm/inlegalbert"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/logger"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/metrics"
	"github.com/Raghavaaa/lindia-b/internal/usecase/fallback"
	"github.com/Raghavaaa/lindia-b/internal/usecase/junior"
	"github.com/Raghavaaa/lindia-b/internal/usecase/research"

	"github.com/go-chi/chi/v5"
)

// Container holds the wired backend.
type Container struct {
	Config   *config.Config
	Logger   output.LoggerPort
	Metrics  *metrics.Registry
	Engine   *aiengine.Adapter
	Research input.ResearchService
	Junior   input.JuniorService
	Router   chi.Router
	Server   *httpapi.Server
}

func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	reg := metrics.New()
	engine := newEngine(cfg, log, reg)

	enhancer := inlegalbert.NewAdapter(inlegalbert.Config{
		APIKey:  cfg.InLegalBERT.APIKey,
		URL:     cfg.InLegalBERT.URL,
		Timeout: cfg.InLegalBERT.Timeout,
		Logger:  log,
		Metrics: reg,
	})

	researchCfg := research.Config{
		Enhancer:  enhancer,
		Engine:    engine,
		Fallback:  fallback.New(log),
		Logger:    log,
		Metrics:   reg,
		MaxTokens: cfg.DeepSeek.MaxTokens,
	}
	if cfg.DeepSeek.APIKey != "" {
		researchCfg.LLM = deepseek.NewDeepSeekAdapter(deepseek.Config{
			APIKey:  cfg.DeepSeek.APIKey,
			Model:   cfg.DeepSeek.Model,
			BaseURL: cfg.DeepSeek.BaseURL,
			Timeout: cfg.DeepSeek.Timeout,
			Logger:  log,
			Metrics: reg,
		})
	} else {
		log.Warn("DEEPSEEK_API_KEY not set - research enhancement chain disabled")
	}
	if cfg.InLegalBERT.APIKey == "" {
		log.Warn("INLEGALBERT_API_KEY not set - queries are forwarded without enhancement")
	}

	researchUC := research.New(researchCfg)
	juniorUC := junior.New(engine, log, reg)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handlers:       httpapi.NewHandlers(researchUC, juniorUC, log),
		Metrics:        reg.Handler(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AccessLog:      true,
	})

	return &Container{
		Config:   cfg,
		Logger:   log,
		Metrics:  reg,
		Engine:   engine,
		Research: researchUC,
		Junior:   juniorUC,
		Router:   router,
		Server:   httpapi.NewServer(httpapi.DefaultServerConfig(cfg.Addr()), router, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newEngine(cfg *config.Config, log output.LoggerPort, reg output.MetricsPort) *aiengine.Adapter {
	engineCfg := aiengine.DefaultConfig(cfg.AIEngine.URL)
	engineCfg.Timeout = cfg.AIEngine.Timeout
	engineCfg.Logger = log
	engineCfg.Metrics = reg
	return aiengine.NewAdapter(engineCfg)
}
