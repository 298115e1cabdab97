package entity

import "time"

// Checklist drives the pre-deployment checks and the integration validators.
// Commands are shell-like strings; an empty command disables that probe.
type Checklist struct {
	CommandTimeout time.Duration `yaml:"command_timeout" validate:"gt=0"`

	Backend     BackendChecklist     `yaml:"backend"`
	Frontend    FrontendChecklist    `yaml:"frontend"`
	API         APIChecklist         `yaml:"api"`
	Environment EnvironmentChecklist `yaml:"environment"`
	Integration IntegrationChecklist `yaml:"integration"`
}

type BackendChecklist struct {
	Lint               string   `yaml:"lint"`
	TypeCheck          string   `yaml:"type_check"`
	Test               string   `yaml:"test"`
	IntegrationTest    string   `yaml:"integration_test"`
	IntegrationTestDir string   `yaml:"integration_test_dir"`
	Build              string   `yaml:"build"`
	Audit              string   `yaml:"audit"`
	Manifest           string   `yaml:"manifest" validate:"required"`
	SourceGlobs        []string `yaml:"source_globs"`
	SourceExcludeGlobs []string `yaml:"source_exclude_globs"`
	NoTestsMarkers     []string `yaml:"no_tests_markers"`
}

type FrontendChecklist struct {
	Dir        string   `yaml:"dir" validate:"required"`
	Lint       string   `yaml:"lint"`
	TypeCheck  string   `yaml:"type_check"`
	Build      string   `yaml:"build"`
	Audit      string   `yaml:"audit"`
	Components string   `yaml:"components" validate:"required"`
	Required   []string `yaml:"required"`
	EnvFiles   []string `yaml:"env_files"`
	APIMarkers []string `yaml:"api_markers"`
	EntryDocs  []string `yaml:"entry_docs"`
}

type APIChecklist struct {
	Endpoints    []string `yaml:"endpoints"`
	MinEndpoints int      `yaml:"min_endpoints" validate:"gte=0"`
}

type EnvironmentChecklist struct {
	EnvFiles       []string `yaml:"env_files"`
	SecretPatterns []string `yaml:"secret_patterns"`
	SafeAccessors  []string `yaml:"safe_accessors"`
	Window         int      `yaml:"window" validate:"gt=0"`
}

type IntegrationChecklist struct {
	Database         string        `yaml:"database" validate:"required"`
	MigrationGlobs   []string      `yaml:"migration_globs"`
	ModelGlobs       []string      `yaml:"model_globs"`
	BackendMarkers   []string      `yaml:"backend_markers"`
	HealthTimeout    time.Duration `yaml:"health_timeout" validate:"gt=0"`
	InferenceTimeout time.Duration `yaml:"inference_timeout" validate:"gt=0"`
	ProbeQuery       string        `yaml:"probe_query"`
	ProbeContext     string        `yaml:"probe_context"`
	ProbeTenant      string        `yaml:"probe_tenant"`
}
