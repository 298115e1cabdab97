package env

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct{}

// NewEnvService loads .env and then .env.<APP_ENV> on top of the process
// environment. Missing files are not an error: deployments inject variables
// directly.
func NewEnvService() *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file with secrets found (this is OK for CI/CD)")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Overload(envFile); err != nil {
			log.Printf("Warning: could not load %s: %v", envFile, err)
		}
	}

	return &EnvService{}
}

// NewFromMap builds a service over a fixed set of variables, without touching
// the process environment.
func NewFromMap(vars map[string]string) *MapService {
	return &MapService{vars: vars}
}

func (e *EnvService) Get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *EnvService) MustGet(key string) string {
	val := e.Get(key)
	if val == "" {
		log.Fatalf("ENV %s is missing", key)
	}
	return val
}

func (e *EnvService) GetWithDefault(key, defaultValue string) string {
	return withDefault(e.Get(key), defaultValue)
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	return parseBool(e.Get(key), defaultValue)
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	return parseInt(e.Get(key), defaultValue)
}

func (e *EnvService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	return parseDuration(e.Get(key), defaultValue)
}

var _ output.ConfigPort = (*MapService)(nil)

type MapService struct {
	vars map[string]string
}

func (m *MapService) Get(key string) string {
	return strings.TrimSpace(m.vars[key])
}

func (m *MapService) MustGet(key string) string {
	val := m.Get(key)
	if val == "" {
		panic(fmt.Sprintf("ENV %s is missing", key))
	}
	return val
}

func (m *MapService) GetWithDefault(key, defaultValue string) string {
	return withDefault(m.Get(key), defaultValue)
}

func (m *MapService) GetBool(key string, defaultValue bool) bool {
	return parseBool(m.Get(key), defaultValue)
}

func (m *MapService) GetInt(key string, defaultValue int) int {
	return parseInt(m.Get(key), defaultValue)
}

func (m *MapService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	return parseDuration(m.Get(key), defaultValue)
}

func withDefault(val, defaultValue string) string {
	if val == "" {
		return defaultValue
	}
	return val
}

func parseBool(val string, defaultValue bool) bool {
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseInt(val string, defaultValue int) int {
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseDuration accepts Go durations ("30s") and bare seconds ("30").
func parseDuration(val string, defaultValue time.Duration) time.Duration {
	if val == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultValue
}
