package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

var _ output.ReportStore = (*Store)(nil)

const (
	HistoryFile     = "deployment_history.json"
	FileStampLayout = "20060102_150405"

	lockRetryDelay = 50 * time.Millisecond
	lockTimeout    = 10 * time.Second
)

var ErrHistoryLocked = errors.New("deployment history is locked by another process")

type Config struct {
	// Fs is rooted at Dir. Defaults to the host filesystem under Dir. The
	// history lock lives on the host filesystem, so a custom Fs is not locked.
	Fs     afero.Fs
	Dir    string
	Logger output.LoggerPort
}

// Store writes V&V artefacts next to the project: timestamped reports,
// rollback logs and the deployment history.
type Store struct {
	fs     afero.Fs
	dir    string
	locked bool
	logger output.LoggerPort
	now    func() time.Time
}

func NewStore(cfg Config) *Store {
	dir := cfg.Dir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	fsys, locked := cfg.Fs, false
	if fsys == nil {
		fsys, locked = afero.NewBasePathFs(afero.NewOsFs(), dir), true
	}
	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	return &Store{fs: fsys, dir: dir, locked: locked, logger: log, now: time.Now}
}

// WithClock replaces the time source used for file name stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) stamp() string {
	return s.now().Format(FileStampLayout)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) SaveVerification(ctx context.Context, report *entity.VerificationReport, text string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	stamp := s.stamp()
	textName := fmt.Sprintf("vv_report_%s.txt", stamp)
	jsonName := fmt.Sprintf("vv_report_%s.json", stamp)

	if err := afero.WriteFile(s.fs, textName, []byte(text), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", textName, err)
	}
	if err := s.writeJSON(jsonName, report); err != nil {
		return s.path(textName), "", err
	}
	return s.path(textName), s.path(jsonName), nil
}

func (s *Store) SaveIntegration(ctx context.Context, report *entity.IntegrationReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("integration_validation_%s.json", s.stamp())
	if err := s.writeJSON(name, report); err != nil {
		return "", err
	}
	return s.path(name), nil
}

func (s *Store) SaveRollback(ctx context.Context, log entity.RollbackLog) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("rollback_log_%s.json", s.stamp())
	if err := s.writeJSON(name, log); err != nil {
		return "", err
	}
	return s.path(name), nil
}

// LoadHistory returns the recorded deployments. A missing or unreadable
// history file counts as an empty history.
func (s *Store) LoadHistory(ctx context.Context) ([]entity.DeploymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.readHistory(), nil
}

// AppendHistory adds record under an exclusive file lock so concurrent
// deployments never drop each other's entries.
func (s *Store) AppendHistory(ctx context.Context, record entity.DeploymentRecord) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	history := append(s.readHistory(), record)

	tmp := HistoryFile + ".tmp"
	if err := s.writeJSON(tmp, history); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, HistoryFile); err != nil {
		return fmt.Errorf("replace %s: %w", HistoryFile, err)
	}
	return nil
}

func (s *Store) readHistory() []entity.DeploymentRecord {
	history := []entity.DeploymentRecord{}
	data, err := afero.ReadFile(s.fs, HistoryFile)
	if errors.Is(err, os.ErrNotExist) {
		return history
	}
	if err != nil {
		s.logger.Warn("Failed to read deployment history", "error", err)
		return history
	}
	if err := json.Unmarshal(data, &history); err != nil {
		s.logger.Warn("Deployment history is corrupt, starting over", "error", err)
		return []entity.DeploymentRecord{}
	}
	return history
}

func (s *Store) lock(ctx context.Context) (func(), error) {
	if !s.locked {
		return func() {}, nil
	}
	fl := flock.New(s.path(HistoryFile + ".lock"))

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrHistoryLocked
		}
		return nil, fmt.Errorf("lock %s: %w", HistoryFile, err)
	}
	if !locked {
		return nil, ErrHistoryLocked
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("Failed to release history lock", "error", err)
		}
	}, nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := afero.WriteFile(s.fs, name, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
