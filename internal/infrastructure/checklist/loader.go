package checklist

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up at the project root when no explicit path is given.
const DefaultFile = "vv.yaml"

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns the embedded checklist.
func Defaults() (*entity.Checklist, error) {
	cl := &entity.Checklist{}
	if err := decode(defaultsYAML, cl); err != nil {
		return nil, fmt.Errorf("embedded checklist: %w", err)
	}
	return cl, nil
}

// Load layers the file at path over the embedded defaults. Keys missing from
// the file keep their default; lists present in the file replace the default
// list. When required is false a missing file is not an error.
func Load(fsys afero.Fs, path string, required bool) (*entity.Checklist, error) {
	cl, err := Defaults()
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
		return cl, nil
	case err != nil:
		return nil, fmt.Errorf("read checklist %s: %w", path, err)
	}

	if err := decode(data, cl); err != nil {
		return nil, fmt.Errorf("checklist %s: %w", path, err)
	}
	if err := Validate(cl); err != nil {
		return nil, fmt.Errorf("checklist %s: %w", path, err)
	}
	return cl, nil
}

func Validate(cl *entity.Checklist) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cl); err != nil {
		return fmt.Errorf("invalid checklist: %w", err)
	}
	return nil
}

func decode(data []byte, cl *entity.Checklist) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
