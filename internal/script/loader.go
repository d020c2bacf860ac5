package script

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

var validOps = map[string]bool{
	OpConfig:     true,
	OpGet:        true,
	OpCreate:     true,
	OpDelete:     true,
	OpConnect:    true,
	OpDisconnect: true,
	OpReserve:    true,
	OpRelease:    true,
	OpPerform:    true,
}

// Parse parses a script from YAML bytes
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, scriptError("failed to parse YAML").WithCause(err)
	}

	if len(s.Steps) == 0 {
		return nil, scriptError("script must have at least one step")
	}

	for i := range s.Steps {
		step := &s.Steps[i]
		step.Op = strings.ToLower(strings.TrimSpace(step.Op))
		if err := validateStep(step); err != nil {
			return nil, err.WithDetail("step", i+1)
		}
	}

	return &s, nil
}

// Load loads a script from a file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scriptError("failed to read file").WithCause(err).WithDetail("file", path)
	}

	s, err := Parse(data)
	if err != nil {
		if e, ok := err.(*mdwerror.Error); ok {
			return nil, e.WithDetail("file", path)
		}
		return nil, err
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// LoadDirectory loads all scripts from a directory in name order.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, scriptError("failed to read directory").WithCause(err).WithDetail("file", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scripts := make([]*Script, 0, len(names))
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

func validateStep(step *Step) *mdwerror.Error {
	if !validOps[step.Op] {
		return scriptError("unknown operation").WithDetail("op", step.Op)
	}

	switch step.Op {
	case OpCreate:
		if step.Type == "" && step.Target == "" {
			return scriptError("create requires a type")
		}
	default:
		if step.Target == "" {
			return scriptError(step.Op + " requires a target")
		}
	}

	if len(step.Names) > 0 && step.Op != OpGet {
		return scriptError("names are only valid for get").WithDetail("op", step.Op)
	}
	if len(step.Attrs) > 0 {
		switch step.Op {
		case OpConfig, OpCreate, OpPerform:
		default:
			return scriptError("attrs are not valid for " + step.Op).WithDetail("op", step.Op)
		}
	}
	return nil
}

func scriptError(message string) *mdwerror.Error {
	return mdwerror.New(message).WithCode(mdwerror.CodeScript)
}
