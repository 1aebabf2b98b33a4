// Package runtimeenv pins the interpreter the bridge runs on: a dedicated
// virtual environment whose interpreter version must satisfy a constraint.
package runtimeenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
)

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// Resolver probes and (re)creates the pinned virtual environment.
type Resolver struct {
	// Interpreter seeds the venv, e.g. "python3" or "py".
	Interpreter string
	Constraint  goversion.Constraints
	VenvDir     string
	Run         execx.Runner
}

// New parses the constraint and builds a resolver.
func New(interpreter, constraint, venvDir string, run execx.Runner) (*Resolver, error) {
	parsed, err := goversion.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("parse runtime constraint %q: %w", constraint, err)
	}
	return &Resolver{
		Interpreter: interpreter,
		Constraint:  parsed,
		VenvDir:     venvDir,
		Run:         run,
	}, nil
}

// VenvPython returns the interpreter path inside the venv.
func (r *Resolver) VenvPython() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(r.VenvDir, "Scripts", "python.exe")
	}
	return filepath.Join(r.VenvDir, "bin", "python")
}

// Satisfied reports whether the venv exists and its interpreter version
// matches the constraint. The reason explains any mismatch so the report
// can surface it.
func (r *Resolver) Satisfied(ctx context.Context) (bool, string) {
	python := r.VenvPython()
	if _, err := os.Stat(python); err != nil {
		return false, fmt.Sprintf("venv interpreter %s absent", python)
	}

	res, err := r.Run.Run(ctx, python, "--version")
	if err != nil {
		return false, fmt.Sprintf("venv interpreter not runnable: %v", err)
	}

	v, err := ParseVersion(res.PrimaryOutput())
	if err != nil {
		return false, err.Error()
	}
	if !r.Constraint.Check(v) {
		return false, fmt.Sprintf("venv interpreter is %s, want %s", v, r.Constraint)
	}
	return true, ""
}

// CreateVenv builds the venv with the configured interpreter.
func (r *Resolver) CreateVenv(ctx context.Context) error {
	return r.createWith(ctx, r.Interpreter)
}

// CreateVenvFallback builds the venv with whatever "python3"/"python" the
// PATH offers, for machines where the configured interpreter is absent.
func (r *Resolver) CreateVenvFallback(ctx context.Context) error {
	fallback := "python3"
	if runtime.GOOS == "windows" {
		fallback = "python"
	}
	if fallback == r.Interpreter {
		return fmt.Errorf("no fallback interpreter distinct from %s", r.Interpreter)
	}
	return r.createWith(ctx, fallback)
}

func (r *Resolver) createWith(ctx context.Context, interpreter string) error {
	if err := os.MkdirAll(filepath.Dir(r.VenvDir), 0o755); err != nil {
		return err
	}
	if _, err := r.Run.Run(ctx, interpreter, "-m", "venv", r.VenvDir); err != nil {
		return fmt.Errorf("create venv with %s: %w", interpreter, err)
	}
	// Seed pip so later install strategies have a consistent baseline.
	if _, err := r.Run.Run(ctx, r.VenvPython(), "-m", "pip", "--version"); err != nil {
		if _, err := r.Run.Run(ctx, r.VenvPython(), "-m", "ensurepip", "--upgrade"); err != nil {
			return fmt.Errorf("bootstrap pip in venv: %w", err)
		}
	}
	return nil
}

// RemoveVenv deletes the venv directory. Absence is success: this is both
// the runtime step's reset and a teardown resource.
func (r *Resolver) RemoveVenv(ctx context.Context) error {
	if err := os.RemoveAll(r.VenvDir); err != nil {
		return fmt.Errorf("remove venv %s: %w", r.VenvDir, err)
	}
	return nil
}

// ParseVersion extracts a semantic version from interpreter output such as
// "Python 3.11.4".
func ParseVersion(out string) (*goversion.Version, error) {
	match := versionPattern.FindString(strings.TrimSpace(out))
	if match == "" {
		return nil, fmt.Errorf("no version in interpreter output %q", out)
	}
	return goversion.NewVersion(match)
}
