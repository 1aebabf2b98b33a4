// Package pip installs and verifies Python packages inside the bridge venv.
//
// pip's exit code is treated as a hint only. Ground truth for an install is
// importing the package through the venv interpreter, matching the way the
// provisioning scripts re-import after every install.
package pip

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
)

// Installer drives pip through a specific interpreter.
type Installer struct {
	// Python is the venv interpreter; pip runs as "python -m pip" so the
	// install always lands in the right environment.
	Python string
	Run    execx.Runner
}

// InstallBinary installs packages from prebuilt wheels only. This is the
// preferred strategy: fast and independent of a local build toolchain.
func (i *Installer) InstallBinary(ctx context.Context, packages []string) error {
	args := append([]string{"-m", "pip", "install", "--only-binary", ":all:"}, packages...)
	if _, err := i.Run.Run(ctx, i.Python, args...); err != nil {
		return fmt.Errorf("binary-only install: %w", err)
	}
	return nil
}

// InstallAllowSource installs packages permitting source builds. Slower and
// toolchain-dependent, used when no wheel exists for the platform.
func (i *Installer) InstallAllowSource(ctx context.Context, packages []string) error {
	args := append([]string{"-m", "pip", "install"}, packages...)
	if _, err := i.Run.Run(ctx, i.Python, args...); err != nil {
		return fmt.Errorf("source-allowed install: %w", err)
	}
	return nil
}

// ImportCheck verifies that every module is importable in the venv.
func (i *Installer) ImportCheck(ctx context.Context, modules []string) (bool, string) {
	if len(modules) == 0 {
		return true, ""
	}
	script := "import " + strings.Join(modules, ", ")
	res, err := i.Run.Run(ctx, i.Python, "-c", script)
	if err != nil {
		reason := res.PrimaryOutput()
		if reason == "" {
			reason = err.Error()
		}
		return false, fmt.Sprintf("import check failed: %s", lastLine(reason))
	}
	return true, ""
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
