// Package ocr manages the optional text-recognition capability of the
// bridge: a ranked list of engines where any importable engine satisfies
// the goal.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/pip"
)

// Capability probes and installs OCR engines through the venv installer.
type Capability struct {
	Engines []config.Engine
	Pip     *pip.Installer
}

// Available reports whether at least one configured engine imports cleanly.
func (c *Capability) Available(ctx context.Context) (bool, string) {
	if len(c.Engines) == 0 {
		return false, "no OCR engines configured"
	}
	reasons := make([]string, 0, len(c.Engines))
	for _, engine := range c.Engines {
		ok, reason := c.Pip.ImportCheck(ctx, []string{engine.ImportName()})
		if ok {
			return true, ""
		}
		reasons = append(reasons, fmt.Sprintf("%s: %s", engine.Name, reason))
	}
	return false, strings.Join(reasons, "; ")
}

// Install installs one engine. Wheels are preferred; a source build of an
// OCR stack is painful enough that it stays a deliberate second attempt.
func (c *Capability) Install(ctx context.Context, engine config.Engine) error {
	if err := c.Pip.InstallBinary(ctx, []string{engine.PackageName()}); err == nil {
		return nil
	}
	return c.Pip.InstallAllowSource(ctx, []string{engine.PackageName()})
}
