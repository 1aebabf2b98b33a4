package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/autostart"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
)

// Steps builds the install pipeline in execution order. The order is a
// dependency chain: the payload must exist before the runtime, the runtime
// before the packages, and everything before the server is started.
func Steps(cfg *config.Config, b *Backends) ([]engine.Step, error) {
	install := installStrategies(cfg, b)
	if len(install) == 0 {
		return nil, fmt.Errorf("neither bridge.archive_path nor bridge.source_repo is configured; no way to install the payload")
	}

	packages := make([]string, 0, len(cfg.Packages))
	imports := make([]string, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		packages = append(packages, pkg.Name)
		imports = append(imports, pkg.ImportName())
	}

	steps := []engine.Step{
		{
			Goal:          "bridge-installed",
			Description:   "bridge payload present under the install dir",
			Postcondition: probe(func(ctx context.Context) (bool, string) { return b.Source.Installed() }),
			Strategies:    install,
			Reset:         engine.ActionFunc(b.Source.Remove),
			Required:      true,
			Remediation:   fmt.Sprintf("place the bridge payload in %s by hand, or point bridge.archive_path at a release archive", cfg.Bridge.InstallDir),
		},
		{
			Goal:          "runtime-pinned",
			Description:   fmt.Sprintf("virtual environment with an interpreter matching %s", cfg.Runtime.Constraint),
			Postcondition: probe(b.Runtime.Satisfied),
			Strategies: []engine.Strategy{
				engine.NewStrategy("create-venv", b.Runtime.CreateVenv),
				engine.NewStrategy("create-venv-fallback", b.Runtime.CreateVenvFallback),
			},
			Reset:       engine.ActionFunc(b.Runtime.RemoveVenv),
			Required:    true,
			Remediation: fmt.Sprintf("install an interpreter satisfying %s and make %q resolvable on PATH", cfg.Runtime.Constraint, cfg.Runtime.Interpreter),
		},
		{
			Goal:        "deps-installed",
			Description: "runtime packages importable inside the venv",
			Postcondition: probe(func(ctx context.Context) (bool, string) {
				return b.Packages.ImportCheck(ctx, imports)
			}),
			Strategies: []engine.Strategy{
				engine.NewStrategy("install-wheels", func(ctx context.Context) error {
					return b.Packages.InstallBinary(ctx, packages)
				}),
				engine.NewStrategy("install-from-source", func(ctx context.Context) error {
					return b.Packages.InstallAllowSource(ctx, packages)
				}),
			},
			Required:    true,
			Remediation: "run pip install inside the venv by hand and check the build-toolchain output",
		},
	}

	if cfg.OCR.Enabled {
		steps = append(steps, ocrStep(cfg, b))
	}

	steps = append(steps,
		engine.Step{
			Goal:          "autostart-registered",
			Description:   "bridge launches at logon",
			Postcondition: anyRegistered(b.Registrars),
			Strategies:    registerStrategies(b.Registrars),
			Reset:         unregisterAll(b.Registrars),
			Required:      true,
			Remediation:   "register the bridge start command with your session manager manually",
		},
		// The daemon belongs to the platform, not to this installer: the
		// pipeline can only observe it, so the step carries no strategies.
		engine.Step{
			Goal:          "smartcard-daemon-running",
			Description:   fmt.Sprintf("smart-card service %s accepting readers", cfg.Bridge.SmartCardService),
			Postcondition: probe(b.SmartCard.Running),
			ProbeOnly:     true,
			Remediation:   fmt.Sprintf("start the service, e.g. sc start %s (as Administrator), then re-run install", cfg.Bridge.SmartCardService),
		},
		engine.Step{
			Goal:        "service-reachable",
			Description: fmt.Sprintf("bridge listening on port %d", cfg.Bridge.Port),
			Postcondition: probe(func(ctx context.Context) (bool, string) {
				state, err := b.Ports.Listening(ctx, cfg.Bridge.Port)
				if err != nil {
					return false, err.Error()
				}
				if !state.Listening {
					return false, fmt.Sprintf("no listener on port %d", cfg.Bridge.Port)
				}
				return true, ""
			}),
			Strategies: []engine.Strategy{
				engine.NewStrategy("spawn-server", b.Launcher.Start),
			},
			Remediation: "start the bridge by hand and check its log for startup errors",
		},
	)

	return steps, nil
}

func installStrategies(cfg *config.Config, b *Backends) []engine.Strategy {
	var strategies []engine.Strategy
	if cfg.Bridge.ArchivePath != "" {
		strategies = append(strategies, engine.NewStrategy("extract-archive", b.Source.ExtractArchive))
	}
	if cfg.Bridge.SourceRepo != "" {
		strategies = append(strategies, engine.NewStrategy("clone-source", b.Source.CloneSource))
	}
	return strategies
}

func ocrStep(cfg *config.Config, b *Backends) engine.Step {
	strategies := make([]engine.Strategy, 0, len(cfg.OCR.Engines))
	for _, eng := range cfg.OCR.Engines {
		eng := eng
		strategies = append(strategies, engine.NewStrategy("install-"+eng.Name, func(ctx context.Context) error {
			return b.OCR.Install(ctx, eng)
		}))
	}
	return engine.Step{
		Goal:          "ocr-capable",
		Description:   "at least one OCR engine importable",
		Postcondition: probe(b.OCR.Available),
		Strategies:    strategies,
		Remediation:   "install one of the configured OCR engines manually, or disable ocr in the config",
	}
}

func registerStrategies(registrars []autostart.Registrar) []engine.Strategy {
	strategies := make([]engine.Strategy, 0, len(registrars))
	for _, reg := range registrars {
		strategies = append(strategies, engine.NewStrategy(reg.Name(), reg.Register))
	}
	return strategies
}

// anyRegistered is satisfied when any mechanism has the bridge registered.
// Probe errors read as unsatisfied so a broken scheduler CLI falls through
// to the shortcut strategy instead of aborting the step.
func anyRegistered(registrars []autostart.Registrar) engine.Probe {
	return engine.ProbeFunc(func(ctx context.Context) engine.ProbeResult {
		reasons := make([]string, 0, len(registrars))
		for _, reg := range registrars {
			ok, err := reg.IsRegistered(ctx)
			if ok {
				return engine.Satisfied()
			}
			if err != nil {
				reasons = append(reasons, fmt.Sprintf("%s: %v", reg.Name(), err))
			} else {
				reasons = append(reasons, fmt.Sprintf("%s: not registered", reg.Name()))
			}
		}
		return engine.Unsatisfied("%s", strings.Join(reasons, "; "))
	})
}

// unregisterAll clears every mechanism so a re-registration never leaves a
// second stale launcher behind.
func unregisterAll(registrars []autostart.Registrar) engine.Action {
	return engine.ActionFunc(func(ctx context.Context) error {
		for _, reg := range registrars {
			if err := reg.Unregister(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// probe adapts the backends' (bool, reason) checks to the engine contract.
func probe(check func(ctx context.Context) (bool, string)) engine.Probe {
	return engine.ProbeFunc(func(ctx context.Context) engine.ProbeResult {
		ok, reason := check(ctx)
		if ok {
			return engine.Satisfied()
		}
		return engine.Unsatisfied("%s", reason)
	})
}
