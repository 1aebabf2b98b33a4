// Package provision assembles the bridge install pipeline: it binds the
// domain backends (payload fetcher, runtime resolver, package installer,
// OCR capability, autostart registrars, port inspector) into engine steps
// and teardown resources driven by one config document.
package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/autostart"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/ocr"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/pip"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/portutil"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/runtimeenv"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/smartcard"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/source"
)

// SourceFetcher places and removes the bridge payload.
type SourceFetcher interface {
	Installed() (bool, string)
	ExtractArchive(ctx context.Context) error
	CloneSource(ctx context.Context) error
	Remove(ctx context.Context) error
}

// RuntimeResolver manages the pinned interpreter environment.
type RuntimeResolver interface {
	Satisfied(ctx context.Context) (bool, string)
	CreateVenv(ctx context.Context) error
	CreateVenvFallback(ctx context.Context) error
	RemoveVenv(ctx context.Context) error
}

// PackageInstaller installs and verifies the bridge's runtime packages.
type PackageInstaller interface {
	InstallBinary(ctx context.Context, packages []string) error
	InstallAllowSource(ctx context.Context, packages []string) error
	ImportCheck(ctx context.Context, modules []string) (bool, string)
}

// OCRCapability manages the optional text-recognition engines.
type OCRCapability interface {
	Available(ctx context.Context) (bool, string)
	Install(ctx context.Context, engine config.Engine) error
}

// DaemonProbe reports whether the platform smart-card daemon is running.
type DaemonProbe interface {
	Running(ctx context.Context) (bool, string)
}

// PortInspector answers whether the bridge port has a listener and can
// reclaim it.
type PortInspector interface {
	Listening(ctx context.Context, port int) (portutil.State, error)
	KillOwner(ctx context.Context, port int) error
}

// Launcher starts the bridge server process.
type Launcher interface {
	Start(ctx context.Context) error
}

// Backends bundles the collaborators the pipeline steps drive. Tests
// substitute fakes; DefaultBackends wires the exec-backed real ones.
type Backends struct {
	Source     SourceFetcher
	Runtime    RuntimeResolver
	Packages   PackageInstaller
	OCR        OCRCapability
	Registrars []autostart.Registrar
	SmartCard  DaemonProbe
	Ports      PortInspector
	Launcher   Launcher
}

// DefaultBackends builds the production backends for a config document.
func DefaultBackends(cfg *config.Config) (*Backends, error) {
	run := execx.Runner{
		Timeout: time.Duration(cfg.Settings.StrategyTimeout) * time.Second,
	}

	resolver, err := runtimeenv.New(cfg.Runtime.Interpreter, cfg.Runtime.Constraint, cfg.Runtime.VenvDir, run)
	if err != nil {
		return nil, err
	}

	fetcher := &source.Fetcher{
		InstallDir:  cfg.Bridge.InstallDir,
		Entrypoint:  cfg.Bridge.Entrypoint,
		ArchivePath: cfg.Bridge.ArchivePath,
		Repo:        cfg.Bridge.SourceRepo,
	}

	installer := &pip.Installer{Python: resolver.VenvPython(), Run: run}
	ports := portutil.Inspector{}

	return &Backends{
		Source:   fetcher,
		Runtime:  resolver,
		Packages: installer,
		OCR:      &ocr.Capability{Engines: cfg.OCR.Engines, Pip: installer},
		Registrars: []autostart.Registrar{
			&autostart.SchedulerRegistrar{
				TaskName: cfg.Autostart.TaskName,
				Command:  StartCommand(cfg, resolver.VenvPython()),
				Run:      run,
			},
			&autostart.ShortcutRegistrar{
				Dir:      cfg.Autostart.StartupDir,
				BaseName: cfg.Autostart.TaskName,
				Command:  StartCommand(cfg, resolver.VenvPython()),
			},
		},
		SmartCard: &smartcard.Service{Name: cfg.Bridge.SmartCardService, Run: run},
		Ports:     ports,
		Launcher: &ServerLauncher{
			Python: resolver.VenvPython(),
			Script: filepath.Join(cfg.Bridge.InstallDir, cfg.Bridge.Entrypoint),
			Dir:    cfg.Bridge.InstallDir,
			Port:   cfg.Bridge.Port,
			Ports:  ports,
		},
	}, nil
}

// StartCommand is the command line that launches the bridge server, as
// registered with the autostart backends.
func StartCommand(cfg *config.Config, python string) string {
	script := filepath.Join(cfg.Bridge.InstallDir, cfg.Bridge.Entrypoint)
	return fmt.Sprintf("\"%s\" \"%s\"", python, script)
}
