package config

// Config is the full bridge provisioning document.
type Config struct {
	Version   string    `yaml:"version" validate:"required"`
	Name      string    `yaml:"name" validate:"required,min=1,max=100"`
	Settings  Settings  `yaml:"settings,omitempty"`
	Bridge    Bridge    `yaml:"bridge" validate:"required"`
	Runtime   Runtime   `yaml:"runtime" validate:"required"`
	Packages  []Package `yaml:"packages" validate:"required,min=1,dive"`
	OCR       OCR       `yaml:"ocr,omitempty"`
	Autostart Autostart `yaml:"autostart,omitempty"`
}

// Settings holds global execution parameters.
type Settings struct {
	// StateDir hosts the run lock and other provisioning bookkeeping.
	StateDir string `yaml:"state_dir,omitempty"`
	// ProbeTimeout bounds every probe, in seconds.
	ProbeTimeout int `yaml:"probe_timeout,omitempty" validate:"omitempty,min=1,max=3600"`
	// StrategyTimeout bounds every subprocess a strategy spawns, in seconds.
	StrategyTimeout int  `yaml:"strategy_timeout,omitempty" validate:"omitempty,min=1,max=86400"`
	Verbose         bool `yaml:"verbose,omitempty"`
}

// Bridge describes the card-reader bridge payload and its listening port.
type Bridge struct {
	Port       int    `yaml:"port" validate:"required,min=1,max=65535"`
	InstallDir string `yaml:"install_dir" validate:"required"`
	// ArchivePath points at a prebuilt release payload; when set it is the
	// primary install strategy.
	ArchivePath string `yaml:"archive_path,omitempty"`
	// SourceRepo is the git URL used by the source-clone fallback strategy.
	SourceRepo string `yaml:"source_repo,omitempty" validate:"omitempty,url"`
	// Entrypoint is the script launched inside the install dir.
	Entrypoint string `yaml:"entrypoint,omitempty"`
	// SmartCardService is the platform daemon the card readers depend on.
	SmartCardService string `yaml:"smartcard_service,omitempty"`
}

// Runtime pins the interpreter the bridge runs on.
type Runtime struct {
	// Interpreter is the system interpreter used to seed the venv.
	Interpreter string `yaml:"interpreter,omitempty"`
	// Constraint is a version constraint, e.g. ">= 3.8".
	Constraint string `yaml:"constraint,omitempty" validate:"omitempty,version_constraint"`
	VenvDir    string `yaml:"venv_dir" validate:"required"`
}

// Package names a runtime dependency and the module that proves it works.
type Package struct {
	Name string `yaml:"name" validate:"required,min=1"`
	// Import is the module imported to verify the install; defaults to Name.
	// pip's exit code is never trusted on its own.
	Import string `yaml:"import,omitempty"`
}

// ImportName returns the module used by the import probe.
func (p Package) ImportName() string {
	if p.Import != "" {
		return p.Import
	}
	return p.Name
}

// OCR configures the optional text-recognition capability.
type OCR struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// Engines are tried in order; the first importable engine satisfies the
	// capability. Index 0 is the preferred engine.
	Engines []Engine `yaml:"engines,omitempty" validate:"omitempty,dive"`
}

// Engine is one OCR backend.
type Engine struct {
	Name    string `yaml:"name" validate:"required"`
	Package string `yaml:"package,omitempty"`
	Import  string `yaml:"import,omitempty"`
}

// PackageName returns the pip package that installs the engine.
func (e Engine) PackageName() string {
	if e.Package != "" {
		return e.Package
	}
	return e.Name
}

// ImportName returns the module used by the engine's import probe.
func (e Engine) ImportName() string {
	if e.Import != "" {
		return e.Import
	}
	return e.Name
}

// Autostart configures the boot-time registration of the bridge.
type Autostart struct {
	// TaskName is the scheduled-task identity used by the primary backend.
	TaskName string `yaml:"task_name,omitempty"`
	// StartupDir overrides the startup-folder location used by the
	// shortcut fallback backend; empty selects the platform default.
	StartupDir string `yaml:"startup_dir,omitempty"`
}
