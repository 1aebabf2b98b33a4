package main

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/logger"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/provision"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/render"
)

// app bundles everything a subcommand needs after the config is loaded.
type app struct {
	cfg      *config.Config
	backends *provision.Backends
	log      *logger.Logger
	render   *render.Renderer
}

func loadApp(flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := "info"
	if flags.verbose || cfg.Settings.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return nil, err
	}

	backends, err := provision.DefaultBackends(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		backends: backends,
		log:      log,
		render:   render.New(term.IsTerminal(int(os.Stdout.Fd()))),
	}, nil
}

func (a *app) engineOptions(flags *rootFlags) engine.Options {
	return engine.Options{
		DryRun:       flags.dryRun,
		Force:        flags.force,
		ProbeTimeout: time.Duration(a.cfg.Settings.ProbeTimeout) * time.Second,
		Logger:       a.log,
	}
}
