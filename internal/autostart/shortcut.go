package autostart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ShortcutRegistrar drops a launcher script into the user's startup folder.
// It is the fallback when scheduled-task registration is unavailable (e.g.
// no administrative rights).
type ShortcutRegistrar struct {
	// Dir is the startup folder; empty selects the platform default.
	Dir string
	// BaseName names the launcher file, without extension.
	BaseName string
	// Command is the full command line the launcher runs.
	Command string
}

// Name implements Registrar.
func (r *ShortcutRegistrar) Name() string { return "startup-shortcut" }

func (r *ShortcutRegistrar) path() (string, error) {
	dir := r.Dir
	if dir == "" {
		var err error
		dir, err = defaultStartupDir()
		if err != nil {
			return "", err
		}
	}
	ext := ".sh"
	if runtime.GOOS == "windows" {
		ext = ".cmd"
	}
	return filepath.Join(dir, r.BaseName+ext), nil
}

// Register writes the launcher script, overwriting a stale one.
func (r *ShortcutRegistrar) Register(ctx context.Context) error {
	path, err := r.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var body string
	if runtime.GOOS == "windows" {
		body = "@echo off\r\nstart \"\" " + r.Command + "\r\n"
	} else {
		body = "#!/bin/sh\nexec " + r.Command + " &\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		return fmt.Errorf("write startup launcher %s: %w", path, err)
	}
	return nil
}

// IsRegistered reports whether the launcher script exists.
func (r *ShortcutRegistrar) IsRegistered(ctx context.Context) (bool, error) {
	path, err := r.path()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unregister removes the launcher script; absence is success.
func (r *ShortcutRegistrar) Unregister(ctx context.Context) error {
	path, err := r.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove startup launcher %s: %w", path, err)
	}
	return nil
}

func defaultStartupDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA not set, cannot locate the startup folder")
		}
		return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup"), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "autostart"), nil
}
