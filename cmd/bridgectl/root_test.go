package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	body := `version: "1.0"
name: nfc bridge
settings:
  state_dir: ` + filepath.Join(dir, "state") + `
bridge:
  port: 3005
  install_dir: ` + filepath.Join(dir, "bridge") + `
  archive_path: ` + filepath.Join(dir, "bridge.zip") + `
runtime:
  venv_dir: ` + filepath.Join(dir, "venv") + `
packages:
  - name: pyscard
    import: smartcard
  - name: websockets
`
	path := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"install", "uninstall", "start", "stop", "status", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bridgectl")
}

func TestUninstallDryRunListsResourcesInRemovalOrder(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, "uninstall", "--dry-run", "--config", cfgPath)
	require.NoError(t, err)

	first := "would remove server-process"
	last := "would remove install-dir"
	assert.Contains(t, out, first)
	assert.Contains(t, out, last)
	assert.Less(t, indexOf(out, first), indexOf(out, last), "server process must be removed before the install dir")
}

func TestInstallRejectsMissingConfig(t *testing.T) {
	_, err := execute(t, "install", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func indexOf(haystack, needle string) int {
	return strings.Index(haystack, needle)
}
