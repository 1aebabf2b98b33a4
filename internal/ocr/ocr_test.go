package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/pip"
)

// fakePython accepts "-c import X" only for modules listed in ok, and
// records every pip invocation to a log file.
func fakePython(t *testing.T, ok []string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter scripts are POSIX only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "python")

	script := "#!/bin/sh\ncase \"$*\" in\n"
	for _, module := range ok {
		script += fmt.Sprintf("  \"-c import %s\") exit 0 ;;\n", module)
	}
	script += "  \"-m pip install\"*) exit 0 ;;\n"
	script += "  *) echo \"ModuleNotFoundError: No module named\" >&2; exit 1 ;;\nesac\n"

	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func capability(t *testing.T, importable []string, engines ...config.Engine) *Capability {
	t.Helper()
	return &Capability{
		Engines: engines,
		Pip:     &pip.Installer{Python: fakePython(t, importable), Run: execx.Runner{}},
	}
}

func TestAvailableWithNoEngines(t *testing.T) {
	c := capability(t, nil)
	ok, reason := c.Available(context.Background())
	assert.False(t, ok)
	assert.Contains(t, reason, "no OCR engines configured")
}

func TestAvailableFirstEngineWins(t *testing.T) {
	c := capability(t, []string{"easyocr"},
		config.Engine{Name: "easyocr"},
		config.Engine{Name: "paddleocr"},
	)
	ok, _ := c.Available(context.Background())
	assert.True(t, ok)
}

func TestAvailableFallbackEngineSuffices(t *testing.T) {
	c := capability(t, []string{"paddleocr"},
		config.Engine{Name: "easyocr"},
		config.Engine{Name: "paddleocr"},
	)
	ok, _ := c.Available(context.Background())
	assert.True(t, ok)
}

func TestAvailableReportsEveryEngine(t *testing.T) {
	c := capability(t, nil,
		config.Engine{Name: "easyocr"},
		config.Engine{Name: "paddleocr"},
	)
	ok, reason := c.Available(context.Background())
	assert.False(t, ok)
	assert.Contains(t, reason, "easyocr:")
	assert.Contains(t, reason, "paddleocr:")
}

func TestInstallUsesConfiguredPackageName(t *testing.T) {
	c := capability(t, nil)
	err := c.Install(context.Background(), config.Engine{Name: "paddleocr", Package: "paddleocr[all]"})
	require.NoError(t, err)
}
