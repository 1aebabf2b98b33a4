package runtimeenv

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Python 3.11.4", "3.11.4"},
		{"Python 3.8.0rc1", "3.8.0"},
		{"Python 3.12", "3.12.0"},
	}
	for _, tc := range cases {
		v, err := ParseVersion(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, v.String(), tc.in)
	}

	_, err := ParseVersion("command not found")
	require.Error(t, err)
}

func TestNewRejectsBadConstraint(t *testing.T) {
	_, err := New("python3", "latest and greatest", "/tmp/venv", execx.Runner{})
	require.Error(t, err)
}

func TestSatisfiedReportsAbsentVenv(t *testing.T) {
	r, err := New("python3", ">= 3.8", filepath.Join(t.TempDir(), "venv"), execx.Runner{})
	require.NoError(t, err)

	ok, reason := r.Satisfied(context.Background())
	assert.False(t, ok)
	assert.Contains(t, reason, "absent")
}

func TestSatisfiedRejectsVersionMismatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter script uses a POSIX shebang")
	}

	venv := filepath.Join(t.TempDir(), "venv")
	binDir := filepath.Join(venv, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))

	fake := "#!/bin/sh\necho 'Python 2.7.18'\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte(fake), 0o755))

	r, err := New("python3", ">= 3.8", venv, execx.Runner{})
	require.NoError(t, err)

	ok, reason := r.Satisfied(context.Background())
	assert.False(t, ok)
	assert.Contains(t, reason, "2.7.18")
}

func TestSatisfiedAcceptsMatchingVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter script uses a POSIX shebang")
	}

	venv := filepath.Join(t.TempDir(), "venv")
	binDir := filepath.Join(venv, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))

	fake := "#!/bin/sh\necho 'Python 3.11.4'\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte(fake), 0o755))

	r, err := New("python3", ">= 3.8, < 3.13", venv, execx.Runner{})
	require.NoError(t, err)

	ok, reason := r.Satisfied(context.Background())
	assert.True(t, ok, reason)
}

func TestRemoveVenvTolerantOfAbsence(t *testing.T) {
	r, err := New("python3", ">= 3.8", filepath.Join(t.TempDir(), "never-created"), execx.Runner{})
	require.NoError(t, err)
	require.NoError(t, r.RemoveVenv(context.Background()))
	require.NoError(t, r.RemoveVenv(context.Background()), "second removal is a no-op")
}
