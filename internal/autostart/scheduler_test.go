package autostart

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScheduler emulates the task scheduler CLI with a marker file per task.
func stubScheduler(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scheduler script uses a POSIX shebang")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "task-present")
	tool := filepath.Join(dir, "schtasks-stub")
	script := `#!/bin/sh
case "$1" in
/Create) touch ` + marker + ` ;;
/Query) [ -f ` + marker + ` ] || exit 1 ;;
/Delete) rm -f ` + marker + ` ;;
*) exit 2 ;;
esac
`
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))
	return tool, marker
}

func TestSchedulerRegisterQueryDelete(t *testing.T) {
	ctx := context.Background()
	tool, marker := stubScheduler(t)
	r := &SchedulerRegistrar{
		TaskName: "AgentfrontNFCBridge",
		Command:  "/opt/agentfront/venv/bin/python /opt/agentfront/bridge/server.py",
		Tool:     tool,
	}

	registered, err := r.IsRegistered(ctx)
	require.NoError(t, err)
	assert.False(t, registered, "clean scheduler has no task")

	require.NoError(t, r.Register(ctx))
	assert.FileExists(t, marker)

	registered, err = r.IsRegistered(ctx)
	require.NoError(t, err)
	assert.True(t, registered)

	require.NoError(t, r.Unregister(ctx))
	assert.NoFileExists(t, marker)

	require.NoError(t, r.Unregister(ctx), "deleting an absent task is success")
}

func TestSchedulerRegisterSurfacesToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scheduler script uses a POSIX shebang")
	}
	dir := t.TempDir()
	tool := filepath.Join(dir, "schtasks-stub")
	script := "#!/bin/sh\necho 'ERROR: Access is denied.' >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))

	r := &SchedulerRegistrar{TaskName: "AgentfrontNFCBridge", Command: "cmd", Tool: tool}
	err := r.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access is denied")
}
