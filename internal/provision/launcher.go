package provision

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

const startupPollInterval = 250 * time.Millisecond

// ServerLauncher starts the bridge server detached from the current
// process and waits for it to open its port.
type ServerLauncher struct {
	Python string
	Script string
	Dir    string
	Port   int
	Ports  PortInspector
	// WaitFor bounds the wait for the port to open; zero means 15s.
	WaitFor time.Duration
}

func (l *ServerLauncher) waitFor() time.Duration {
	if l.WaitFor > 0 {
		return l.WaitFor
	}
	return 15 * time.Second
}

// Start spawns the server and blocks until it listens on the configured
// port or the wait budget runs out. The spawned process is released so it
// outlives this one.
func (l *ServerLauncher) Start(ctx context.Context) error {
	cmd := exec.Command(l.Python, l.Script)
	cmd.Dir = l.Dir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn bridge server: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("detach bridge server: %w", err)
	}

	deadline := time.Now().Add(l.waitFor())
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		state, err := l.Ports.Listening(ctx, l.Port)
		if err == nil && state.Listening {
			return nil
		}
		time.Sleep(startupPollInterval)
	}
	return fmt.Errorf("bridge server did not open port %d within %s", l.Port, l.waitFor())
}
