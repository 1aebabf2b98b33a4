// Package portutil inspects and reclaims the bridge's listening port.
package portutil

import (
	"context"
	"fmt"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

const killGrace = 5 * time.Second

// State describes who, if anyone, is listening on a port.
type State struct {
	Listening bool
	PID       int32
}

// Inspector answers questions about local TCP ports.
type Inspector struct{}

// Listening reports whether a local TCP port has a listener and the owning
// process id when the platform exposes it.
func (Inspector) Listening(ctx context.Context, port int) (State, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return State{}, fmt.Errorf("enumerate tcp connections: %w", err)
	}
	for _, conn := range conns {
		if conn.Status == "LISTEN" && conn.Laddr.Port == uint32(port) {
			return State{Listening: true, PID: conn.Pid}, nil
		}
	}
	return State{}, nil
}

// KillOwner terminates the process holding the port. A free port is success:
// teardown must tolerate "already absent". Termination is polite first, then
// forced after a grace period.
func (i Inspector) KillOwner(ctx context.Context, port int) error {
	state, err := i.Listening(ctx, port)
	if err != nil {
		return err
	}
	if !state.Listening {
		return nil
	}
	if state.PID <= 0 {
		return fmt.Errorf("port %d is held by an unknown process", port)
	}

	proc, err := process.NewProcessWithContext(ctx, state.PID)
	if err != nil {
		// Gone between inspection and lookup.
		return nil
	}

	if err := proc.TerminateWithContext(ctx); err == nil {
		deadline := time.Now().Add(killGrace)
		for time.Now().Before(deadline) {
			if running, _ := proc.IsRunningWithContext(ctx); !running {
				return nil
			}
			time.Sleep(100 * time.Millisecond)
		}
	}

	if err := proc.KillWithContext(ctx); err != nil {
		if running, _ := proc.IsRunningWithContext(ctx); !running {
			return nil
		}
		return fmt.Errorf("kill pid %d holding port %d: %w", state.PID, port, err)
	}
	return nil
}
