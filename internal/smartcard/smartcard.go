// Package smartcard probes the platform smart-card daemon. The bridge can
// be fully installed without it, but no reader will ever be seen until the
// daemon runs, so the pipeline surfaces its state as a diagnostic gate.
package smartcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
)

// Service queries the service manager for the smart-card daemon state.
// The tool is configurable so tests can substitute a stub.
type Service struct {
	// Name is the daemon's service name, e.g. SCardSvr.
	Name string
	// Tool is the service-manager CLI; empty selects sc.
	Tool string
	Run  execx.Runner
}

func (s *Service) tool() string {
	if s.Tool != "" {
		return s.Tool
	}
	return "sc"
}

// Running reports whether the daemon is in the RUNNING state. Query
// failures read as not running; this is a probe, never an installer.
func (s *Service) Running(ctx context.Context) (bool, string) {
	res, err := s.Run.Run(ctx, s.tool(), "query", s.Name)
	if err != nil {
		return false, fmt.Sprintf("query service %s: %v", s.Name, err)
	}
	out := res.Stdout
	switch {
	case strings.Contains(out, "RUNNING"):
		return true, ""
	case strings.Contains(out, "STOPPED"):
		return false, fmt.Sprintf("service %s is stopped", s.Name)
	default:
		return false, fmt.Sprintf("service %s state unknown", s.Name)
	}
}
