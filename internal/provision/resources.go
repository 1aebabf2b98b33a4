package provision

import (
	"context"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/config"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
)

// Resources lists everything an install may have created, in creation
// order. Teardown runs them in reverse, so the server process dies first,
// then the autostart registrations, then the venv, then the install dir.
// Every removal treats absence as success, so tearing down an environment
// that was never installed is a clean no-op.
func Resources(cfg *config.Config, b *Backends) []engine.Resource {
	resources := []engine.Resource{
		engine.NewResource("install-dir", b.Source.Remove),
		engine.NewResource("venv", b.Runtime.RemoveVenv),
	}

	// Both autostart mechanisms are removed unconditionally: an earlier
	// install may have registered through either one.
	for _, reg := range b.Registrars {
		resources = append(resources, engine.NewResource(reg.Name(), reg.Unregister))
	}

	resources = append(resources, engine.NewResource("server-process", func(ctx context.Context) error {
		return b.Ports.KillOwner(ctx, cfg.Bridge.Port)
	}))

	return resources
}
