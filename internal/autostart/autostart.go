// Package autostart registers the bridge for launch at logon. Two
// interchangeable backends exist: a scheduled-task registration (preferred)
// and a startup-folder launcher script (fallback). Both are also teardown
// resources, and teardown removes both unconditionally because earlier
// installs may have used either mechanism.
package autostart

import "context"

// Registrar is one autostart mechanism.
type Registrar interface {
	Name() string
	Register(ctx context.Context) error
	IsRegistered(ctx context.Context) (bool, error)
	// Unregister is idempotent: an absent registration is success.
	Unregister(ctx context.Context) error
}
