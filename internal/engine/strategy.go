package engine

import "context"

// Strategy is one concrete way of reaching a goal state. Strategies are
// declared in preference order; the first one whose resulting state passes
// the step's postcondition wins. A strategy's own error return is a hint
// only, never proof of success.
type Strategy interface {
	Name() string
	Apply(ctx context.Context) error
}

type strategyFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewStrategy wraps a function as a named Strategy.
func NewStrategy(name string, fn func(ctx context.Context) error) Strategy {
	return strategyFunc{name: name, fn: fn}
}

func (s strategyFunc) Name() string { return s.name }

func (s strategyFunc) Apply(ctx context.Context) error { return s.fn(ctx) }

// Action is a side-effecting operation with no verification of its own,
// used for a step's reset (clear stale or partial prior state before a
// strategy attempt).
type Action interface {
	Apply(ctx context.Context) error
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context) error

// Apply implements Action.
func (f ActionFunc) Apply(ctx context.Context) error { return f(ctx) }
