package billing

import (
	"context"

	"go.uber.org/zap"
)

// compensator collects undo actions for the forward steps of a
// multi-record write. When a later step fails, Rollback runs the undo
// actions in reverse order. Undo failures are logged and swallowed:
// the operation has already failed and the caller must see the
// original error, not a secondary rollback failure.
type compensator struct {
	log   *zap.Logger
	steps []compensation
}

type compensation struct {
	name string
	undo func(context.Context) error
}

func newCompensator(log *zap.Logger) *compensator {
	return &compensator{log: log}
}

// Push registers an undo action for a forward step about to mutate
// store state.
func (c *compensator) Push(name string, undo func(context.Context) error) {
	c.steps = append(c.steps, compensation{name: name, undo: undo})
}

// Rollback runs all registered undo actions in reverse order,
// best-effort.
func (c *compensator) Rollback(ctx context.Context) {
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.undo(ctx); err != nil {
			c.log.Warn("Compensation step failed",
				zap.String("step", step.name),
				zap.Error(err))
		}
	}
	c.steps = nil
}
