package billing

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestCompensatorRunsInReverseOrder(t *testing.T) {
	comp := newCompensator(zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		comp.Push(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	comp.Rollback(context.Background())

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("ran %d undos, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("undo %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestCompensatorSwallowsUndoFailures(t *testing.T) {
	comp := newCompensator(zap.NewNop())

	var ran []string
	comp.Push("first", func(context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	comp.Push("second", func(context.Context) error {
		ran = append(ran, "second")
		return errors.New("undo failed")
	})
	comp.Push("third", func(context.Context) error {
		ran = append(ran, "third")
		return nil
	})
	comp.Rollback(context.Background())

	if len(ran) != 3 {
		t.Errorf("a failing undo must not stop the rollback; ran %v", ran)
	}
}

func TestCompensatorEmptyRollback(t *testing.T) {
	comp := newCompensator(zap.NewNop())
	comp.Rollback(context.Background())
}
