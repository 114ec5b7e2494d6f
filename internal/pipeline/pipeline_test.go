package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/wordscope/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, a *model.Analysis) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, a *model.Analysis) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, a)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if names := p.StepNames(); len(names) != 0 {
			t.Errorf("expected no steps, got %v", names)
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("adds steps in order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "step-1"})
		p.AddSteps(&mockStep{name: "step-2"}, &mockStep{name: "step-3"})

		names := p.StepNames()
		if len(names) != 3 || names[0] != "step-1" || names[2] != "step-3" {
			t.Errorf("unexpected step names %v", names)
		}
	})
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(_ context.Context, _ *model.Analysis) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("a"), record("b"), record("c"))
		a := model.NewAnalysis("https://example.com")

		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
			t.Errorf("unexpected execution order %v", order)
		}
		if len(a.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %v", a.PerformedSteps)
		}
	})

	t.Run("stops at the first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("step failed")
		failing := &mockStep{name: "failing", doFunc: func(_ context.Context, _ *model.Analysis) error {
			return wantErr
		}}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(&mockStep{name: "before"}, failing, after)
		a := model.NewAnalysis("https://example.com")

		err := p.Execute(context.Background(), a)
		if !errors.Is(err, wantErr) {
			t.Errorf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected later steps to be skipped")
		}
		if len(a.PerformedSteps) != 1 || a.PerformedSteps[0] != "before" {
			t.Errorf("expected only the first step recorded, got %v", a.PerformedSteps)
		}
	})

	t.Run("honors cancellation before a step", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Execute(ctx, model.NewAnalysis("https://example.com"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})
}
