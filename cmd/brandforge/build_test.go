package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brandforge/brandforge/internal/config"
	"github.com/brandforge/brandforge/internal/db"
	"github.com/brandforge/brandforge/internal/workflow"
)

type stubStep struct {
	name string
	fail bool
}

func (s stubStep) Name() string             { return s.name }
func (s stubStep) Description() string      { return s.name }
func (s stubStep) RequiredInputs() []string { return nil }
func (s stubStep) Dependencies() []string   { return nil }
func (s stubStep) OutputFields() []string   { return nil }

func (s stubStep) Execute(context.Context, *workflow.Context) workflow.StepResult {
	if s.fail {
		return workflow.Failure(s.name, "API call failed: boom")
	}
	return workflow.Succeed(s.name, map[string]any{s.name + "_done": true})
}

func TestRunSteps_ResumeRetriesFailedStep(t *testing.T) {
	ctx := context.Background()
	handle, err := db.Open(filepath.Join(t.TempDir(), "brandforge.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })
	store := db.NewStore(handle)

	engine, err := workflow.NewEngine(map[int]workflow.Step{
		1: stubStep{name: "first"},
		2: stubStep{name: "second", fail: true},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	wc := workflow.NewContext(map[string]any{"client_name": "Acme Corp"})
	snapshot, err := wc.ToJSON()
	if err != nil {
		t.Fatalf("marshal context: %v", err)
	}
	if err := store.CreateRun(ctx, "run-1", "Acme Corp", string(snapshot)); err != nil {
		t.Fatalf("create run: %v", err)
	}

	results, status, err := runSteps(ctx, engine, store, nil, "", "run-1", wc, 1, 0)
	if err != nil {
		t.Fatalf("run steps: %v", err)
	}
	if status != db.RunStatusFailed {
		t.Fatalf("status = %q, want %q", status, db.RunStatusFailed)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	run, _, err := store.LatestRunForClient(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if run.CurrentStep != 1 {
		t.Fatalf("current_step = %d, want 1 (failed step must not advance it)", run.CurrentStep)
	}
	if from := run.CurrentStep + 1; from != 2 {
		t.Fatalf("resume start = %d, want 2 (retry the failed step)", from)
	}
}

func TestStatusEngine_NeedsNoModelCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	var cfg config.Config
	cfg.ApplyDefaults()

	engine, err := statusEngine(cfg)
	if err != nil {
		t.Fatalf("status engine: %v", err)
	}

	wc := workflow.NewContext(map[string]any{
		"client_name": "Acme Corp",
		"website_url": "https://acme.example",
	})
	status := engine.Status(wc)
	if status[1] != workflow.StatusReady {
		t.Fatalf("step 1 status = %q, want %q", status[1], workflow.StatusReady)
	}
	if status[4] != workflow.StatusBlocked {
		t.Fatalf("step 4 status = %q, want %q", status[4], workflow.StatusBlocked)
	}
}
