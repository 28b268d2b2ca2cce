package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStep struct {
	name     string
	inputs   []string
	deps     []string
	outputs  []string
	execute  func(wc *Context) StepResult
	executed *int
}

func (s *fakeStep) Name() string             { return s.name }
func (s *fakeStep) Description() string      { return "fake step " + s.name }
func (s *fakeStep) RequiredInputs() []string { return s.inputs }
func (s *fakeStep) Dependencies() []string   { return s.deps }
func (s *fakeStep) OutputFields() []string   { return s.outputs }

func (s *fakeStep) Execute(_ context.Context, wc *Context) StepResult {
	if s.executed != nil {
		*s.executed++
	}
	if s.execute != nil {
		return s.execute(wc)
	}
	return Succeed(s.name, map[string]any{s.name + "_done": true})
}

func TestNewEngine_RejectsUnknownDependency(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "first", deps: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestNewEngine_RejectsForwardDependency(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "first", deps: []string{"second"}},
		2: &fakeStep{name: "second"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not run before")
}

func TestEngine_RunStepValidatesInputs(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "extract", inputs: []string{"client_name", "website_url"}},
	})
	require.NoError(t, err)

	wc := NewContext(map[string]any{"client_name": "Acme"})
	result := engine.RunStep(context.Background(), 1, wc)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Missing required inputs: website_url", result.Errors[0])

	// The failure is recorded so status reporting sees it.
	recorded, ok := wc.StepResult("extract")
	require.True(t, ok)
	assert.False(t, recorded.Success)
}

func TestEngine_RunStepUnknownNumber(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[int]Step{1: &fakeStep{name: "only"}})
	require.NoError(t, err)

	result := engine.RunStep(context.Background(), 7, NewContext(nil))
	assert.False(t, result.Success)
	assert.Equal(t, "step_07", result.StepName)
}

func TestEngine_RunStopsOnFailure(t *testing.T) {
	t.Parallel()

	var thirdRuns int
	engine, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "one"},
		2: &fakeStep{name: "two", execute: func(*Context) StepResult {
			return Failure("two", "upstream API unavailable")
		}},
		3: &fakeStep{name: "three", executed: &thirdRuns},
	})
	require.NoError(t, err)

	results := engine.Run(context.Background(), NewContext(nil), 1, 0)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Zero(t, thirdRuns)
}

func TestEngine_RunStopsOnFatalErrorDespiteSuccess(t *testing.T) {
	t.Parallel()

	var secondRuns int
	engine, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "one", execute: func(*Context) StepResult {
			r := Succeed("one", map[string]any{"k": "v"})
			r.Errors = append(r.Errors, "FATAL: token budget exhausted")
			return r
		}},
		2: &fakeStep{name: "two", executed: &secondRuns},
	})
	require.NoError(t, err)

	results := engine.Run(context.Background(), NewContext(nil), 1, 0)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.False(t, results[0].CanContinue())
	assert.Zero(t, secondRuns)
}

func TestEngine_RunRespectsRange(t *testing.T) {
	t.Parallel()

	counts := make([]int, 4)
	steps := map[int]Step{}
	names := []string{"", "a", "b", "c"}
	for i := 1; i <= 3; i++ {
		steps[i] = &fakeStep{name: names[i], executed: &counts[i]}
	}
	engine, err := NewEngine(steps)
	require.NoError(t, err)

	engine.Run(context.Background(), NewContext(nil), 2, 2)
	assert.Equal(t, []int{0, 0, 1, 0}, counts)
}

func TestEngine_SuccessfulDataFlowsForward(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "producer", execute: func(*Context) StepResult {
			return Succeed("producer", map[string]any{"industry": "Manufacturing"})
		}},
		2: &fakeStep{name: "consumer", inputs: []string{"industry"}},
	})
	require.NoError(t, err)

	wc := NewContext(nil)
	results := engine.Run(context.Background(), wc, 1, 0)
	require.Len(t, results, 2)
	assert.True(t, results[1].Success)
	assert.Equal(t, "Manufacturing", wc.GetString("industry"))
}

func TestEngine_FailedStepDataNotMerged(t *testing.T) {
	t.Parallel()

	wc := NewContext(nil)
	wc.AddStepResult(StepResult{
		Success:  false,
		Data:     map[string]any{"poison": true},
		StepName: "broken",
	})
	assert.False(t, wc.Has("poison"))
}

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[int]Step{
		1: &fakeStep{name: "done"},
		2: &fakeStep{name: "broken"},
		3: &fakeStep{name: "open", inputs: []string{"client_name"}},
		4: &fakeStep{name: "waiting", inputs: []string{"not_yet_present"}},
	})
	require.NoError(t, err)

	wc := NewContext(map[string]any{"client_name": "Acme"})
	wc.AddStepResult(Succeed("done", nil))
	wc.AddStepResult(Failure("broken", "boom"))

	status := engine.Status(wc)
	assert.Equal(t, map[int]string{
		1: StatusCompleted,
		2: StatusFailed,
		3: StatusReady,
		4: StatusBlocked,
	}, status)
}

func TestContext_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	wc := NewContext(map[string]any{"client_name": "Acme", "step": float64(3)})
	wc.AddStepResult(Succeed("producer", map[string]any{"industry": "Manufacturing"}, "schema field missing: address"))
	wc.AddStepResult(Failure("broken", "parse error"))

	raw, err := wc.ToJSON()
	require.NoError(t, err)

	restored, err := FromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, wc.Data, restored.Data)
	assert.Equal(t, wc.StepResults, restored.StepResults)

	result, ok := restored.StepResult("producer")
	require.True(t, ok)
	assert.True(t, result.CanContinue())
	assert.Equal(t, []string{"schema field missing: address"}, result.Warnings)
}
