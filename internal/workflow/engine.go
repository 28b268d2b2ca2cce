package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Step status values reported by Engine.Status.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusReady     = "ready"
	StatusBlocked   = "blocked"
)

// Engine orders and runs registered steps.
type Engine struct {
	steps map[int]Step
	order []int
}

// NewEngine validates the step set and builds an engine. Every declared
// dependency must name a step registered under a lower number; anything
// else is a wiring bug and fails construction.
func NewEngine(steps map[int]Step) (*Engine, error) {
	order := make([]int, 0, len(steps))
	byName := map[string]int{}
	for num, step := range steps {
		order = append(order, num)
		byName[step.Name()] = num
	}
	sort.Ints(order)

	for _, num := range order {
		step := steps[num]
		for _, dep := range step.Dependencies() {
			depNum, ok := byName[dep]
			if !ok {
				return nil, fmt.Errorf("workflow: step %d (%s) depends on unknown step %q", num, step.Name(), dep)
			}
			if depNum >= num {
				return nil, fmt.Errorf("workflow: step %d (%s) depends on %q (step %d), which does not run before it", num, step.Name(), dep, depNum)
			}
		}
	}

	return &Engine{steps: steps, order: order}, nil
}

// StepNumbers lists registered step numbers in run order.
func (e *Engine) StepNumbers() []int {
	return append([]int(nil), e.order...)
}

// Step returns the registered step for a number.
func (e *Engine) Step(num int) (Step, bool) {
	s, ok := e.steps[num]
	return s, ok
}

// RunStep runs one step. Missing inputs or an unknown number produce a
// failed result rather than an error so the outcome always lands in the
// context's step history.
func (e *Engine) RunStep(ctx context.Context, num int, wc *Context) StepResult {
	step, ok := e.steps[num]
	if !ok {
		return Failure(fmt.Sprintf("step_%02d", num), fmt.Sprintf("Step %d not found", num))
	}

	if missing := MissingInputs(step, wc); len(missing) > 0 {
		result := Failure(step.Name(), "Missing required inputs: "+strings.Join(missing, ", "))
		wc.AddStepResult(result)
		return result
	}

	log.Info().Int("step", num).Str("name", step.Name()).Msg("running step")
	result := step.Execute(ctx, wc)
	wc.AddStepResult(result)

	if result.Success {
		log.Info().Int("step", num).Str("name", step.Name()).Msg("step complete")
	} else {
		log.Error().Int("step", num).Str("name", step.Name()).Strs("errors", result.Errors).Msg("step failed")
	}
	return result
}

// Run executes steps from..to in order, stopping at the first result that
// cannot continue. to <= 0 means run to the end.
func (e *Engine) Run(ctx context.Context, wc *Context, from, to int) []StepResult {
	if to <= 0 && len(e.order) > 0 {
		to = e.order[len(e.order)-1]
	}

	var results []StepResult
	for _, num := range e.order {
		if num < from {
			continue
		}
		if num > to {
			break
		}
		result := e.RunStep(ctx, num, wc)
		results = append(results, result)
		if !result.CanContinue() {
			log.Warn().Int("step", num).Msg("workflow stopped")
			break
		}
	}
	return results
}

// Status classifies every step against the context: completed or failed
// when a result exists, otherwise ready or blocked depending on inputs.
func (e *Engine) Status(wc *Context) map[int]string {
	status := make(map[int]string, len(e.order))
	for _, num := range e.order {
		step := e.steps[num]
		if result, ok := wc.StepResult(step.Name()); ok {
			if result.Success {
				status[num] = StatusCompleted
			} else {
				status[num] = StatusFailed
			}
			continue
		}
		if len(MissingInputs(step, wc)) == 0 {
			status[num] = StatusReady
		} else {
			status[num] = StatusBlocked
		}
	}
	return status
}
