// Package workflow runs the multi-step brand building pipeline. Steps are
// independent units that read and write a shared context, so the pipeline
// can stop, persist, and resume at any step boundary.
package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StepResult is the outcome of one step execution.
type StepResult struct {
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	StepName string         `json:"step_name"`
}

// CanContinue reports whether the pipeline may proceed past this result.
// Fatal errors block even when the step claims success.
func (r StepResult) CanContinue() bool {
	if !r.Success {
		return false
	}
	for _, e := range r.Errors {
		if strings.Contains(e, "FATAL") {
			return false
		}
	}
	return true
}

// Failure builds a failed result for a step.
func Failure(stepName string, errs ...string) StepResult {
	return StepResult{
		Success:  false,
		Data:     map[string]any{},
		Errors:   errs,
		Warnings: []string{},
		StepName: stepName,
	}
}

// Success builds a successful result carrying data.
func Succeed(stepName string, data map[string]any, warnings ...string) StepResult {
	if warnings == nil {
		warnings = []string{}
	}
	return StepResult{
		Success:  true,
		Data:     data,
		Errors:   []string{},
		Warnings: warnings,
		StepName: stepName,
	}
}

// Context carries data between steps plus the per-step results accumulated
// so far. Successful step data is merged into the flat data map so later
// steps read earlier outputs by key.
type Context struct {
	Data        map[string]any        `json:"data"`
	StepResults map[string]StepResult `json:"step_results"`
}

// NewContext seeds a context with initial data.
func NewContext(initial map[string]any) *Context {
	data := map[string]any{}
	for k, v := range initial {
		data[k] = v
	}
	return &Context{Data: data, StepResults: map[string]StepResult{}}
}

// Get returns a context value, or nil when absent.
func (c *Context) Get(key string) any {
	return c.Data[key]
}

// GetString returns a context value as a string, or empty when absent or
// not a string.
func (c *Context) GetString(key string) string {
	s, _ := c.Data[key].(string)
	return s
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.Data[key]
	return ok
}

// Set stores a single value.
func (c *Context) Set(key string, value any) {
	c.Data[key] = value
}

// Update merges data into the context.
func (c *Context) Update(data map[string]any) {
	for k, v := range data {
		c.Data[k] = v
	}
}

// AddStepResult records a step outcome. Successful results merge their data
// into the context.
func (c *Context) AddStepResult(result StepResult) {
	c.StepResults[result.StepName] = result
	if result.Success {
		c.Update(result.Data)
	}
}

// StepResult returns the recorded result for a step, if any.
func (c *Context) StepResult(stepName string) (StepResult, bool) {
	r, ok := c.StepResults[stepName]
	return r, ok
}

// ToJSON serializes the context in the persistence format shared by
// context files and the run store.
func (c *Context) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromJSON restores a context persisted with ToJSON.
func FromJSON(data []byte) (*Context, error) {
	var c Context
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("workflow: parse context: %w", err)
	}
	if c.Data == nil {
		c.Data = map[string]any{}
	}
	if c.StepResults == nil {
		c.StepResults = map[string]StepResult{}
	}
	return &c, nil
}
