package workflow

import "context"

// Step is one unit of the pipeline. Implementations declare their inputs
// and outputs so the engine can validate readiness without running them.
type Step interface {
	// Name is the stable identifier used in step results and run records.
	Name() string
	// Description is a one-line summary for listings.
	Description() string
	// RequiredInputs names the context keys that must exist before Execute.
	RequiredInputs() []string
	// Dependencies names steps that must be registered earlier in the
	// pipeline. The engine rejects registrations that violate this.
	Dependencies() []string
	// OutputFields names the context keys a successful Execute adds.
	OutputFields() []string

	Execute(ctx context.Context, wc *Context) StepResult
}

// MissingInputs returns the required inputs of step that are absent from
// the context, in declaration order.
func MissingInputs(step Step, wc *Context) []string {
	var missing []string
	for _, field := range step.RequiredInputs() {
		if !wc.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}
