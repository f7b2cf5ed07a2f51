package recipe

import (
	"fmt"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
	"github.com/etiennechatreaux/macro-dynamics/internal/transform"
)

// Step is one named transformation in a pipeline.
type Step struct {
	Name      string
	Transform transform.Transformer
}

// Pipeline is an ordered, immutable sequence of transformation steps built
// by Build. Run is a pure function: the same input frame always yields the
// same output, and the input is never mutated.
type Pipeline struct {
	recipe string
	steps  []Step
}

// Recipe returns the recipe identifier the pipeline was built from.
func (p *Pipeline) Recipe() string {
	return p.recipe
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run folds each step over the frame in sequence. The first failing step
// aborts the run; there are no retries and no partial results.
func (p *Pipeline) Run(f *domain.Frame) (*domain.Frame, error) {
	current := f
	for _, step := range p.steps {
		next, err := step.Transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("recipe %s, step %s: %w", p.recipe, step.Name, err)
		}
		current = next
	}
	return current, nil
}
