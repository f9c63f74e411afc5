package core

import "context"

// Step is one unit of a flow. Label is the human-readable progress text shown
// while the step runs. When, if set, decides whether the step runs at all.
type Step[C any] struct {
	Name    string
	Label   string
	When    func(c C) bool
	Execute func(ctx context.Context, c C) error
}

func NewStep[C any](name, label string, execute func(ctx context.Context, c C) error) *Step[C] {
	return &Step[C]{
		Name:    name,
		Label:   label,
		Execute: execute,
	}
}

// OnlyIf makes the step conditional.
func (s *Step[C]) OnlyIf(when func(c C) bool) *Step[C] {
	s.When = when
	return s
}

func (s *Step[C]) enabled(c C) bool {
	return s.When == nil || s.When(c)
}
