package core

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Observer is notified around every step. Implementations must be cheap;
// they run inline on the flow's goroutine.
type Observer interface {
	StepStarted(flow, step, label string)
	StepSkipped(flow, step string)
	StepFinished(flow, step string, elapsed time.Duration, err error)
}

// StepError identifies the step that aborted a flow.
type StepError struct {
	Flow string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed, pipeline errored: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Engine runs named flows. Steps of a flow run strictly one after another on
// the caller's goroutine; the first failing step aborts the flow.
type Engine[C any] struct {
	flows     map[string]*Flow[C]
	observers []Observer
}

func NewEngine[C any](flows ...*Flow[C]) *Engine[C] {
	m := map[string]*Flow[C]{}
	for _, f := range flows {
		m[f.Name()] = f
	}
	return &Engine[C]{flows: m}
}

func (e *Engine[C]) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

// Flows lists the registered flow names in sorted order.
func (e *Engine[C]) Flows() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named flow against c. Observers passed here are notified
// for this run only, after the engine-wide ones.
func (e *Engine[C]) Run(ctx context.Context, flowName string, c C, observers ...Observer) error {
	f, exists := e.flows[flowName]
	if !exists {
		return fmt.Errorf("unsupported flow: %v", flowName)
	}
	all := append(append([]Observer{}, e.observers...), observers...)
	for _, step := range f.Steps() {
		if !step.enabled(c) {
			for _, o := range all {
				o.StepSkipped(f.name, step.Name)
			}
			continue
		}

		for _, o := range all {
			o.StepStarted(f.name, step.Name, step.Label)
		}
		start := time.Now()
		err := step.Execute(ctx, c)
		elapsed := time.Since(start)
		for _, o := range all {
			o.StepFinished(f.name, step.Name, elapsed, err)
		}

		if err != nil {
			return &StepError{Flow: f.name, Step: step.Name, Err: err}
		}
	}
	return nil
}
