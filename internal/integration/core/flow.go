package core

type Flow[C any] struct {
	name  string
	steps []*Step[C]
}

func NewFlow[C any](name string, steps ...*Step[C]) *Flow[C] {
	return &Flow[C]{name: name, steps: steps}
}

func (f *Flow[C]) Name() string {
	return f.name
}

func (f *Flow[C]) Steps() []*Step[C] {
	return f.steps
}
