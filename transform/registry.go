package transform

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTransform reports a pipeline name with no registered transform.
var ErrUnknownTransform = errors.New("transform: unknown transform")

// Registry maps transform names to functions. The zero value is unusable;
// use NewRegistry, which preloads the builtins.
type Registry struct {
	byName map[string]Func
}

// NewRegistry returns a registry with the builtin transforms registered.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Func{}}
	r.Register("shout", Shout)
	r.Register("mock", Mock)
	r.Register("leet", Leet)
	r.Register("reverse", Reverse)
	r.Register("piglatin", PigLatin)
	return r
}

// Register adds or replaces a named transform.
func (r *Registry) Register(name string, fn Func) {
	r.byName[name] = fn
}

// Get looks a transform up by name.
func (r *Registry) Get(name string) (Func, bool) {
	fn, ok := r.byName[name]
	return fn, ok
}

// Names lists registered transforms in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline is an ordered transform chain.
type Pipeline struct {
	funcs []Func
}

// NewPipeline resolves names against the registry. The first unknown name
// fails the whole pipeline; a partial chain never runs.
func (r *Registry) NewPipeline(names []string) (*Pipeline, error) {
	p := &Pipeline{}
	for _, name := range names {
		fn, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
		}
		p.funcs = append(p.funcs, fn)
	}
	return p, nil
}

// Apply runs the chain in order.
func (p *Pipeline) Apply(s string) string {
	for _, fn := range p.funcs {
		s = fn(s)
	}
	return s
}
