// Package component holds the component registry. Components are registered
// explicitly at startup and the renderer parses them in registration order.
package component

import (
	"embed"
	"errors"
	"fmt"
	"sync"
)

// Tags of the built-in components.
const (
	SearchTag = "mvp-search"
	ItemTag   = "mvp-item"
)

var (
	ErrEmptyTag     = errors.New("component tag is empty")
	ErrDuplicateTag = errors.New("component tag already registered")
)

//go:embed templates/*.html
var templates embed.FS

// Component is a named template body.
type Component struct {
	Tag      string
	Template string
}

// Registry is the set of components a renderer is built from.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	index      map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds c. Tags are unique.
func (r *Registry) Register(c Component) error {
	if c.Tag == "" {
		return ErrEmptyTag
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[c.Tag]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, c.Tag)
	}
	r.index[c.Tag] = len(r.components)
	r.components = append(r.components, c)
	return nil
}

func (r *Registry) Lookup(tag string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[tag]
	if !ok {
		return Component{}, false
	}
	return r.components[i], true
}

// Components returns the registered components in registration order.
func (r *Registry) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Component(nil), r.components...)
}

// Builtins loads the item card and search panel templates. The card comes
// first because the panel references it.
func Builtins() ([]Component, error) {
	out := make([]Component, 0, 2)
	for _, tag := range []string{ItemTag, SearchTag} {
		src, err := templates.ReadFile("templates/" + tag + ".html")
		if err != nil {
			return nil, fmt.Errorf("read %s template: %w", tag, err)
		}
		out = append(out, Component{Tag: tag, Template: string(src)})
	}
	return out, nil
}

// RegisterBuiltins registers the built-in components on r.
func RegisterBuiltins(r *Registry) error {
	builtins, err := Builtins()
	if err != nil {
		return err
	}
	for _, c := range builtins {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
