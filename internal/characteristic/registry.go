package characteristic

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// Registry maps display names to characteristics, preserving registration order.
type Registry struct {
	names  []string
	byName map[string]Characteristic
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Characteristic{}}
}

// Default returns the built-in characteristics plus, when idx is non-nil, the ones
// derived from draft analytics.
func Default(idx card.AnalyticsIndex) *Registry {
	r := NewRegistry()
	for _, c := range Builtins() {
		r.Register(c)
	}
	if idx != nil {
		for _, c := range Derived(idx) {
			r.Register(c)
		}
	}
	return r
}

// Register adds or replaces a characteristic under its Name.
func (r *Registry) Register(c Characteristic) {
	key := strings.ToLower(c.Name())
	if _, ok := r.byName[key]; !ok {
		r.names = append(r.names, c.Name())
	}
	r.byName[key] = c
}

// Lookup finds a characteristic by name, case-insensitively.
func (r *Registry) Lookup(name string) (Characteristic, error) {
	if r == nil {
		return nil, errs.Config("characteristic", "no registry")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.Config("characteristic", "name is required")
	}
	c, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errs.Config("characteristic", fmt.Sprintf("unknown %q (available: %s)", name, strings.Join(r.names, ", ")))
	}
	return c, nil
}

// Names lists every registered name in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Fields lists the names usable as numeric fields (characteristics that can yield a value).
func (r *Registry) Fields() []string {
	var out []string
	for _, n := range r.names {
		if _, isCategory := r.byName[strings.ToLower(n)].(*Category); !isCategory {
			out = append(out, n)
		}
	}
	return out
}

// IsNumeric reports whether name refers to a characteristic that yields values.
func (r *Registry) IsNumeric(name string) bool {
	c, err := r.Lookup(name)
	if err != nil {
		return false
	}
	_, isCategory := c.(*Category)
	return !isCategory
}
