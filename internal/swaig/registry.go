// Package swaig implements the SignalWire AI Gateway function protocol: a registry of
// schema-described tools and the dispatcher that serves their catalog and invokes them.
package swaig

import (
	"context"
	"fmt"
	"sync"
)

// Call carries everything a tool receives for one invocation.
type Call struct {
	Function      string
	Args          Args
	MetaDataToken string
	MetaData      map[string]any
}

// Func is the contract every tool implements. It returns the value placed under
// "response" and, when non-empty, the metadata sent back as set_meta_data.
type Func func(ctx context.Context, call Call) (result any, metaData map[string]any, err error)

// ToolDescriptor is the registry entry for one tool.
type ToolDescriptor struct {
	Name        string
	Description string
	Parameters  Parameters

	args []Argument
	fn   Func
}

// Signature is the catalog view of a tool.
type Signature struct {
	Description string     `json:"description"`
	Function    string     `json:"function"`
	Parameters  Parameters `json:"parameters"`
	WebHookURL  string     `json:"web_hook_url"`
}

// Registry maps tool names to descriptors. It is populated at startup and only read
// while serving.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*ToolDescriptor
	order  []string
	strict bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStrict makes Register reject names that are already registered instead of
// replacing the earlier tool.
func WithStrict() RegistryOption {
	return func(r *Registry) { r.strict = true }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{tools: make(map[string]*ToolDescriptor)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool. A second registration under the same name replaces the first
// and keeps its catalog position, unless the registry is strict.
func (r *Registry) Register(name, description string, fn Func, args ...Argument) error {
	if fn == nil {
		return fmt.Errorf("register %q: nil function", name)
	}
	desc := &ToolDescriptor{
		Name:        name,
		Description: description,
		Parameters:  renderParameters(args),
		args:        args,
		fn:          fn,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		if r.strict {
			return fmt.Errorf("register %q: %w", name, ErrDuplicateTool)
		}
	} else {
		r.order = append(r.order, name)
	}
	r.tools[name] = desc
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name, description string, fn Func, args ...Argument) {
	if err := r.Register(name, description, fn, args...); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tools[name]
	return d, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Signatures renders the catalog for the requested names, or for every tool when
// names is empty. Unknown names are skipped.
func (r *Registry) Signatures(names []string, webHookURL string) []Signature {
	if len(names) == 0 {
		names = r.Names()
	}
	out := make([]Signature, 0, len(names))
	for _, name := range names {
		d, ok := r.Lookup(name)
		if !ok {
			continue
		}
		out = append(out, Signature{
			Description: d.Description,
			Function:    d.Name,
			Parameters:  d.Parameters,
			WebHookURL:  webHookURL,
		})
	}
	return out
}
