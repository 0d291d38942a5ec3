package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "ui"

// Registry maps command names and aliases to commands.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Command // primary names only
	lookup map[string]Command // names and aliases
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Command),
		lookup: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if _, exists := r.lookup[n]; exists {
			return fmt.Errorf("command name already registered: %s", n)
		}
	}

	r.byName[c.Name()] = c
	for _, n := range names {
		r.lookup[n] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.lookup[name]
	return cmd, ok
}

// All returns every command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.byName))
	for _, name := range slices.Sorted(maps.Keys(r.byName)) {
		result = append(result, r.byName[name])
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
