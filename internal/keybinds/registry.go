package keybinds

import "sort"

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// parents maps a context to the one it falls back to before global
	parents map[Context]Context

	// multiKeyState tracks multi-key sequences (like 'gg' in vim)
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		parents:       make(map[Context]Context),
		multiKeyState: make(map[Context]string),
	}
}

// SetParent makes child fall back to parent before the global context.
func (r *Registry) SetParent(child, parent Context) {
	r.parents[child] = parent
}

// chain returns context, its ancestors, then global.
func (r *Registry) chain(context Context) []Context {
	out := []Context{}
	seen := map[Context]bool{}
	for c := context; c != "" && !seen[c]; c = r.parents[c] {
		seen[c] = true
		out = append(out, c)
	}
	if !seen[ContextGlobal] {
		out = append(out, ContextGlobal)
	}
	return out
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unregister removes a key from a context.
func (r *Registry) Unregister(context Context, key string) {
	delete(r.bindings[context], key)
}

// Match attempts to match a key to an action in the given context
// Returns the action and whether a match was found
// Contexts are checked in priority order: specific context -> parents -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	for _, c := range r.chain(context) {
		if action, ok := r.bindings[c][key]; ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey handles multi-key sequences like 'gg' for go-to-top
// Returns the action, whether it's a complete match, and whether it's a partial match
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	// Check if we have a pending multi-key state
	if prevKey, hasPending := r.multiKeyState[context]; hasPending {
		// Try to match the sequence
		sequence := prevKey + key

		// Clear state first
		delete(r.multiKeyState, context)

		// Check for match
		if action, ok := r.Match(context, sequence); ok {
			return action, true, false
		}

		// No match for sequence, return no match
		return "", false, false
	}

	// Check if this key could start a sequence (currently only 'g' for 'gg')
	if _, ok := r.Match(context, key+key); ok && key == "g" {
		// Mark this as a potential multi-key start
		r.multiKeyState[context] = key
		return "", false, true // Partial match
	}

	// Regular single-key match
	action, ok := r.Match(context, key)
	return action, ok, false
}

// GetBinding returns the key(s) bound to an action in a context, sorted.
// The nearest context in the fallback chain that binds the action wins.
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string
	for _, c := range r.chain(context) {
		for key, act := range r.bindings[c] {
			if act == action {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			break
		}
	}
	sort.Strings(keys)
	return keys
}

// ListBindings returns all bindings reachable from a context, context
// bindings first
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	rank := map[Context]int{}
	for i, c := range r.chain(context) {
		rank[c] = i
		for key, action := range r.bindings[c] {
			bindings = append(bindings, Binding{
				Key:     key,
				Action:  action,
				Context: c,
			})
		}
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Context != bindings[j].Context {
			return rank[bindings[i].Context] < rank[bindings[j].Context]
		}
		return bindings[i].Key < bindings[j].Key
	})
	return bindings
}
