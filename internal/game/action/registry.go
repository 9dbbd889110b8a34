package action

import (
	"fmt"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/roll"
)

// Registry maps action names and aliases to Action definitions. Lookups are
// case-insensitive.
type Registry struct {
	actions map[string]*Action // lower-cased canonical name → action
	aliases map[string]string  // lower-cased alias → lower-cased canonical name
}

// NewRegistry creates a Registry populated with the given actions.
//
// Precondition: No two actions may share a canonical name or alias, and every
// action must have a non-nil Handler.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(actions []Action) (*Registry, error) {
	r := &Registry{
		actions: make(map[string]*Action, len(actions)),
		aliases: make(map[string]string),
	}

	for i := range actions {
		a := &actions[i]
		name := normalize(a.Name)
		if name == "" {
			return nil, fmt.Errorf("action %d has no name", i)
		}
		if a.Handler == nil {
			return nil, fmt.Errorf("action %q has no handler", a.Name)
		}
		if _, exists := r.actions[name]; exists {
			return nil, fmt.Errorf("duplicate action name: %q", a.Name)
		}
		if _, exists := r.aliases[name]; exists {
			return nil, fmt.Errorf("action name %q conflicts with an existing alias", a.Name)
		}
		r.actions[name] = a

		for _, alias := range a.Aliases {
			alias = normalize(alias)
			if _, exists := r.actions[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with action name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, a.Name)
			}
			r.aliases[alias] = name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with the built-in roll actions.
//
// Precondition: checker must be non-nil.
func DefaultRegistry(checker Checker) *Registry {
	r, err := NewRegistry(BuiltinActions(checker))
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up an action by name or alias.
//
// Postcondition: Returns (action, true) if found, or (nil, false).
func (r *Registry) Resolve(name string) (*Action, bool) {
	name = normalize(name)
	if a, ok := r.actions[name]; ok {
		return a, true
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.actions[canonical], true
	}
	return nil, false
}

// Dispatch runs the named action for c against target.
//
// Postcondition: returns an error wrapping ErrUnknownAction when name is not
// registered; otherwise whatever the handler returns.
func (r *Registry) Dispatch(name string, c character.Character, target string) (roll.Result, error) {
	a, ok := r.Resolve(name)
	if !ok {
		return roll.Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a.Handler(c, target)
}

// Run parses a line such as "rollSkill stealth" and dispatches it.
func (r *Registry) Run(c character.Character, line string) (roll.Result, error) {
	inv := Parse(line)
	if inv.Action == "" {
		return roll.Result{}, fmt.Errorf("%w: empty input", ErrUnknownAction)
	}
	return r.Dispatch(inv.Action, c, inv.Target)
}

// Actions returns all registered actions in no particular order.
func (r *Registry) Actions() []*Action {
	result := make([]*Action, 0, len(r.actions))
	for _, a := range r.actions {
		result = append(result, a)
	}
	return result
}
