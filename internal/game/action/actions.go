// Package action provides the string-keyed dispatcher for sheet actions such
// as attribute and skill rolls.
package action

import (
	"errors"
	"strings"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/roll"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// ErrUnknownAction is returned when an action name matches no registered action.
var ErrUnknownAction = errors.New("unknown action")

// Canonical action names.
const (
	NameRollAttribute = "rollAttribute"
	NameRollSkill     = "rollSkill"
)

// Handler performs an action for c against target (an attribute or skill name).
type Handler func(c character.Character, target string) (roll.Result, error)

// Action defines one dispatchable sheet action.
type Action struct {
	// Name is the canonical action name.
	Name string
	// Aliases are alternate names for this action.
	Aliases []string
	// Help is the short help text.
	Help string
	// Handler runs the action.
	Handler Handler
}

// Checker is the roll surface the built-in actions need; *roll.Resolver satisfies it.
type Checker interface {
	Attribute(c character.Character, attr ruleset.Attribute) (roll.Result, error)
	Skill(c character.Character, skill ruleset.Skill) (roll.Result, error)
}

// BuiltinActions returns the roll actions backed by checker.
//
// Precondition: checker must be non-nil.
func BuiltinActions(checker Checker) []Action {
	return []Action{
		{
			Name:    NameRollAttribute,
			Aliases: []string{"attribute", "attr"},
			Help:    "roll an attribute check (Nd20kh, or 2d20kl at score 0)",
			Handler: func(c character.Character, target string) (roll.Result, error) {
				attr, err := ruleset.ParseAttribute(normalize(target))
				if err != nil {
					return roll.Result{}, err
				}
				return checker.Attribute(c, attr)
			},
		},
		{
			Name:    NameRollSkill,
			Aliases: []string{"skill"},
			Help:    "roll a skill check with its governing attribute plus bonus",
			Handler: func(c character.Character, target string) (roll.Result, error) {
				skill, err := ruleset.ParseSkill(normalize(target))
				if err != nil {
					return roll.Result{}, err
				}
				return checker.Skill(c, skill)
			},
		},
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
