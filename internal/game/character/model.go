// Package character defines the character sheet model and the pure
// derived-stat computation over it.
package character

import "github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"

// Attributes holds the five attribute scores.
//
// Invariant (after schema validation): every score is an integer >= 0.
type Attributes struct {
	Strength  int
	Agility   int
	Intellect int
	Vigor     int
	Presence  int
}

// Score returns the value of attribute a, or 0 for a value outside the enum.
func (a Attributes) Score(attr ruleset.Attribute) int {
	switch attr {
	case ruleset.Strength:
		return a.Strength
	case ruleset.Agility:
		return a.Agility
	case ruleset.Intellect:
		return a.Intellect
	case ruleset.Vigor:
		return a.Vigor
	case ruleset.Presence:
		return a.Presence
	}
	return 0
}

// Set assigns v to attribute attr. Unknown attributes are ignored.
func (a *Attributes) Set(attr ruleset.Attribute, v int) {
	switch attr {
	case ruleset.Strength:
		a.Strength = v
	case ruleset.Agility:
		a.Agility = v
	case ruleset.Intellect:
		a.Intellect = v
	case ruleset.Vigor:
		a.Vigor = v
	case ruleset.Presence:
		a.Presence = v
	}
}

// ResourcePool is a current/maximum pair such as health, effort or sanity.
//
// Max is owned by Recompute. Value is changed by gameplay and is never
// clamped to Max by this package.
type ResourcePool struct {
	Value int
	Max   int
}

// Clamped returns p with Value limited to [0, Max]. Callers that want clamping opt in here.
func (p ResourcePool) Clamped() ResourcePool {
	if p.Value > p.Max {
		p.Value = p.Max
	}
	if p.Value < 0 {
		p.Value = 0
	}
	return p
}

// Status groups the three resource pools.
type Status struct {
	Health ResourcePool // PV
	Effort ResourcePool // PE
	Sanity ResourcePool
}

// Skill is one entry of a character's skill list.
//
// Attribute always equals the catalog binding for the skill's name.
type Skill struct {
	Bonus     int
	Attribute ruleset.Attribute
}

// Details holds class and progression information.
type Details struct {
	Class  ruleset.Class
	Origin string
	NEX    int // narrative experience percentage, 0-99
	Stage  int // survivor-only progression counter, >= 1
}

// Derived holds the values computed by Recompute. None of them is persisted.
type Derived struct {
	Level              int
	LevelBonus         int
	PerTurnEffortLimit int
	RitualDifficulty   int
	PassiveDefense     int
}

// Character is a complete character sheet.
//
// Skills holds one entry per catalog skill. Inventory is exclusively owned by
// the character; copies of a Character share it.
type Character struct {
	Attributes Attributes
	Status     Status
	Skills     map[ruleset.Skill]Skill
	Details    Details
	Inventory  *Inventory

	derived Derived
}

// Derived returns the values computed by the last Recompute. The zero value
// is returned for a character that was never recomputed.
func (c Character) Derived() Derived {
	return c.derived
}

// Level returns the derived level.
func (c Character) Level() int { return c.derived.Level }

// PerTurnEffortLimit returns the derived per-turn effort cap.
func (c Character) PerTurnEffortLimit() int { return c.derived.PerTurnEffortLimit }

// RitualDifficulty returns the derived ritual/ability difficulty threshold.
func (c Character) RitualDifficulty() int { return c.derived.RitualDifficulty }

// PassiveDefense returns the derived passive defense.
func (c Character) PassiveDefense() int { return c.derived.PassiveDefense }

// SkillEntry returns the entry for s. A skill missing from the map is reported
// with a zero bonus and its catalog attribute.
func (c Character) SkillEntry(s ruleset.Skill) Skill {
	if e, ok := c.Skills[s]; ok {
		return e
	}
	return Skill{Attribute: s.Attribute()}
}
