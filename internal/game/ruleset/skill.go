package ruleset

import (
	"errors"
	"fmt"
)

// ErrUnknownSkill is returned when a name does not match any catalog skill.
var ErrUnknownSkill = errors.New("unknown skill")

// Skill names one of the 28 catalog skills.
type Skill string

const (
	Acrobatics     Skill = "acrobatics"
	Crime          Skill = "crime"
	Stealth        Skill = "stealth"
	Initiative     Skill = "initiative"
	Piloting       Skill = "piloting"
	Marksmanship   Skill = "marksmanship"
	Reflexes       Skill = "reflexes"
	Athletics      Skill = "athletics"
	Fighting       Skill = "fighting"
	CurrentEvents  Skill = "current_events"
	Sciences       Skill = "sciences"
	Investigation  Skill = "investigation"
	Medicine       Skill = "medicine"
	Occultism      Skill = "occultism"
	Profession     Skill = "profession"
	Survival       Skill = "survival"
	Tactics        Skill = "tactics"
	Technology     Skill = "technology"
	AnimalHandling Skill = "animal_handling"
	Arts           Skill = "arts"
	Diplomacy      Skill = "diplomacy"
	Deception      Skill = "deception"
	Intimidation   Skill = "intimidation"
	Intuition      Skill = "intuition"
	Perception     Skill = "perception"
	Religion       Skill = "religion"
	Will           Skill = "will"
	Fortitude      Skill = "fortitude"
)

// skillCatalog binds every skill to its governing attribute, in sheet order.
// The binding never changes at runtime.
var skillCatalog = []struct {
	skill Skill
	attr  Attribute
}{
	{Acrobatics, Agility},
	{Crime, Agility},
	{Stealth, Agility},
	{Initiative, Agility},
	{Piloting, Agility},
	{Marksmanship, Agility},
	{Reflexes, Agility},
	{Athletics, Strength},
	{Fighting, Strength},
	{CurrentEvents, Intellect},
	{Sciences, Intellect},
	{Investigation, Intellect},
	{Medicine, Intellect},
	{Occultism, Intellect},
	{Profession, Intellect},
	{Survival, Intellect},
	{Tactics, Intellect},
	{Technology, Intellect},
	{AnimalHandling, Presence},
	{Arts, Presence},
	{Diplomacy, Presence},
	{Deception, Presence},
	{Intimidation, Presence},
	{Intuition, Presence},
	{Perception, Presence},
	{Religion, Presence},
	{Will, Presence},
	{Fortitude, Vigor},
}

var skillIndex = func() map[Skill]Attribute {
	m := make(map[Skill]Attribute, len(skillCatalog))
	for _, e := range skillCatalog {
		m[e.skill] = e.attr
	}
	return m
}()

// Skills returns all catalog skills in sheet order.
//
// Postcondition: len(result) == 28; the caller owns the returned slice.
func Skills() []Skill {
	out := make([]Skill, len(skillCatalog))
	for i, e := range skillCatalog {
		out[i] = e.skill
	}
	return out
}

// Valid reports whether s is a catalog skill.
func (s Skill) Valid() bool {
	_, ok := skillIndex[s]
	return ok
}

// Attribute returns the governing attribute of s, or "" when s is not a catalog skill.
func (s Skill) Attribute() Attribute {
	return skillIndex[s]
}

// ParseSkill converts a name to a Skill.
//
// Postcondition: Returns a valid Skill, or an error wrapping ErrUnknownSkill.
func ParseSkill(name string) (Skill, error) {
	s := Skill(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	return s, nil
}
