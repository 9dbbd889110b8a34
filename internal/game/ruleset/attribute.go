// Package ruleset holds the static rules of the system: the five attributes,
// the fixed skill catalog, the four classes and their progression table.
package ruleset

import (
	"errors"
	"fmt"
)

// ErrUnknownAttribute is returned when a name does not match any attribute.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Attribute names one of the five attribute scores.
type Attribute string

const (
	Strength  Attribute = "strength"
	Agility   Attribute = "agility"
	Intellect Attribute = "intellect"
	Vigor     Attribute = "vigor"
	Presence  Attribute = "presence"
)

// Attributes returns every attribute in sheet order.
func Attributes() []Attribute {
	return []Attribute{Strength, Agility, Intellect, Vigor, Presence}
}

// Valid reports whether a is one of the five attributes.
func (a Attribute) Valid() bool {
	switch a {
	case Strength, Agility, Intellect, Vigor, Presence:
		return true
	}
	return false
}

// ParseAttribute converts a name to an Attribute.
//
// Postcondition: Returns a valid Attribute, or an error wrapping ErrUnknownAttribute.
func ParseAttribute(name string) (Attribute, error) {
	a := Attribute(name)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return a, nil
}
