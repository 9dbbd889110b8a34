package ruleset

import (
	"errors"
	"fmt"
)

// ErrUnknownClass is returned when a name does not match any class.
var ErrUnknownClass = errors.New("unknown class")

// Class is the closed set of playable classes.
type Class string

const (
	Combatant  Class = "combatant"
	Specialist Class = "specialist"
	Occultist  Class = "occultist"
	Survivor   Class = "survivor"
)

// Classes returns every class in display order.
func Classes() []Class {
	return []Class{Combatant, Specialist, Occultist, Survivor}
}

// Valid reports whether c is one of the four classes.
func (c Class) Valid() bool {
	switch c {
	case Combatant, Specialist, Occultist, Survivor:
		return true
	}
	return false
}

// ParseClass converts a name to a Class.
//
// Postcondition: Returns a valid Class, or an error wrapping ErrUnknownClass.
func ParseClass(name string) (Class, error) {
	c := Class(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return c, nil
}
