package action

import "strings"

// Invocation holds the action name and target parsed from a text line.
type Invocation struct {
	// Action is the first word of the input.
	Action string
	// Target is the remaining text, trimmed.
	Target string
}

// Parse splits a text line into an action name and its target.
//
// Postcondition: Returns an Invocation. If line is blank, Action is empty.
func Parse(line string) Invocation {
	line = strings.TrimSpace(line)
	if line == "" {
		return Invocation{}
	}
	name, rest, _ := strings.Cut(line, " ")
	return Invocation{Action: name, Target: strings.TrimSpace(rest)}
}
