package character

// VisualState is the presentation mood a sheet takes from its sanity level.
type VisualState string

const (
	StateNormal VisualState = "normal"
	StateShaken VisualState = "shaken"
	StateInsane VisualState = "insane"
)

// VisualStates returns every VisualState, calmest first.
func VisualStates() []VisualState {
	return []VisualState{StateNormal, StateShaken, StateInsane}
}

// Sanity percentage thresholds, inclusive.
const (
	ShakenThreshold = 50
	InsaneThreshold = 25
)

// SanityState maps a sanity value and maximum to a VisualState.
//
// The percentage is value/max*100: at or below InsaneThreshold is insane, at
// or below ShakenThreshold is shaken, anything else normal. When max <= 0 the
// percentage is undefined; a negative value is insane and anything else normal.
func SanityState(value, max int) VisualState {
	if max <= 0 {
		if value < 0 {
			return StateInsane
		}
		return StateNormal
	}
	pct := float64(value) / float64(max) * 100
	switch {
	case pct <= InsaneThreshold:
		return StateInsane
	case pct <= ShakenThreshold:
		return StateShaken
	default:
		return StateNormal
	}
}

// VisualState returns the sanity-driven presentation state of c.
func (c Character) VisualState() VisualState {
	return SanityState(c.Status.Sanity.Value, c.Status.Sanity.Max)
}
