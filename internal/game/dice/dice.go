// Package dice provides the randomness abstraction, dice-notation parser and
// roll-result types used by the sheet's attribute and skill checks.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "3d20kh+2"
	Rolled     []int  // every die rolled, in roll order
	Dice       []int  // dice counted toward the total after keep-highest/lowest
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of the kept dice plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// When some rolled dice were discarded the full roll is shown first:
//
//	"2d20kl → [17 3] kept [3] +0 = 3"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	diceStr := fmt.Sprintf("%v", r.Dice)
	if len(r.Rolled) > len(r.Dice) {
		diceStr = fmt.Sprintf("%v kept %v", r.Rolled, r.Dice)
	}
	modStr := fmt.Sprintf("%+d", r.Modifier)
	return fmt.Sprintf("%s → %s %s = %d", r.Expression, diceStr, modStr, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
