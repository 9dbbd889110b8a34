package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCount is the largest number of dice one expression may roll.
const MaxCount = 100

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: 1 <= Count <= MaxCount, Sides >= 2 after successful Parse.
//
// Invariant: at most one of KeepHighest and KeepLowest is > 0, and neither
// exceeds Count.
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)
	KeepLowest  int    // if > 0, keep only the N lowest dice (e.g. 2d20kl)
}

// String renders e in canonical notation, e.g. "3d20kh+2" or "2d20kl".
// A keep count of one is written without its number.
func (e Expression) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Sides)
	writeKeep := func(op string, n int) {
		b.WriteString(op)
		if n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	switch {
	case e.KeepHighest > 0:
		writeKeep("kh", e.KeepHighest)
	case e.KeepLowest > 0:
		writeKeep("kl", e.KeepLowest)
	}
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3", "3d20kh", "2d20kl+1".
// A bare "kh" or "kl" keeps a single die.
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	// Count defaults to 1 when omitted.
	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if count <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
		if count > MaxCount {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be <= %d", raw, MaxCount)
		}
	}

	body, modStr := splitModifier(s[dIdx+1:])

	keepOp := ""
	keepStr := ""
	if kIdx := strings.Index(body, "k"); kIdx >= 0 {
		suffix := body[kIdx:]
		body = body[:kIdx]
		if len(suffix) < 2 || (suffix[1] != 'h' && suffix[1] != 'l') {
			return Expression{}, fmt.Errorf("dice: unknown keep operator in %q", raw)
		}
		keepOp, keepStr = suffix[:2], suffix[2:]
	}

	if body == "" || body[0] == '+' || body[0] == '-' {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q", raw)
	}
	sides, err := strconv.Atoi(body)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}

	e := Expression{Raw: raw, Count: count, Sides: sides}

	if keepOp != "" {
		keep := 1
		if keepStr != "" {
			keep, err = strconv.Atoi(keepStr)
			if err != nil {
				return Expression{}, fmt.Errorf("dice: invalid %s value in %q: %w", keepOp, raw, err)
			}
		}
		if keep <= 0 || keep > count {
			return Expression{}, fmt.Errorf("dice: %s value %d must be > 0 and <= count %d in %q", keepOp, keep, count, raw)
		}
		if keepOp == "kh" {
			e.KeepHighest = keep
		} else {
			e.KeepLowest = keep
		}
	}

	if modStr != "" {
		e.Modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}
	return e, nil
}

// splitModifier separates a trailing "+N"/"-N" from rest. The search starts at
// position 1 so a leading sign is left for strconv to reject.
func splitModifier(rest string) (body, mod string) {
	for i := 1; i < len(rest); i++ {
		if rest[i] == '+' || rest[i] == '-' {
			return rest[:i], rest[i:]
		}
	}
	return rest, ""
}
