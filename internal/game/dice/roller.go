package dice

import "sort"

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// A hand-built expression with more than MaxCount dice rolls MaxCount of them,
// and keep counts are capped at the number rolled.
//
// Precondition: expr.Count >= 1, expr.Sides >= 2; src must be non-nil.
// Postcondition: len(result.Rolled) == min(expr.Count, MaxCount);
//
//	len(result.Dice) == expr.KeepHighest or expr.KeepLowest when either is > 0,
//	else len(result.Rolled), capped at len(result.Rolled).
//	result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, min(expr.Count, MaxCount))
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	kept := rolled
	switch {
	case expr.KeepHighest > 0:
		kept = sorted(rolled, true)[:min(expr.KeepHighest, len(rolled))]
	case expr.KeepLowest > 0:
		kept = sorted(rolled, false)[:min(expr.KeepLowest, len(rolled))]
	}

	return RollResult{
		Expression: expr.Raw,
		Rolled:     rolled,
		Dice:       kept,
		Modifier:   expr.Modifier,
	}
}

func sorted(rolled []int, descending bool) []int {
	out := make([]int, len(rolled))
	copy(out, rolled)
	if descending {
		sort.Sort(sort.Reverse(sort.IntSlice(out)))
	} else {
		sort.Ints(out)
	}
	return out
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: expr must be a valid dice expression string; src must be non-nil.
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
