package character

import "github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"

// levelFromNEX returns max(1, floor(nex/5)).
func levelFromNEX(nex int) int {
	level := nex / 5
	if nex < 0 && nex%5 != 0 {
		level--
	}
	if level < 1 {
		return 1
	}
	return level
}

// Recompute returns c with resource maximums and derived fields recomputed
// from the default progression table.
//
// Postcondition: see RecomputeWith.
func Recompute(c Character) Character {
	return RecomputeWith(ruleset.DefaultTable(), c)
}

// RecomputeWith returns c with every derived value recomputed from table.
// c itself is not modified; the result is built completely before it is
// returned, so callers never observe a partial recomputation.
//
// Level is max(1, floor(nex/5)) and the level bonus is level-1. The class row
// of table selects the Health, Effort and Sanity maximums; a class with no row
// keeps its previous maximums. Per-turn effort limit is the row's fixed limit
// or level, ritual difficulty is 10 + limit + presence and passive defense is
// 10 + agility.
//
// Precondition: table must be non-nil.
// Postcondition: RecomputeWith(table, RecomputeWith(table, c)) == RecomputeWith(table, c).
func RecomputeWith(table *ruleset.Table, c Character) Character {
	level := levelFromNEX(c.Details.NEX)
	d := Derived{
		Level:              level,
		LevelBonus:         level - 1,
		PerTurnEffortLimit: level,
	}

	status := c.Status
	if row, ok := table.Lookup(c.Details.Class); ok {
		steps := row.Steps(d.LevelBonus, c.Details.Stage)
		status.Health.Max = row.Health.Value(steps, c.Attributes.Score)
		status.Effort.Max = row.Effort.Value(steps, c.Attributes.Score)
		status.Sanity.Max = row.Sanity.Value(steps, c.Attributes.Score)
		d.PerTurnEffortLimit = row.EffortLimit(level)
	}
	d.RitualDifficulty = 10 + d.PerTurnEffortLimit + c.Attributes.Presence
	d.PassiveDefense = 10 + c.Attributes.Agility

	out := c
	out.Status = status
	out.derived = d
	return out
}
