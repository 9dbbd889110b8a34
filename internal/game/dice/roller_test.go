package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
)

func TestRoll_KeepHighest(t *testing.T) {
	r := dice.Roll(dice.MustParse("3d20kh+2"), dice.NewFixedSource(4, 18, 9))
	assert.Equal(t, []int{4, 18, 9}, r.Rolled)
	assert.Equal(t, []int{18}, r.Dice)
	assert.Equal(t, 20, r.Total())
}

func TestRoll_KeepLowest(t *testing.T) {
	r := dice.Roll(dice.MustParse("2d20kl"), dice.NewFixedSource(17, 3))
	assert.Equal(t, []int{3}, r.Dice)
	assert.Equal(t, 3, r.Total())
}

func TestRoll_KeepsRolledOrder(t *testing.T) {
	r := dice.Roll(dice.MustParse("4d6kh3"), dice.NewFixedSource(2, 6, 1, 5))
	assert.Equal(t, []int{2, 6, 1, 5}, r.Rolled, "rolled dice are not reordered")
	assert.Equal(t, []int{6, 5, 2}, r.Dice)
}

func TestRoll_HandBuiltCountIsCapped(t *testing.T) {
	e := dice.Expression{Raw: "huge", Count: 1 << 40, Sides: 20, KeepHighest: 1}
	r := dice.Roll(e, dice.NewFixedSource(7))
	assert.Len(t, r.Rolled, dice.MaxCount)
	assert.Equal(t, []int{7}, r.Dice)

	e = dice.Expression{Raw: "huge", Count: 1 << 40, Sides: 6, KeepLowest: 1 << 30}
	r = dice.Roll(e, dice.NewFixedSource(2))
	assert.Len(t, r.Dice, dice.MaxCount)
	assert.Equal(t, 2*dice.MaxCount, r.Total())
}

func TestRollExpr_ParseError(t *testing.T) {
	_, err := dice.RollExpr("xd", dice.NewFixedSource(1))
	assert.Error(t, err)
}

// Property: kept dice are the extreme values of the roll and the total is
// bounded by the expression.
func TestRoll_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		e := dice.Expression{Raw: "x", Count: count, Sides: sides}
		lowest := rapid.Bool().Draw(rt, "lowest")
		if lowest {
			e.KeepLowest = rapid.IntRange(1, count).Draw(rt, "keep")
		} else {
			e.KeepHighest = rapid.IntRange(1, count).Draw(rt, "keep")
		}
		r := dice.Roll(e, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))

		require.Len(rt, r.Rolled, count)
		keep := e.KeepHighest + e.KeepLowest
		require.Len(rt, r.Dice, keep)
		for _, d := range r.Rolled {
			if d < 1 || d > sides {
				rt.Fatalf("die %d outside [1,%d]", d, sides)
			}
		}
		// every discarded die is no better (or no worse) than every kept one
		limit := r.Dice[len(r.Dice)-1]
		discarded := 0
		for _, d := range r.Rolled {
			if (lowest && d > limit) || (!lowest && d < limit) {
				discarded++
			}
		}
		if discarded > count-keep {
			rt.Fatalf("kept %v is not the extreme %d of %v", r.Dice, keep, r.Rolled)
		}
	})
}

func TestLoggedRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	roller := dice.NewLoggedRoller(dice.NewFixedSource(17, 3), zap.New(core))

	r, err := roller.RollExpr("2d20kl")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Total())

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "2d20kl", fields["expression"])
	assert.Equal(t, int64(3), fields["total"])
}

func TestLoggedRoller_ParseError(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewFixedSource(1), zap.NewNop())
	_, err := roller.RollExpr("d")
	assert.Error(t, err)
}
