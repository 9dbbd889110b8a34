package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

func TestBlank_Defaults(t *testing.T) {
	c := character.Blank()
	assert.Equal(t, character.Attributes{Strength: 1, Agility: 1, Intellect: 1, Vigor: 1, Presence: 1}, c.Attributes)
	assert.Equal(t, character.ResourcePool{Value: 20, Max: 20}, c.Status.Health)
	assert.Equal(t, character.ResourcePool{Value: 2, Max: 2}, c.Status.Effort)
	assert.Equal(t, character.ResourcePool{Value: 12, Max: 12}, c.Status.Sanity)
	assert.Equal(t, ruleset.Combatant, c.Details.Class)
	assert.Equal(t, 5, c.Details.NEX)
	assert.Equal(t, 1, c.Details.Stage)
	assert.Equal(t, "", c.Details.Origin)
	require.Len(t, c.Skills, 28)
	for s, e := range c.Skills {
		assert.Equal(t, 0, e.Bonus)
		assert.Equal(t, s.Attribute(), e.Attribute)
	}
	require.NotNil(t, c.Inventory)
	assert.Equal(t, 0, c.Inventory.Len())
	assert.Equal(t, character.Derived{}, c.Derived())
}

func TestNew_ComputesDerived(t *testing.T) {
	c := character.New()
	assert.Equal(t, 1, c.Level())
	assert.Equal(t, 21, c.Status.Health.Max)
	assert.Equal(t, 20, c.Status.Health.Value, "value is not clamped or reset by recompute")
	assert.Equal(t, 3, c.Status.Effort.Max)
	assert.Equal(t, 12, c.Status.Sanity.Max)
	assert.Equal(t, 1, c.PerTurnEffortLimit())
	assert.Equal(t, 12, c.RitualDifficulty())
	assert.Equal(t, 11, c.PassiveDefense())
}

func TestBlankItem_Defaults(t *testing.T) {
	it := character.BlankItem()
	assert.Equal(t, character.Item{Slots: 1, Width: 1, Height: 1, Weight: 1}, it)
}
