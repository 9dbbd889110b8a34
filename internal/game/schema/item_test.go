package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/schema"
)

func TestValidateItem_Defaults(t *testing.T) {
	it, err := schema.ValidateItem(nil)
	require.NoError(t, err)
	assert.Equal(t, character.BlankItem(), it)
}

func TestValidateItem_Valid(t *testing.T) {
	it, err := schema.ValidateItem(map[string]any{
		"name":        "Katana",
		"description": "<p>Lâmina <b>amaldiçoada</b></p>",
		"slots":       "2",
		"width":       2,
		"height":      1,
		"weight":      2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, character.Item{
		Name:        "Katana",
		Description: "<p>Lâmina <b>amaldiçoada</b></p>",
		Slots:       2,
		Width:       2,
		Height:      1,
		Weight:      2.5,
	}, it)
}

func TestValidateItem_SlotsOutOfRange(t *testing.T) {
	it, err := schema.ValidateItem(map[string]any{"slots": 5})
	requireFieldError(t, err, "slots", schema.KindOutOfRange)
	assert.Equal(t, 1, it.Slots)
}

func TestValidateItem_Bounds(t *testing.T) {
	_, err := schema.ValidateItem(map[string]any{"slots": 0, "width": 3, "height": 0, "weight": -0.1})
	requireFieldError(t, err, "slots", schema.KindOutOfRange)
	requireFieldError(t, err, "width", schema.KindOutOfRange)
	requireFieldError(t, err, "height", schema.KindOutOfRange)
	requireFieldError(t, err, "weight", schema.KindOutOfRange)
}

func TestValidateItem_WeightIsNotRounded(t *testing.T) {
	it, err := schema.ValidateItem(map[string]any{"weight": 0.25})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, it.Weight, 1e-12)
}

func TestValidateItem_TypeMismatch(t *testing.T) {
	_, err := schema.ValidateItem(map[string]any{"name": []any{"a"}, "slots": "many", "id": "xyz"})
	requireFieldError(t, err, "name", schema.KindTypeMismatch)
	requireFieldError(t, err, "slots", schema.KindTypeMismatch)
	requireFieldError(t, err, "id", schema.KindTypeMismatch)
}

// Property: ValidateItem(ItemRaw(x)) == x for every normalized item.
func TestValidateItem_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := map[string]any{
			"name":   rapid.String().Draw(rt, "name"),
			"slots":  rapid.IntRange(-2, 8).Draw(rt, "slots"),
			"width":  rapid.Float64Range(0, 3).Draw(rt, "width"),
			"height": rapid.IntRange(0, 3).Draw(rt, "height"),
			"weight": rapid.Float64Range(-1, 50).Draw(rt, "weight"),
		}
		first, _ := schema.ValidateItem(raw)
		second, err := schema.ValidateItem(schema.ItemRaw(first))
		if err != nil {
			rt.Fatalf("re-validation failed: %v", err)
		}
		assert.Equal(rt, first, second)
	})
}
