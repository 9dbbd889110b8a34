package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/schema"
)

func requireFieldError(t *testing.T, err error, field string, kind schema.Kind) {
	t.Helper()
	require.Error(t, err)
	ve, ok := schema.FieldError(err, field)
	require.True(t, ok, "expected an error for %q, got %v", field, err)
	assert.Equal(t, kind, ve.Kind, "field %q", field)
}

func TestValidateCharacter_EmptyInputYieldsDefaults(t *testing.T) {
	c, err := schema.ValidateCharacter(nil)
	require.NoError(t, err)
	assert.Equal(t, character.Blank(), c)
}

func TestValidateCharacter_FullRecord(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"strength": 2, "agility": "3", "intellect": 0, "vigor": 2.4, "presence": 1},
		"status": map[string]any{
			"pv":     map[string]any{"value": 18, "max": 25},
			"sanity": map[string]any{"value": 10},
		},
		"skills": map[string]any{
			"stealth":  map[string]any{"bonus": 5, "attribute": "agility"},
			"medicine": map[string]any{"bonus": -2},
		},
		"details": map[string]any{"class": "occultist", "origin": "Acadêmico", "nex": 35, "stage": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, character.Attributes{Strength: 2, Agility: 3, Intellect: 0, Vigor: 2, Presence: 1}, c.Attributes)
	assert.Equal(t, character.ResourcePool{Value: 18, Max: 25}, c.Status.Health)
	assert.Equal(t, character.ResourcePool{Value: 2, Max: 2}, c.Status.Effort)
	assert.Equal(t, character.ResourcePool{Value: 10, Max: 12}, c.Status.Sanity)
	assert.Equal(t, character.Skill{Bonus: 5, Attribute: ruleset.Agility}, c.Skills[ruleset.Stealth])
	assert.Equal(t, character.Skill{Bonus: -2, Attribute: ruleset.Intellect}, c.Skills[ruleset.Medicine])
	assert.Equal(t, character.Skill{Attribute: ruleset.Presence}, c.Skills[ruleset.Will])
	assert.Equal(t, character.Details{Class: ruleset.Occultist, Origin: "Acadêmico", NEX: 35, Stage: 2}, c.Details)
}

func TestValidateCharacter_NEXOutOfRange(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{"details": map[string]any{"nex": 150}})
	requireFieldError(t, err, "details.nex", schema.KindOutOfRange)
	assert.Equal(t, character.DefaultNEX, c.Details.NEX, "bad field falls back to its default")
}

func TestValidateCharacter_InvalidClass(t *testing.T) {
	_, err := schema.ValidateCharacter(map[string]any{"details": map[string]any{"class": "ghost"}})
	requireFieldError(t, err, "details.class", schema.KindInvalidChoice)
}

func TestValidateCharacter_TypeMismatch(t *testing.T) {
	_, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"vigor": "lots", "presence": true},
		"details":    "nope",
	})
	requireFieldError(t, err, "attributes.vigor", schema.KindTypeMismatch)
	requireFieldError(t, err, "attributes.presence", schema.KindTypeMismatch)
	requireFieldError(t, err, "details", schema.KindTypeMismatch)
	assert.Len(t, schema.Errors(err), 3)
}

func TestValidateCharacter_NegativeAttribute(t *testing.T) {
	_, err := schema.ValidateCharacter(map[string]any{"attributes": map[string]any{"agility": -1}})
	requireFieldError(t, err, "attributes.agility", schema.KindOutOfRange)
}

func TestValidateCharacter_RoundsBeforeBoundsCheck(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"agility": -0.4},
		"details":    map[string]any{"nex": 99.4, "stage": 0.6},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Attributes.Agility)
	assert.Equal(t, 99, c.Details.NEX)
	assert.Equal(t, 1, c.Details.Stage)

	_, err = schema.ValidateCharacter(map[string]any{"details": map[string]any{"nex": 99.5}})
	requireFieldError(t, err, "details.nex", schema.KindOutOfRange)
}

func TestValidateCharacter_StageBelowOne(t *testing.T) {
	_, err := schema.ValidateCharacter(map[string]any{"details": map[string]any{"stage": 0}})
	requireFieldError(t, err, "details.stage", schema.KindOutOfRange)
}

func TestValidateCharacter_SkillBindingIsImmutable(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"skills": map[string]any{"stealth": map[string]any{"bonus": 1, "attribute": "presence"}},
	})
	requireFieldError(t, err, "skills.stealth.attribute", schema.KindInvalidChoice)
	assert.Equal(t, ruleset.Agility, c.Skills[ruleset.Stealth].Attribute)
}

func TestValidateCharacter_UnknownKeysDropped(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"luck": 9},
		"skills":     map[string]any{"juggling": map[string]any{"bonus": 3}},
		"level":      40,
	})
	require.NoError(t, err)
	assert.Equal(t, character.Blank(), c)
}

func TestValidateCharacter_NullAndBlankMeanDefault(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"vigor": nil, "agility": "  "},
		"status":     nil,
	})
	require.NoError(t, err)
	assert.Equal(t, character.DefaultAttribute, c.Attributes.Vigor)
	assert.Equal(t, character.DefaultAttribute, c.Attributes.Agility)
}

func TestValidateCharacter_MapAnyKeys(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[any]any{"vigor": 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Attributes.Vigor)
}

func TestValidateCharacter_Items(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"items": []any{
			map[string]any{"name": "Pistola", "slots": 1, "weight": 1.5},
			map[string]any{"name": "Mochila", "slots": 5},
		},
	})
	requireFieldError(t, err, "items[1].slots", schema.KindOutOfRange)
	require.Equal(t, 2, c.Inventory.Len())
	assert.Equal(t, 1, c.Inventory.Items()[1].Slots)

	_, err = schema.ValidateCharacter(map[string]any{"items": "pistola"})
	requireFieldError(t, err, "items", schema.KindTypeMismatch)
}

func TestValidateCharacter_NullItemIsReported(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"items": []any{
			map[string]any{"name": "Lanterna"},
			nil,
			map[string]any{"name": "Corda"},
		},
	})
	requireFieldError(t, err, "items[1]", schema.KindTypeMismatch)
	require.Equal(t, 2, c.Inventory.Len())
	assert.Equal(t, "Lanterna", c.Inventory.Items()[0].Name)
	assert.Equal(t, "Corda", c.Inventory.Items()[1].Name)
}

func TestValidateCharacter_HugeIntegersRejected(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"strength": 1e19, "vigor": "1e300", "agility": -1e19},
		"status":     map[string]any{"pv": map[string]any{"value": 1e19, "max": -1e19}},
		"skills":     map[string]any{"fighting": map[string]any{"bonus": 1e18}},
	})
	requireFieldError(t, err, "attributes.strength", schema.KindOutOfRange)
	requireFieldError(t, err, "attributes.vigor", schema.KindOutOfRange)
	requireFieldError(t, err, "attributes.agility", schema.KindOutOfRange)
	requireFieldError(t, err, "status.pv.value", schema.KindOutOfRange)
	requireFieldError(t, err, "status.pv.max", schema.KindOutOfRange)
	requireFieldError(t, err, "skills.fighting.bonus", schema.KindOutOfRange)
	assert.Equal(t, character.DefaultAttribute, c.Attributes.Strength)
	assert.Equal(t, character.DefaultAttribute, c.Attributes.Vigor)
	assert.Equal(t, character.DefaultHealth, c.Status.Health.Value)
	assert.Equal(t, 0, c.Skills[ruleset.Fighting].Bonus)

	again, err := schema.ValidateCharacter(schema.Raw(c))
	require.NoError(t, err)
	assert.Equal(t, c, again)
	assert.Positive(t, character.Recompute(c).Status.Health.Max)
}

func TestValidateCharacter_LargestExactIntegerAccepted(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"presence": float64(1 << 53)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1<<53, c.Attributes.Presence)
}

func TestValidateCharacter_DuplicateItemID(t *testing.T) {
	id := "0b8f7a58-5f0e-4c55-9a59-4b5f0f3f7a10"
	c, err := schema.ValidateCharacter(map[string]any{
		"items": []any{
			map[string]any{"id": id},
			map[string]any{"id": id},
		},
	})
	requireFieldError(t, err, "items[1].id", schema.KindInvalidChoice)
	assert.Equal(t, 1, c.Inventory.Len())
}

func TestValidationError_ErrorsAs(t *testing.T) {
	_, err := schema.ValidateCharacter(map[string]any{"details": map[string]any{"nex": -1}})
	var ve *schema.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "details.nex", ve.Field)
	assert.Contains(t, ve.Error(), "out-of-range")
}

func TestRaw_RoundTrip(t *testing.T) {
	c, err := schema.ValidateCharacter(map[string]any{
		"attributes": map[string]any{"vigor": 3},
		"details":    map[string]any{"class": "survivor", "stage": 4},
		"items":      []any{map[string]any{"name": "Faca", "weight": 0.5}},
	})
	require.NoError(t, err)
	again, err := schema.ValidateCharacter(schema.Raw(c))
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func rawCharacter() *rapid.Generator[map[string]any] {
	return rapid.Custom(func(t *rapid.T) map[string]any {
		anyNumber := rapid.OneOf(
			rapid.Map(rapid.IntRange(-5, 120), func(i int) any { return i }),
			rapid.Map(rapid.Float64Range(-5, 120), func(f float64) any { return f }),
			rapid.Map(rapid.StringMatching(`[0-9]{1,2}|x`), func(s string) any { return s }),
			rapid.Map(rapid.Float64Range(-1e300, 1e300), func(f float64) any { return f }),
			rapid.Map(rapid.SampledFrom([]string{"1e19", "-1e19", "1e300", "9007199254740993"}), func(s string) any { return s }),
		)
		attrs := map[string]any{}
		for _, a := range ruleset.Attributes() {
			if rapid.Bool().Draw(t, "has_"+string(a)) {
				attrs[string(a)] = anyNumber.Draw(t, string(a))
			}
		}
		skills := map[string]any{}
		for _, s := range rapid.SliceOfN(rapid.SampledFrom(ruleset.Skills()), 0, 5).Draw(t, "skills") {
			skills[string(s)] = map[string]any{"bonus": anyNumber.Draw(t, "bonus")}
		}
		return map[string]any{
			"attributes": attrs,
			"status": map[string]any{
				"pv": map[string]any{"value": anyNumber.Draw(t, "pv")},
			},
			"skills": skills,
			"details": map[string]any{
				"class": rapid.SampledFrom([]string{"combatant", "specialist", "occultist", "survivor", "ghost"}).Draw(t, "class"),
				"nex":   anyNumber.Draw(t, "nex"),
				"stage": anyNumber.Draw(t, "stage"),
			},
		}
	})
}

// Property: validation is idempotent, with or without errors on the first pass.
func TestValidateCharacter_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rawCharacter().Draw(rt, "raw")
		first, _ := schema.ValidateCharacter(raw)
		second, err := schema.ValidateCharacter(schema.Raw(first))
		if err != nil {
			rt.Fatalf("re-validating a normalized record failed: %v", err)
		}
		assert.Equal(rt, first, second)
	})
}

// Property: every normalized attribute is non-negative and NEX stays in range.
func TestValidateCharacter_InvariantsHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c, _ := schema.ValidateCharacter(rawCharacter().Draw(rt, "raw"))
		for _, a := range ruleset.Attributes() {
			if c.Attributes.Score(a) < 0 {
				rt.Fatalf("attribute %s is negative", a)
			}
		}
		if c.Details.NEX < 0 || c.Details.NEX > 99 || c.Details.Stage < 1 || !c.Details.Class.Valid() {
			rt.Fatalf("details out of range: %+v", c.Details)
		}
	})
}
