// Package roll turns attribute and skill selections into d20 formulas and
// evaluates them against a dice.Source.
package roll

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// PenaltyDice is the number of d20s rolled, keeping the lowest, for a score of 0.
const PenaltyDice = 2

// Kind identifies what a roll was made for.
type Kind string

const (
	KindAttribute Kind = "attribute"
	KindSkill     Kind = "skill"
)

// Result is one evaluated roll.
//
// Postcondition: Total == Dice.Total().
type Result struct {
	Kind      Kind
	Key       string            // attribute or skill name
	Attribute ruleset.Attribute // attribute whose score chose the dice
	Label     string            // upper-cased display name of Key
	Formula   string            // e.g. "3d20kh+2"
	Total     int
	Dice      dice.RollResult
}

// AttributeExpression returns the dice expression for a check with the given
// attribute score and flat bonus: score d20s keeping the highest, or two d20s
// keeping the lowest when score is 0. Scores above dice.MaxCount roll
// dice.MaxCount dice.
//
// Postcondition: 1 <= Count <= dice.MaxCount; never zero dice.
func AttributeExpression(score, bonus int) dice.Expression {
	e := dice.Expression{Count: min(score, dice.MaxCount), Sides: 20, KeepHighest: 1, Modifier: bonus}
	if score <= 0 {
		e = dice.Expression{Count: PenaltyDice, Sides: 20, KeepLowest: 1, Modifier: bonus}
	}
	e.Raw = e.String()
	return e
}

// AttributeFormula returns the formula string for an attribute score,
// "Nd20kh" or "2d20kl".
func AttributeFormula(score int) string {
	return AttributeExpression(score, 0).Raw
}

// SkillFormula returns the formula string for a skill whose governing
// attribute has score and whose bonus is bonus, e.g. "3d20kh+2".
func SkillFormula(score, bonus int) string {
	return AttributeExpression(score, bonus).Raw
}

// ResolveAttribute rolls an attribute check for c using src.
//
// Precondition: src must be non-nil.
// Postcondition: returns an error wrapping ruleset.ErrUnknownAttribute when attr is invalid.
func ResolveAttribute(c character.Character, attr ruleset.Attribute, src dice.Source) (Result, error) {
	res, expr, err := attributeCheck(c, attr)
	if err != nil {
		return Result{}, err
	}
	return res.with(dice.Roll(expr, src)), nil
}

// ResolveSkill rolls a skill check for c using src. The dice come from the
// skill's governing attribute and the skill's bonus is added as a modifier.
//
// Precondition: src must be non-nil.
// Postcondition: returns an error wrapping ruleset.ErrUnknownSkill when skill is invalid.
func ResolveSkill(c character.Character, skill ruleset.Skill, src dice.Source) (Result, error) {
	res, expr, err := skillCheck(c, skill)
	if err != nil {
		return Result{}, err
	}
	return res.with(dice.Roll(expr, src)), nil
}

func attributeCheck(c character.Character, attr ruleset.Attribute) (Result, dice.Expression, error) {
	if !attr.Valid() {
		return Result{}, dice.Expression{}, fmt.Errorf("roll: %w: %q", ruleset.ErrUnknownAttribute, attr)
	}
	expr := AttributeExpression(c.Attributes.Score(attr), 0)
	return Result{
		Kind:      KindAttribute,
		Key:       string(attr),
		Attribute: attr,
		Label:     upper(language.Und, string(attr)),
		Formula:   expr.Raw,
	}, expr, nil
}

func skillCheck(c character.Character, skill ruleset.Skill) (Result, dice.Expression, error) {
	if !skill.Valid() {
		return Result{}, dice.Expression{}, fmt.Errorf("roll: %w: %q", ruleset.ErrUnknownSkill, skill)
	}
	attr := skill.Attribute()
	expr := AttributeExpression(c.Attributes.Score(attr), c.SkillEntry(skill).Bonus)
	return Result{
		Kind:      KindSkill,
		Key:       string(skill),
		Attribute: attr,
		Label:     upper(language.Und, string(skill)),
		Formula:   expr.Raw,
	}, expr, nil
}

func (r Result) with(d dice.RollResult) Result {
	r.Dice = d
	r.Total = d.Total()
	return r
}

func upper(tag language.Tag, s string) string {
	return cases.Upper(tag).String(s)
}
