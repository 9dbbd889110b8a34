package roll

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// Labeler supplies localized display names for roll labels.
type Labeler interface {
	Tag() language.Tag
	Attribute(a ruleset.Attribute) string
	Skill(s ruleset.Skill) string
}

// Resolver rolls checks through a logged dice.Roller and labels results with
// localized names.
type Resolver struct {
	roller *dice.Roller
	labels Labeler
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: roller and logger must be non-nil. labels may be nil, in which
// case results carry the upper-cased key as their label.
func NewResolver(roller *dice.Roller, labels Labeler, logger *zap.Logger) *Resolver {
	return &Resolver{roller: roller, labels: labels, logger: logger}
}

// Attribute rolls an attribute check for c.
//
// Postcondition: returns an error wrapping ruleset.ErrUnknownAttribute when attr is invalid.
func (r *Resolver) Attribute(c character.Character, attr ruleset.Attribute) (Result, error) {
	res, expr, err := attributeCheck(c, attr)
	if err != nil {
		return Result{}, err
	}
	if r.labels != nil {
		res.Label = upper(r.labels.Tag(), r.labels.Attribute(attr))
	}
	return r.roll(res, expr), nil
}

// Skill rolls a skill check for c.
//
// Postcondition: returns an error wrapping ruleset.ErrUnknownSkill when skill is invalid.
func (r *Resolver) Skill(c character.Character, skill ruleset.Skill) (Result, error) {
	res, expr, err := skillCheck(c, skill)
	if err != nil {
		return Result{}, err
	}
	if r.labels != nil {
		res.Label = upper(r.labels.Tag(), r.labels.Skill(skill))
	}
	return r.roll(res, expr), nil
}

func (r *Resolver) roll(res Result, expr dice.Expression) Result {
	res = res.with(r.roller.Roll(expr))
	r.logger.Debug("check resolved",
		zap.String("kind", string(res.Kind)),
		zap.String("key", res.Key),
		zap.String("label", res.Label),
		zap.String("formula", res.Formula),
		zap.Ints("rolled", res.Dice.Rolled),
		zap.Ints("kept", res.Dice.Dice),
		zap.Int("modifier", res.Dice.Modifier),
		zap.Int("total", res.Total),
	)
	return res
}
