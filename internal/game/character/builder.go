package character

import "github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"

// Declared defaults for a fresh sheet.
const (
	DefaultAttribute = 1
	DefaultHealth    = 20
	DefaultEffort    = 2
	DefaultSanity    = 12
	DefaultClass     = ruleset.Combatant
	DefaultNEX       = 5
	DefaultStage     = 1
)

// Declared defaults for a fresh item.
const (
	DefaultItemSlots  = 1
	DefaultItemWidth  = 1
	DefaultItemHeight = 1
	DefaultItemWeight = 1.0
)

// Blank returns a character holding only declared defaults. Resource
// maximums are the initial seed values and no derived field is computed.
//
// Postcondition: Skills holds every catalog skill with bonus 0; Inventory is empty.
func Blank() Character {
	skills := make(map[ruleset.Skill]Skill, len(ruleset.Skills()))
	for _, s := range ruleset.Skills() {
		skills[s] = Skill{Attribute: s.Attribute()}
	}
	return Character{
		Attributes: Attributes{
			Strength:  DefaultAttribute,
			Agility:   DefaultAttribute,
			Intellect: DefaultAttribute,
			Vigor:     DefaultAttribute,
			Presence:  DefaultAttribute,
		},
		Status: Status{
			Health: ResourcePool{Value: DefaultHealth, Max: DefaultHealth},
			Effort: ResourcePool{Value: DefaultEffort, Max: DefaultEffort},
			Sanity: ResourcePool{Value: DefaultSanity, Max: DefaultSanity},
		},
		Skills: skills,
		Details: Details{
			Class: DefaultClass,
			NEX:   DefaultNEX,
			Stage: DefaultStage,
		},
		Inventory: NewInventory(),
	}
}

// New returns a default character with derived values computed.
func New() Character {
	return Recompute(Blank())
}

// BlankItem returns an item holding only declared defaults and no ID.
func BlankItem() Item {
	return Item{
		Slots:  DefaultItemSlots,
		Width:  DefaultItemWidth,
		Height: DefaultItemHeight,
		Weight: DefaultItemWeight,
	}
}
