package schema

import (
	"github.com/google/uuid"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
)

// Item field bounds.
var (
	slotBounds   = between(1, 4)
	sideBounds   = between(1, 2)
	weightBounds = atLeast(0)
)

// ValidateItem normalizes a raw item record.
//
// Recognized keys: id, name, description, slots, width, height, weight.
// Unknown keys are dropped.
//
// Postcondition: err is nil, or it aggregates one *ValidationError per bad
// field; in both cases the returned Item holds the normalized value of every
// good field and the declared default of every bad one.
func ValidateItem(raw map[string]any) (character.Item, error) {
	var c cleaner
	it := c.item("", raw)
	return it, c.err
}

func (c *cleaner) item(prefix string, raw map[string]any) character.Item {
	def := character.BlankItem()
	it := character.Item{
		ID:          c.text(prefix, raw, "id", ""),
		Name:        c.text(prefix, raw, "name", def.Name),
		Description: c.text(prefix, raw, "description", def.Description),
		Slots:       c.integer(prefix, raw, "slots", def.Slots, slotBounds),
		Width:       c.integer(prefix, raw, "width", def.Width, sideBounds),
		Height:      c.integer(prefix, raw, "height", def.Height, sideBounds),
		Weight:      c.number(prefix, raw, "weight", def.Weight, false, weightBounds),
	}
	if it.ID != "" {
		if _, err := uuid.Parse(it.ID); err != nil {
			c.fail(join(prefix, "id"), KindTypeMismatch, it.ID, "expected a UUID")
			it.ID = ""
		}
	}
	return it
}

// ItemRaw converts it back to its raw form.
//
// Postcondition: ValidateItem(ItemRaw(it)) returns it unchanged for any valid it.
func ItemRaw(it character.Item) map[string]any {
	raw := map[string]any{
		"name":        it.Name,
		"description": it.Description,
		"slots":       it.Slots,
		"width":       it.Width,
		"height":      it.Height,
		"weight":      it.Weight,
	}
	if it.ID != "" {
		raw["id"] = it.ID
	}
	return raw
}
