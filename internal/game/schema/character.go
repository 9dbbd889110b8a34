package schema

import (
	"fmt"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// Character field bounds.
var (
	attributeBounds = atLeast(0)
	nexBounds       = between(0, 99)
	stageBounds     = atLeast(1)
)

// Raw keys of the three resource pools under "status".
const (
	keyHealth = "pv"
	keyEffort = "pe"
	keySanity = "sanity"
)

// ValidateCharacter normalizes a raw character record.
//
// Layout:
//
//	attributes: {strength, agility, intellect, vigor, presence}
//	status:     {pv: {value, max}, pe: {value, max}, sanity: {value, max}}
//	skills:     {<skill>: {bonus, attribute}}
//	details:    {class, origin, nex, stage}
//	items:      [{id, name, description, slots, width, height, weight}]
//
// Absent fields receive declared defaults and unknown keys are dropped. A
// skill's attribute may be given only if it equals the catalog binding.
// Derived fields are not computed; see character.Recompute.
//
// Postcondition: err is nil, or it aggregates one *ValidationError per bad
// field; in both cases the returned Character holds the normalized value of
// every good field and the declared default of every bad one.
// Postcondition: ValidateCharacter(Raw(c)) returns c for any c returned without error.
func ValidateCharacter(raw map[string]any) (character.Character, error) {
	var c cleaner
	out := character.Blank()

	if attrs, ok := c.object("attributes", raw["attributes"]); ok && attrs != nil {
		for _, a := range ruleset.Attributes() {
			out.Attributes.Set(a, c.integer("attributes", attrs, string(a), character.DefaultAttribute, attributeBounds))
		}
	}

	if status, ok := c.object("status", raw["status"]); ok && status != nil {
		out.Status.Health = c.pool("status", status, keyHealth, out.Status.Health)
		out.Status.Effort = c.pool("status", status, keyEffort, out.Status.Effort)
		out.Status.Sanity = c.pool("status", status, keySanity, out.Status.Sanity)
	}

	if skills, ok := c.object("skills", raw["skills"]); ok && skills != nil {
		for _, s := range ruleset.Skills() {
			out.Skills[s] = c.skill("skills", skills, s)
		}
	}

	if details, ok := c.object("details", raw["details"]); ok && details != nil {
		out.Details = c.details("details", details)
	}

	if items, present := raw["items"]; present && items != nil {
		c.items("items", items, out.Inventory)
	}

	return out, c.err
}

func (c *cleaner) pool(prefix string, status map[string]any, key string, def character.ResourcePool) character.ResourcePool {
	field := join(prefix, key)
	obj, ok := c.object(field, status[key])
	if !ok || obj == nil {
		return def
	}
	return character.ResourcePool{
		Value: c.integer(field, obj, "value", def.Value, unbounded),
		Max:   c.integer(field, obj, "max", def.Max, unbounded),
	}
}

func (c *cleaner) skill(prefix string, skills map[string]any, s ruleset.Skill) character.Skill {
	field := join(prefix, string(s))
	entry := character.Skill{Attribute: s.Attribute()}
	obj, ok := c.object(field, skills[string(s)])
	if !ok || obj == nil {
		return entry
	}
	entry.Bonus = c.integer(field, obj, "bonus", 0, unbounded)
	if attr := c.text(field, obj, "attribute", ""); attr != "" && ruleset.Attribute(attr) != s.Attribute() {
		c.fail(join(field, "attribute"), KindInvalidChoice, attr,
			"skill %q is governed by %q", s, s.Attribute())
	}
	return entry
}

func (c *cleaner) details(prefix string, obj map[string]any) character.Details {
	d := character.Details{
		Class:  character.DefaultClass,
		Origin: c.text(prefix, obj, "origin", ""),
		NEX:    c.integer(prefix, obj, "nex", character.DefaultNEX, nexBounds),
		Stage:  c.integer(prefix, obj, "stage", character.DefaultStage, stageBounds),
	}
	if name := c.text(prefix, obj, "class", string(character.DefaultClass)); name != "" {
		class, err := ruleset.ParseClass(name)
		if err != nil {
			c.fail(join(prefix, "class"), KindInvalidChoice, name,
				"must be one of %v", ruleset.Classes())
		} else {
			d.Class = class
		}
	}
	return d
}

func (c *cleaner) items(field string, raw any, inv *character.Inventory) {
	list, ok := raw.([]any)
	if !ok {
		c.fail(field, KindTypeMismatch, raw, "expected a list, got %T", raw)
		return
	}
	for i, elem := range list {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if elem == nil {
			c.fail(prefix, KindTypeMismatch, nil, "expected an object, got null")
			continue
		}
		obj, ok := c.object(prefix, elem)
		if !ok {
			continue
		}
		it := c.item(prefix, obj)
		if _, err := inv.Put(it); err != nil {
			c.fail(join(prefix, "id"), KindInvalidChoice, it.ID, "duplicate item id")
		}
	}
}

// Raw converts ch back to its raw form. Derived values are not included.
func Raw(ch character.Character) map[string]any {
	attrs := make(map[string]any, 5)
	for _, a := range ruleset.Attributes() {
		attrs[string(a)] = ch.Attributes.Score(a)
	}

	skills := make(map[string]any, len(ruleset.Skills()))
	for _, s := range ruleset.Skills() {
		e := ch.SkillEntry(s)
		skills[string(s)] = map[string]any{
			"bonus":     e.Bonus,
			"attribute": string(e.Attribute),
		}
	}

	raw := map[string]any{
		"attributes": attrs,
		"status": map[string]any{
			keyHealth: poolRaw(ch.Status.Health),
			keyEffort: poolRaw(ch.Status.Effort),
			keySanity: poolRaw(ch.Status.Sanity),
		},
		"skills": skills,
		"details": map[string]any{
			"class":  string(ch.Details.Class),
			"origin": ch.Details.Origin,
			"nex":    ch.Details.NEX,
			"stage":  ch.Details.Stage,
		},
	}
	if ch.Inventory != nil && ch.Inventory.Len() > 0 {
		items := make([]any, 0, ch.Inventory.Len())
		for _, it := range ch.Inventory.Items() {
			items = append(items, ItemRaw(it))
		}
		raw["items"] = items
	}
	return raw
}

func poolRaw(p character.ResourcePool) map[string]any {
	return map[string]any{"value": p.Value, "max": p.Max}
}
