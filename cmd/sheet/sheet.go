package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/roll"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/schema"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/i18n"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/system"
)

// decodeCharacter parses a YAML character record, validates it and recomputes
// it against sys. Validation errors are returned alongside the normalized sheet.
func decodeCharacter(data []byte, sys *system.System) (character.Character, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return character.Character{}, fmt.Errorf("parsing character: %w", err)
	}
	c, err := schema.ValidateCharacter(raw)
	return sys.Recompute(c), err
}

// loadCharacter reads path and decodes it with decodeCharacter.
func loadCharacter(path string, sys *system.System) (character.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return character.Character{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeCharacter(data, sys)
}

func printSheet(w io.Writer, c character.Character, labels *i18n.Labels) {
	d := c.Derived()
	fmt.Fprintln(w, labels.Message(i18n.KeySheetTitle))
	fmt.Fprintf(w, "%s  NEX %d%%  level %d", labels.Class(c.Details.Class), c.Details.NEX, d.Level)
	if c.Details.Class == ruleset.Survivor {
		fmt.Fprintf(w, "  stage %d", c.Details.Stage)
	}
	if c.Details.Origin != "" {
		fmt.Fprintf(w, "  %s", c.Details.Origin)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range ruleset.Attributes() {
		fmt.Fprintf(tw, "%s\t%d\n", labels.Attribute(a), c.Attributes.Score(a))
	}
	fmt.Fprintf(tw, "PV\t%d/%d\n", c.Status.Health.Value, c.Status.Health.Max)
	fmt.Fprintf(tw, "PE\t%d/%d\t(%d/turn)\n", c.Status.Effort.Value, c.Status.Effort.Max, d.PerTurnEffortLimit)
	fmt.Fprintf(tw, "SAN\t%d/%d\t%s\n", c.Status.Sanity.Value, c.Status.Sanity.Max, labels.VisualState(c.VisualState()))
	fmt.Fprintf(tw, "DT\t%d\n", d.RitualDifficulty)
	fmt.Fprintf(tw, "DEF\t%d\n", d.PassiveDefense)
	tw.Flush()

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range ruleset.Skills() {
		e := c.SkillEntry(s)
		if e.Bonus == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%+d\t%s\n", labels.Skill(s), e.Bonus, roll.SkillFormula(c.Attributes.Score(e.Attribute), e.Bonus))
	}
	tw.Flush()

	if c.Inventory != nil && c.Inventory.Len() > 0 {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, it := range c.Inventory.Items() {
			fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%g\n", it.Name, it.Width, it.Height, it.Slots, it.Weight)
		}
		fmt.Fprintf(tw, "\t\t%d\t%g\n", c.Inventory.TotalSlots(), c.Inventory.TotalWeight())
		tw.Flush()
	}
}

func printRoll(w io.Writer, res roll.Result, labels *i18n.Labels) {
	fmt.Fprintln(w, labels.Flavor(res.Label))
	fmt.Fprintf(w, "  %s\n", res.Dice)
}
