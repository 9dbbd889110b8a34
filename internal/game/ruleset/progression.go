package ruleset

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Driver selects which counter advances a class's resource growth.
type Driver string

const (
	// DriverNEX advances with level - 1, where level is derived from NEX.
	DriverNEX Driver = "nex"
	// DriverStage advances with stage - 1.
	DriverStage Driver = "stage"
)

// Growth describes how one resource maximum grows with progression steps.
//
// Value = Base + score(Attribute) + steps * (PerStep + score(StepAttribute)).
// An empty Attribute or StepAttribute contributes nothing.
type Growth struct {
	Base          int       `yaml:"base"`
	Attribute     Attribute `yaml:"attribute"`
	PerStep       int       `yaml:"per_step"`
	StepAttribute Attribute `yaml:"step_attribute"`
}

// Value evaluates g for the given step count, reading attribute scores through score.
//
// Precondition: score must be non-nil.
func (g Growth) Value(steps int, score func(Attribute) int) int {
	v := g.Base + g.PerStep*steps
	if g.Attribute != "" {
		v += score(g.Attribute)
	}
	if g.StepAttribute != "" {
		v += steps * score(g.StepAttribute)
	}
	return v
}

func (g Growth) validate(field string) error {
	if g.Attribute != "" && !g.Attribute.Valid() {
		return fmt.Errorf("%s.attribute: %w: %q", field, ErrUnknownAttribute, g.Attribute)
	}
	if g.StepAttribute != "" && !g.StepAttribute.Valid() {
		return fmt.Errorf("%s.step_attribute: %w: %q", field, ErrUnknownAttribute, g.StepAttribute)
	}
	return nil
}

// Progression is one class's row of the progression table.
type Progression struct {
	Class  Class  `yaml:"class"`
	Driver Driver `yaml:"driver"`

	// FixedEffortLimit, when > 0, replaces the level-based per-turn effort limit.
	FixedEffortLimit int `yaml:"fixed_effort_limit"`

	Health Growth `yaml:"health"`
	Effort Growth `yaml:"effort"`
	Sanity Growth `yaml:"sanity"`
}

// Steps returns the number of progression increments for this class.
//
// Precondition: p.Driver is DriverNEX or DriverStage (enforced by LoadTable).
func (p Progression) Steps(levelBonus, stage int) int {
	switch p.Driver {
	case DriverStage:
		return stage - 1
	default:
		return levelBonus
	}
}

// EffortLimit returns the per-turn effort limit for a character at level.
func (p Progression) EffortLimit(level int) int {
	if p.FixedEffortLimit > 0 {
		return p.FixedEffortLimit
	}
	return level
}

// Table maps every class to its Progression.
//
// Invariant: a Table built by LoadTable holds exactly one row per Class in Classes().
// A Table is read-only after construction and safe for concurrent use.
type Table struct {
	rows map[Class]*Progression
}

type tableFile struct {
	Classes []*Progression `yaml:"classes"`
}

//go:embed data/progression.yaml
var embeddedProgression []byte

var defaultTable = mustLoadTable(embeddedProgression)

func mustLoadTable(data []byte) *Table {
	t, err := LoadTable(data)
	if err != nil {
		panic("ruleset: embedded progression table is invalid: " + err.Error())
	}
	return t
}

// DefaultTable returns the progression table compiled into the binary.
func DefaultTable() *Table {
	return defaultTable
}

// LoadTable parses and validates a progression table document.
//
// Postcondition: Returns a Table covering every class exactly once, or a non-nil error.
func LoadTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing progression table: %w", err)
	}
	t := &Table{rows: make(map[Class]*Progression, len(f.Classes))}
	var err error
	for i, p := range f.Classes {
		if p == nil {
			err = multierr.Append(err, fmt.Errorf("classes[%d]: empty entry", i))
			continue
		}
		if !p.Class.Valid() {
			err = multierr.Append(err, fmt.Errorf("classes[%d]: %w: %q", i, ErrUnknownClass, p.Class))
			continue
		}
		if _, dup := t.rows[p.Class]; dup {
			err = multierr.Append(err, fmt.Errorf("classes[%d]: duplicate class %q", i, p.Class))
			continue
		}
		if p.Driver != DriverNEX && p.Driver != DriverStage {
			err = multierr.Append(err, fmt.Errorf("classes[%d]: driver must be one of [nex, stage], got %q", i, p.Driver))
		}
		if p.FixedEffortLimit < 0 {
			err = multierr.Append(err, fmt.Errorf("classes[%d]: fixed_effort_limit must be >= 0, got %d", i, p.FixedEffortLimit))
		}
		for _, g := range []struct {
			name string
			g    Growth
		}{{"health", p.Health}, {"effort", p.Effort}, {"sanity", p.Sanity}} {
			err = multierr.Append(err, g.g.validate(fmt.Sprintf("classes[%d].%s", i, g.name)))
		}
		t.rows[p.Class] = p
	}
	for _, c := range Classes() {
		if _, ok := t.rows[c]; !ok {
			err = multierr.Append(err, fmt.Errorf("missing progression for class %q", c))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid progression table: %w", err)
	}
	return t, nil
}

// LoadTableFile reads a progression table from path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Table or a non-nil error.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return LoadTable(data)
}

// Lookup returns the progression row for c.
//
// Postcondition: ok is true for every valid Class; false only for values outside the enum.
func (t *Table) Lookup(c Class) (Progression, bool) {
	p, ok := t.rows[c]
	if !ok {
		return Progression{}, false
	}
	return *p, true
}
