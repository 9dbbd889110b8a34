package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/multierr"
)

// bounds is an optional inclusive numeric range.
type bounds struct {
	min, max       float64
	hasMin, hasMax bool
}

var unbounded = bounds{}

func atLeast(n float64) bounds { return bounds{min: n, hasMin: true} }

func between(lo, hi float64) bounds {
	return bounds{min: lo, max: hi, hasMin: true, hasMax: true}
}

func (b bounds) contains(v float64) bool {
	if b.hasMin && v < b.min {
		return false
	}
	if b.hasMax && v > b.max {
		return false
	}
	return true
}

func (b bounds) String() string {
	switch {
	case b.hasMin && b.hasMax:
		return fmt.Sprintf("[%g,%g]", b.min, b.max)
	case b.hasMin:
		return fmt.Sprintf(">= %g", b.min)
	case b.hasMax:
		return fmt.Sprintf("<= %g", b.max)
	}
	return "unbounded"
}

// cleaner walks a raw record and accumulates every failure.
type cleaner struct {
	err error
}

func (c *cleaner) fail(field string, kind Kind, value any, format string, args ...any) {
	c.err = multierr.Append(c.err, &ValidationError{
		Field:  field,
		Kind:   kind,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	})
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// object returns raw as a map. Absent or null yields (nil, true); anything
// that is not a map is a type mismatch and yields (nil, false).
func (c *cleaner) object(field string, raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			ks, ok := k.(string)
			if !ok {
				c.fail(field, KindTypeMismatch, raw, "object keys must be strings, got %T", k)
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		c.fail(field, KindTypeMismatch, raw, "expected an object, got %T", raw)
		return nil, false
	}
}

// maxExactInt is the largest magnitude an integer field accepts: every
// integer up to 2^53 is exact in a float64 and fits an int.
const maxExactInt = 1 << 53

// number coerces obj[key] to a float64. Absent, null and blank strings yield def.
// When integer is set the value is rounded and must not exceed maxExactInt in
// magnitude before the bounds check. Failures
// record an error and yield def.
func (c *cleaner) number(prefix string, obj map[string]any, key string, def float64, integer bool, b bounds) float64 {
	field := join(prefix, key)
	raw, present := obj[key]
	if !present || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case bool, map[string]any, map[any]any, []any:
		c.fail(field, KindTypeMismatch, raw, "expected a number, got %T", raw)
		return def
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		raw = strings.TrimSpace(v)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		c.fail(field, KindTypeMismatch, raw, "expected a number, got %v", raw)
		return def
	}
	if integer {
		f = math.Round(f)
		if math.Abs(f) > maxExactInt {
			c.fail(field, KindOutOfRange, raw, "%g is outside the integer range ±%g", f, float64(maxExactInt))
			return def
		}
	}
	if !b.contains(f) {
		c.fail(field, KindOutOfRange, raw, "%g is outside %s", f, b)
		return def
	}
	return f
}

func (c *cleaner) integer(prefix string, obj map[string]any, key string, def int, b bounds) int {
	return int(c.number(prefix, obj, key, float64(def), true, b))
}

// text coerces obj[key] to a string. Numbers are formatted; objects, lists
// and booleans are type mismatches.
func (c *cleaner) text(prefix string, obj map[string]any, key string, def string) string {
	field := join(prefix, key)
	raw, present := obj[key]
	if !present || raw == nil {
		return def
	}
	switch raw.(type) {
	case bool, map[string]any, map[any]any, []any:
		c.fail(field, KindTypeMismatch, raw, "expected a string, got %T", raw)
		return def
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		c.fail(field, KindTypeMismatch, raw, "expected a string, got %T", raw)
		return def
	}
	return s
}
