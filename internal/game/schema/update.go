package schema

import (
	"strings"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// Update applies patch to ch, re-validates the merged record and recomputes
// derived values with the default progression table.
//
// See UpdateWith.
func Update(ch character.Character, patch map[string]any) (character.Character, error) {
	return UpdateWith(ruleset.DefaultTable(), ch, patch)
}

// UpdateWith merges patch onto the raw form of ch, validates the result and
// recomputes derived values from table, as one step.
//
// Patch keys may be nested objects or dotted paths ("attributes.vigor").
// Objects merge key by key; any other value, including lists, replaces the
// previous one.
//
// Precondition: table must be non-nil.
// Postcondition: on error ch is returned unchanged together with the
// aggregated validation errors; no partially updated record is produced.
func UpdateWith(table *ruleset.Table, ch character.Character, patch map[string]any) (character.Character, error) {
	merged := Raw(ch)
	mergeInto(merged, expand(patch))
	next, err := ValidateCharacter(merged)
	if err != nil {
		return ch, err
	}
	return character.RecomputeWith(table, next), nil
}

// expand turns dotted keys into nested objects, copying every nested map so
// the caller's patch is never aliased.
func expand(patch map[string]any) map[string]any {
	out := make(map[string]any, len(patch))
	for key, val := range patch {
		if m, ok := val.(map[string]any); ok {
			val = expand(m)
		}
		parts := strings.Split(key, ".")
		if len(parts) == 1 {
			mergeValue(out, key, val)
			continue
		}
		node := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[p] = next
			}
			node = next
		}
		mergeValue(node, parts[len(parts)-1], val)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		mergeValue(dst, k, v)
	}
}

func mergeValue(dst map[string]any, key string, val any) {
	src, srcIsMap := val.(map[string]any)
	cur, curIsMap := dst[key].(map[string]any)
	if srcIsMap && curIsMap {
		mergeInto(cur, src)
		return
	}
	dst[key] = val
}
