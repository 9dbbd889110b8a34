// Package i18n holds the read-only label catalog for classes, attributes,
// skills and sanity states in every supported locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// BaseLocale is the fallback locale; every catalog set must define it.
const BaseLocale = "en-US"

// Message keys outside the per-enum namespaces.
const (
	KeySheetTitle = "sheet.title"
	KeyRollFlavor = "roll.flavor"
)

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is the set of loaded locales. It is read-only after loading and
// safe for concurrent use.
type Catalog struct {
	tags     []language.Tag // BaseLocale first
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
	builder  *catalog.Builder
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
//
// Postcondition: the returned Catalog defines BaseLocale and every locale
// defines every key in RequiredKeys; otherwise a non-nil error is returned.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		messages: make(map[language.Tag]map[string]string, len(paths)),
		builder:  catalog.NewBuilder(),
	}
	for _, p := range paths {
		if err := c.addFile(fsys, p); err != nil {
			return nil, err
		}
	}

	base := language.MustParse(BaseLocale)
	if _, ok := c.messages[base]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	sort.Slice(c.tags, func(i, j int) bool {
		if c.tags[i] == base || c.tags[j] == base {
			return c.tags[i] == base
		}
		return c.tags[i].String() < c.tags[j].String()
	})

	required := RequiredKeys()
	var missing []string
	for _, tag := range c.tags {
		for _, key := range required {
			if _, ok := c.messages[tag][key]; !ok {
				missing = append(missing, tag.String()+":"+key)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing labels: %s", strings.Join(missing, ", "))
	}

	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) addFile(fsys fs.FS, p string) error {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return fmt.Errorf("read locale %s: %w", p, err)
	}
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse locale %s: %w", p, err)
	}
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.TrimSpace(f.Locale) != name {
		return fmt.Errorf("locale %s: locale %q must match file name %q", p, f.Locale, name)
	}
	tag, err := language.Parse(name)
	if err != nil {
		return fmt.Errorf("locale %s: %w", p, err)
	}
	if _, dup := c.messages[tag]; dup {
		return fmt.Errorf("locale %s: %s already defined", p, tag)
	}
	msgs := make(map[string]string, len(f.Messages))
	for key, val := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("locale %s: message key cannot be blank", p)
		}
		msgs[key] = val
		if err := c.builder.SetString(tag, key, val); err != nil {
			return fmt.Errorf("locale %s: key %q: %w", p, key, err)
		}
	}
	c.messages[tag] = msgs
	c.tags = append(c.tags, tag)
	return nil
}

// RequiredKeys lists the keys every locale must define: one per class,
// attribute, skill and visual state, plus the sheet title and roll flavor.
func RequiredKeys() []string {
	keys := []string{KeySheetTitle, KeyRollFlavor}
	for _, c := range ruleset.Classes() {
		keys = append(keys, classKey(c))
	}
	for _, a := range ruleset.Attributes() {
		keys = append(keys, attributeKey(a))
	}
	for _, s := range ruleset.Skills() {
		keys = append(keys, skillKey(s))
	}
	for _, v := range character.VisualStates() {
		keys = append(keys, stateKey(v))
	}
	return keys
}

func classKey(c ruleset.Class) string { return "class." + string(c) }
func attributeKey(a ruleset.Attribute) string { return "attribute." + string(a) }
func skillKey(s ruleset.Skill) string { return "skill." + string(s) }
func stateKey(v character.VisualState) string { return "state." + string(v) }

// Locales returns the loaded locale tags, BaseLocale first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Match returns the supported tag closest to locale, which may be a BCP 47
// tag or an Accept-Language style list. Unknown or malformed input yields
// BaseLocale.
func (c *Catalog) Match(locale string) language.Tag {
	_, idx := language.MatchStrings(c.matcher, locale)
	return c.tags[idx]
}

// For returns the labels of the locale closest to locale.
func (c *Catalog) For(locale string) *Labels {
	tag := c.Match(locale)
	return &Labels{
		tag:      tag,
		messages: c.messages[tag],
		fallback: c.messages[c.tags[0]],
		printer:  message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Labels resolves display names for a single locale.
type Labels struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
	printer  *message.Printer
}

// Tag returns the locale of l.
func (l *Labels) Tag() language.Tag { return l.tag }

// Message returns the label for key, falling back to BaseLocale and then to key itself.
func (l *Labels) Message(key string) string {
	if v, ok := l.messages[key]; ok {
		return v
	}
	if v, ok := l.fallback[key]; ok {
		return v
	}
	return key
}

// Sprintf formats the message stored under key with args.
func (l *Labels) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Class returns the display name of c.
func (l *Labels) Class(c ruleset.Class) string { return l.Message(classKey(c)) }

// Attribute returns the display name of a.
func (l *Labels) Attribute(a ruleset.Attribute) string { return l.Message(attributeKey(a)) }

// Skill returns the display name of s.
func (l *Labels) Skill(s ruleset.Skill) string { return l.Message(skillKey(s)) }

// VisualState returns the display name of v.
func (l *Labels) VisualState(v character.VisualState) string { return l.Message(stateKey(v)) }

// Classes returns a fresh map of every class to its display name.
func (l *Labels) Classes() map[ruleset.Class]string {
	out := make(map[ruleset.Class]string, len(ruleset.Classes()))
	for _, c := range ruleset.Classes() {
		out[c] = l.Class(c)
	}
	return out
}

// Flavor returns the roll header shown above a check, e.g. "Investigating: AGILITY".
func (l *Labels) Flavor(label string) string {
	return l.Sprintf(KeyRollFlavor, label)
}
