package i18n_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/i18n"
)

func loadEmbedded(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	return c
}

func TestLoadEmbedded_Locales(t *testing.T) {
	c := loadEmbedded(t)
	assert.Equal(t, []string{"en-US", "pt-BR"}, c.Locales())
}

func TestLabels_PortugueseClassLabels(t *testing.T) {
	l := loadEmbedded(t).For("pt-BR")
	assert.Equal(t, map[ruleset.Class]string{
		ruleset.Combatant:  "Combatente",
		ruleset.Specialist: "Especialista",
		ruleset.Occultist:  "Ocultista",
		ruleset.Survivor:   "Sobrevivente",
	}, l.Classes())
	assert.Equal(t, "Furtividade", l.Skill(ruleset.Stealth))
	assert.Equal(t, "Presença", l.Attribute(ruleset.Presence))
	assert.Equal(t, "Abalado", l.VisualState(character.StateShaken))
}

func TestLabels_EveryKeyDefined(t *testing.T) {
	c := loadEmbedded(t)
	for _, locale := range c.Locales() {
		l := c.For(locale)
		for _, key := range i18n.RequiredKeys() {
			assert.NotEqual(t, key, l.Message(key), "%s: %s", locale, key)
		}
	}
}

func TestCatalog_Match(t *testing.T) {
	c := loadEmbedded(t)
	assert.Equal(t, language.MustParse("pt-BR"), c.Match("pt-BR"))
	assert.Equal(t, language.MustParse("pt-BR"), c.Match("pt"))
	assert.Equal(t, language.MustParse("pt-BR"), c.Match("fr-FR,pt;q=0.8"))
	assert.Equal(t, language.MustParse("en-US"), c.Match("en-GB"))
	assert.Equal(t, language.MustParse("en-US"), c.Match("ja"))
	assert.Equal(t, language.MustParse("en-US"), c.Match(""))
	assert.Equal(t, language.MustParse("en-US"), c.Match("!!not a tag"))
}

func TestLabels_Flavor(t *testing.T) {
	c := loadEmbedded(t)
	assert.Equal(t, "Investigando: AGILIDADE", c.For("pt-BR").Flavor("AGILIDADE"))
	assert.Equal(t, "Investigating: AGILITY", c.For("en-US").Flavor("AGILITY"))
}

func TestLabels_UnknownKeyFallsBackToKey(t *testing.T) {
	l := loadEmbedded(t).For("pt-BR")
	assert.Equal(t, "class.ghost", l.Class(ruleset.Class("ghost")))
}

func baseLocale() string {
	var b strings.Builder
	b.WriteString("locale: en-US\nmessages:\n")
	for _, key := range i18n.RequiredKeys() {
		b.WriteString("  " + key + ": x\n")
	}
	return b.String()
}

func TestLoadFromFS_FallsBackToBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte(baseLocale())},
	}
	c, err := i18n.LoadFromFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, "x", c.For("de").Skill(ruleset.Arts))
}

func TestLoadFromFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"no files": {},
		"missing base": {
			"locales/pt-BR.yaml": {Data: []byte(strings.Replace(baseLocale(), "en-US", "pt-BR", 1))},
		},
		"locale mismatch": {
			"locales/en-US.yaml": {Data: []byte(strings.Replace(baseLocale(), "en-US", "en-GB", 1))},
		},
		"missing key": {
			"locales/en-US.yaml": {Data: []byte(strings.Replace(baseLocale(), "  skill.will: x\n", "", 1))},
		},
		"bad yaml": {
			"locales/en-US.yaml": {Data: []byte("locale: [")},
		},
		"bad tag": {
			"locales/zz-!!.yaml": {Data: []byte("locale: zz-!!\nmessages: {}\n")},
			"locales/en-US.yaml": {Data: []byte(baseLocale())},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := i18n.LoadFromFS(fsys)
			assert.Error(t, err)
		})
	}
}
