// Package system owns the process-wide rules and labels object. Init installs
// it once at startup, Current reads it, Teardown removes it.
package system

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/config"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/roll"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/i18n"
)

var (
	// ErrNotInitialized is returned by Current before Init or after Teardown.
	ErrNotInitialized = errors.New("system: not initialized")
	// ErrAlreadyInitialized is returned by Init while a System is installed.
	ErrAlreadyInitialized = errors.New("system: already initialized")
)

// Options controls what Init loads.
type Options struct {
	// ProgressionFile replaces the embedded progression table when non-empty.
	ProgressionFile string
	// Locales replaces the embedded label catalog when non-nil.
	Locales fs.FS
	// Locale selects the active labels; empty means i18n.BaseLocale.
	Locale string
	// Logger receives the registration summary; nil discards it.
	Logger *zap.Logger
}

// OptionsFromConfig maps the rules section of cfg onto Options.
func OptionsFromConfig(cfg config.Config, logger *zap.Logger) Options {
	return Options{
		ProgressionFile: cfg.Rules.ProgressionFile,
		Locale:          cfg.Rules.Locale,
		Logger:          logger,
	}
}

// System bundles the progression table and label catalog.
//
// A System is read-only after Init and safe for concurrent use.
type System struct {
	table   *ruleset.Table
	catalog *i18n.Catalog
	labels  *i18n.Labels
}

// Table returns the class progression table.
func (s *System) Table() *ruleset.Table { return s.table }

// Catalog returns the label catalog.
func (s *System) Catalog() *i18n.Catalog { return s.catalog }

// Labels returns the labels of the configured locale.
func (s *System) Labels() *i18n.Labels { return s.labels }

// Recompute recomputes c against the installed progression table.
func (s *System) Recompute(c character.Character) character.Character {
	return character.RecomputeWith(s.table, c)
}

// NewResolver returns a roll resolver labelling checks in the configured locale.
//
// Precondition: roller and logger must be non-nil.
func (s *System) NewResolver(roller *dice.Roller, logger *zap.Logger) *roll.Resolver {
	return roll.NewResolver(roller, s.labels, logger)
}

var (
	mu      sync.RWMutex
	current *System
)

// Load builds a System from opts without installing it.
//
// Postcondition: Returns a System whose table covers every class exactly once
// and whose catalog holds every required label, or a non-nil error.
func Load(opts Options) (*System, error) {
	table := ruleset.DefaultTable()
	if opts.ProgressionFile != "" {
		t, err := ruleset.LoadTableFile(opts.ProgressionFile)
		if err != nil {
			return nil, fmt.Errorf("loading progression table: %w", err)
		}
		table = t
	}

	var (
		catalog *i18n.Catalog
		err     error
	)
	if opts.Locales != nil {
		catalog, err = i18n.LoadFromFS(opts.Locales)
	} else {
		catalog, err = i18n.LoadEmbedded()
	}
	if err != nil {
		return nil, fmt.Errorf("loading label catalog: %w", err)
	}

	locale := opts.Locale
	if locale == "" {
		locale = i18n.BaseLocale
	}
	return &System{
		table:   table,
		catalog: catalog,
		labels:  catalog.For(locale),
	}, nil
}

// Init loads a System from opts and installs it as the process-wide instance.
//
// Precondition: no System is installed.
// Postcondition: on success Current returns the new System; on error nothing is installed.
func Init(opts Options) (*System, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return nil, ErrAlreadyInitialized
	}

	s, err := Load(opts)
	if err != nil {
		return nil, err
	}
	current = s

	source := "embedded"
	if opts.ProgressionFile != "" {
		source = opts.ProgressionFile
	}
	logger.Info("system initialized",
		zap.Int("classes", len(ruleset.Classes())),
		zap.Int("skills", len(ruleset.Skills())),
		zap.String("progression", source),
		zap.Strings("locales", s.catalog.Locales()),
		zap.String("locale", s.labels.Tag().String()),
	)
	return s, nil
}

// Current returns the installed System.
func Current() (*System, error) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// Teardown uninstalls the current System. It is a no-op when none is installed.
func Teardown() {
	mu.Lock()
	current = nil
	mu.Unlock()
}
