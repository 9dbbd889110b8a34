// Package config provides Viper-based configuration loading for the sheet tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OPSHEET_DICE_SOURCE.
const EnvPrefix = "OPSHEET"

// Dice source kinds.
const (
	DiceSourceCrypto = "crypto"
	DiceSourceSeeded = "seeded"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DiceConfig selects the randomness source for rolls.
type DiceConfig struct {
	// Source is "crypto" or "seeded".
	Source string `mapstructure:"source"`
	// Seed feeds the seeded source; ignored for crypto.
	Seed int64 `mapstructure:"seed"`
}

// RulesConfig holds rule-data settings.
type RulesConfig struct {
	// Locale selects the label language, e.g. "pt-BR".
	Locale string `mapstructure:"locale"`
	// ProgressionFile optionally replaces the embedded class progression table.
	ProgressionFile string `mapstructure:"progression_file"`
}

// ScriptingConfig holds macro runner settings.
type ScriptingConfig struct {
	// InstructionLimit caps Lua opcodes per macro run; 0 uses the runner default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// MacroDir optionally names a directory of *.lua macros to load.
	MacroDir string `mapstructure:"macro_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDice(d DiceConfig) error {
	switch d.Source {
	case DiceSourceCrypto, DiceSourceSeeded:
		return nil
	}
	return fmt.Errorf("dice.source must be one of [%s, %s], got %q", DiceSourceCrypto, DiceSourceSeeded, d.Source)
}

func validateRules(r RulesConfig) error {
	if strings.TrimSpace(r.Locale) == "" {
		return fmt.Errorf("rules.locale must not be empty")
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment override is given.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: defaults do not unmarshal: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("dice.source", DiceSourceCrypto)
	v.SetDefault("dice.seed", 0)

	v.SetDefault("rules.locale", "pt-BR")
	v.SetDefault("rules.progression_file", "")

	v.SetDefault("scripting.instruction_limit", 0)
	v.SetDefault("scripting.macro_dir", "")
}
