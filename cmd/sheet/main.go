// Package main provides a developer tool that validates a character sheet
// file, recomputes its derived values, prints it and optionally rolls checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/config"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/action"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/schema"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/observability"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/scripting"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/system"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and OPSHEET_* environment")
	sheetPath := flag.String("character", "", "path to character YAML file (required)")
	locale := flag.String("locale", "", "label locale override, e.g. en-US or pt-BR")
	strict := flag.Bool("strict", false, "exit non-zero when the sheet has validation errors")
	macroDir := flag.String("macros", "", "directory of Lua macros; overrides scripting.macro_dir")
	var rolls, macros multiFlag
	flag.Var(&rolls, "roll", `action to run, e.g. "rollAttribute agility" or "skill occultism" (repeatable)`)
	flag.Var(&macros, "macro", "name of a Lua macro to run (repeatable)")
	flag.Parse()

	if *sheetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *locale != "" {
		cfg.Rules.Locale = *locale
	}
	if *macroDir != "" {
		cfg.Scripting.MacroDir = *macroDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	sys, err := system.Init(system.OptionsFromConfig(cfg, logger))
	if err != nil {
		logger.Fatal("initializing system", zap.Error(err))
	}
	defer system.Teardown()

	c, err := loadCharacter(*sheetPath, sys)
	if err != nil {
		for _, ve := range schema.Errors(err) {
			logger.Warn("sheet field reset to default",
				zap.String("field", ve.Field),
				zap.String("kind", string(ve.Kind)),
				zap.Any("value", ve.Value),
				zap.String("reason", ve.Reason),
			)
		}
		if len(schema.Errors(err)) == 0 || *strict {
			logger.Fatal("loading character", zap.String("path", *sheetPath), zap.Error(err))
		}
	}
	logger = observability.ForCharacter(logger, c)
	logger.Info("character loaded", zap.String("path", *sheetPath))

	printSheet(os.Stdout, c, sys.Labels())

	if len(rolls) == 0 && len(macros) == 0 {
		return
	}

	roller := dice.NewLoggedRoller(system.DiceSource(cfg.Dice), logger)
	registry := action.DefaultRegistry(sys.NewResolver(roller, logger))

	for _, line := range rolls {
		res, err := registry.Run(c, line)
		if err != nil {
			logger.Fatal("running action", zap.String("action", line), zap.Error(err))
		}
		printRoll(os.Stdout, res, sys.Labels())
	}

	if len(macros) > 0 {
		runner := scripting.NewRunner(registry, roller, cfg.Scripting.InstructionLimit, logger)
		if cfg.Scripting.MacroDir != "" {
			if err := runner.LoadDir(cfg.Scripting.MacroDir); err != nil {
				logger.Fatal("loading macros", zap.String("dir", cfg.Scripting.MacroDir), zap.Error(err))
			}
		}
		for _, name := range macros {
			out, err := runner.RunMacro(context.Background(), c, name)
			for _, res := range out.Rolls {
				printRoll(os.Stdout, res, sys.Labels())
			}
			if err != nil {
				logger.Fatal("running macro", zap.String("macro", name), zap.Error(err))
			}
			if len(out.Returns) > 0 {
				fmt.Fprintf(os.Stdout, "%s => %v\n", name, out.Returns)
			}
		}
	}

	logger.Debug("done", zap.Duration("elapsed", time.Since(start)))
}
