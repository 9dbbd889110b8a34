package system

import (
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/config"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
)

// DiceSource returns the randomness source selected by cfg.
//
// Precondition: cfg has passed config validation.
func DiceSource(cfg config.DiceConfig) dice.Source {
	if cfg.Source == config.DiceSourceSeeded {
		return dice.NewSeededSource(cfg.Seed)
	}
	return dice.NewCryptoSource()
}
