// Package strategy contains the decision engines that turn market ticks
// into priced, sized orders.
package strategy

import (
	"strings"

	"github.com/rs/zerolog"

	"basketbot-go/internal/market"
)

// Strategy defines behaviour shared by strategy implementations: one call
// per tick, returning every order for that tick keyed by instrument. Ticks
// must be delivered serially from a single goroutine.
type Strategy interface {
	OnTick(t market.Tick) map[string][]market.Order
	Name() string
}

// Params expresses tunable knobs required by strategy constructors. Zero
// values fall back to the defaults applied in the constructors.
type Params struct {
	Symbols      []string
	MaxPosition  int
	ProfitTarget float64
	LadderLevels int
	BaseSize     int
	ArbSize      int
	EntryZ       float64
	ExitZ        float64
}

// Build returns a strategy implementation matching the configured mode.
// Single-instrument indicator variants plug in here behind the same
// interface; the basket engine is the default and currently only mode.
func Build(mode string, params Params, log zerolog.Logger) Strategy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "basket", "ladder_arb":
		return NewBasketMaker(params, log)
	default:
		return NewBasketMaker(params, log)
	}
}
