package strategy

import (
	"math"

	"basketbot-go/internal/market"
	"basketbot-go/internal/stats"
)

// netFlow signs each trade against the current mid: prints above mid count
// as buying pressure, below mid as selling pressure, at mid as noise.
func netFlow(trades []market.Trade, mid float64) float64 {
	var net float64
	for _, tr := range trades {
		switch {
		case tr.Price > mid:
			net += float64(tr.Qty)
		case tr.Price < mid:
			net -= float64(tr.Qty)
		}
	}
	return net
}

// flowRatio condenses the recent signed flow window into roughly [-1, 1]:
// net flow over gross flow.
func flowRatio(flows []float64) float64 {
	var net, gross float64
	for _, f := range flows {
		net += f
		gross += math.Abs(f)
	}
	return net / (gross + stats.Epsilon)
}

// trendStrength measures drift across the window in units of volatility per
// tick: (newest - oldest) / (window * vol).
func trendStrength(window []float64, vol float64) float64 {
	if len(window) == 0 {
		return 0
	}
	move := window[len(window)-1] - window[0]
	return move / (float64(len(window))*vol + stats.Epsilon)
}

// quoteSkew fuses mean reversion, flow pressure, and trend into one price
// bias applied to every ladder level, clamped to +/-3 ticks. Positive skew
// shifts the whole ladder up (net buy pressure).
func quoteSkew(z, flow, trend float64) float64 {
	return stats.Clamp(-0.3*z+1.5*flow+3*trend, -3, 3)
}
