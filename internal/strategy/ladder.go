package strategy

import (
	"math"

	"basketbot-go/internal/market"
	"basketbot-go/internal/risk"
)

const (
	ladderWindow  = 50
	maxLevelSize  = 12
	calmVolCutoff = 0.5
)

// ladderLevels returns the quote depth: calm markets get one extra level.
func ladderLevels(base int, vol float64) int {
	if vol < calmVolCutoff {
		return base + 1
	}
	return base
}

// ladderSize shrinks the per-level size as volatility rises, capped at
// maxLevelSize.
func ladderSize(base int, vol float64) int {
	size := int(math.Round(float64(base) + math.Max(0, 4-vol*50)))
	if size > maxLevelSize {
		size = maxLevelSize
	}
	return size
}

// buildLadder produces the resting quotes for one instrument around mid,
// shifted by skew. Levels step out with volatility. Bids stop as soon as a
// full fill of the ladder would push the position past the long cap, asks
// past the short cap; the running sums keep the pre-fill bound exact.
func buildLadder(symbol string, mid float64, position int, vol, skew float64, levels, size int, limits risk.Limits) []market.Order {
	orders := make([]market.Order, 0, 2*levels)
	bidQty, askQty := 0, 0
	for level := 1; level <= levels; level++ {
		step := float64(level)*0.1*vol + 0.1
		if limits.AllowBid(position, bidQty+size) {
			orders = append(orders, market.Order{
				Symbol: symbol,
				Price:  int(math.Floor(mid - step + skew)),
				Qty:    size,
			})
			bidQty += size
		}
		if limits.AllowAsk(position, askQty+size) {
			orders = append(orders, market.Order{
				Symbol: symbol,
				Price:  int(math.Floor(mid + step + skew)),
				Qty:    -size,
			})
			askQty += size
		}
	}
	return orders
}
