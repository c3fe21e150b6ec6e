// Package execution forwards strategy orders to whatever sits on the other
// side of the engine; matching and fills stay in the external harness.
package execution

import (
	"github.com/rs/zerolog"

	"basketbot-go/internal/market"
	"basketbot-go/internal/metrics"
)

// Sink logs each emitted order and keeps the order counters current. A real
// venue adapter would replace this without touching the strategies.
type Sink struct{ log zerolog.Logger }

// NewSink wraps a zerolog logger for order submissions.
func NewSink(log zerolog.Logger) *Sink { return &Sink{log: log} }

// Submit records one order emission.
func (s *Sink) Submit(order market.Order) error {
	metrics.OrdersTotal.WithLabelValues(order.Symbol, order.Side()).Inc()
	s.log.Info().Str("sym", order.Symbol).Str("side", order.Side()).Int("qty", order.Qty).Int("px", order.Price).Msg("emit order")
	return nil
}
