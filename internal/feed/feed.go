// Package feed replays recorded market ticks into the engine, standing in
// for the live matcher's serial tick delivery.
package feed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"basketbot-go/internal/market"
	"basketbot-go/internal/metrics"
)

// Feed streams ticks from a JSONL recording, one tick per line, in file
// order.
type Feed struct {
	path    string
	log     zerolog.Logger
	limiter *rate.Limiter
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithPace throttles replay to ticksPerSec; zero or negative leaves the
// replay unpaced.
func WithPace(ticksPerSec float64) Option {
	return func(f *Feed) {
		if ticksPerSec > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(ticksPerSec), 1)
		}
	}
}

// New builds a feed reading from path.
func New(path string, log zerolog.Logger, opts ...Option) *Feed {
	f := &Feed{path: path, log: log}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run decodes ticks and pushes them into out until EOF or context
// cancellation. The channel is closed on return so the consumer can range
// over it. Blank lines are skipped; a malformed line aborts the replay.
func (f *Feed) Run(ctx context.Context, out chan<- market.Tick) error {
	defer close(out)

	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open ticks: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var n int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var tick market.Tick
		if err := json.Unmarshal(line, &tick); err != nil {
			return fmt.Errorf("decode tick %d: %w", n+1, err)
		}
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		for sym := range tick.Books {
			metrics.TicksTotal.WithLabelValues(sym).Inc()
		}
		select {
		case out <- tick:
			n++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ticks: %w", err)
	}
	f.log.Info().Int("ticks", n).Str("path", f.path).Msg("replay finished")
	return nil
}
