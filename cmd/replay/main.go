package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"basketbot-go/internal/config"
	"basketbot-go/internal/execution"
	"basketbot-go/internal/feed"
	"basketbot-go/internal/journal"
	"basketbot-go/internal/market"
	"basketbot-go/internal/metrics"
	"basketbot-go/internal/strategy"
	"basketbot-go/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "internal/config/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		lg := util.NewLogger("info")
		lg.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	var store *journal.Store
	if cfg.Replay.JournalDSN != "" {
		store, err = journal.Open(cfg.Replay.JournalDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open journal")
		}
		defer store.Close()
		if err := store.StartSession(ctx, runID); err != nil {
			log.Fatal().Err(err).Msg("start session")
		}
		log.Info().Str("run", runID).Str("dsn", cfg.Replay.JournalDSN).Msg("journal up")
	}

	src := feed.New(cfg.Replay.TicksPath, log, feed.WithPace(cfg.Replay.TicksPerSec))
	ticks := make(chan market.Tick, 256)
	feedErr := make(chan error, 1)
	go func() { feedErr <- src.Run(ctx, ticks) }()

	maker := strategy.NewBasketMaker(strategy.Params{
		Symbols:      cfg.Engine.Symbols,
		MaxPosition:  cfg.Engine.MaxPosition,
		ProfitTarget: cfg.Engine.ProfitTarget,
		LadderLevels: cfg.Engine.LadderLevels,
		BaseSize:     cfg.Engine.BaseSize,
		ArbSize:      cfg.Engine.ArbSize,
		EntryZ:       cfg.Engine.EntryZ,
		ExitZ:        cfg.Engine.ExitZ,
	}, log)
	sink := execution.NewSink(log)

	counts := make(map[string]map[string]int) // symbol -> side -> orders
	log.Info().Str("strategy", maker.Name()).Str("run", runID).Msg("replay started")

	for tick := range ticks {
		result := maker.OnTick(tick)

		var emitted []market.Order
		for _, sym := range cfg.Engine.Symbols {
			for _, order := range result[sym] {
				_ = sink.Submit(order)
				if counts[order.Symbol] == nil {
					counts[order.Symbol] = make(map[string]int)
				}
				counts[order.Symbol][order.Side()]++
				emitted = append(emitted, order)
			}
		}

		metrics.PnLTotal.Set(maker.PnL())
		if maker.Halted() {
			metrics.EngineHalted.Set(1)
		}

		if store != nil {
			if err := store.RecordOrders(ctx, runID, tick.Timestamp, emitted); err != nil {
				log.Error().Err(err).Msg("journal orders")
			}
			if err := store.RecordMark(ctx, runID, tick.Timestamp, maker.PnL(), maker.Halted()); err != nil {
				log.Error().Err(err).Msg("journal mark")
			}
		}
	}

	if err := <-feedErr; err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("feed stopped")
	}

	printSummary(counts, maker.PnL(), maker.Halted())
	log.Info().Str("run", runID).Float64("pnl", maker.PnL()).Bool("halted", maker.Halted()).Msg("replay done")
}

func printSummary(counts map[string]map[string]int, pnl float64, halted bool) {
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Symbol", "Buys", "Sells")
	for _, sym := range symbols {
		table.Append(sym,
			strconv.Itoa(counts[sym]["BUY"]),
			strconv.Itoa(counts[sym]["SELL"]))
	}
	table.Footer("PnL "+strconv.FormatFloat(pnl, 'f', 2, 64), "halted", strconv.FormatBool(halted))
	table.Render()
}
