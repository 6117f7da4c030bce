package internal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"spreadwatch/config"
	"spreadwatch/internal/domain"
	"spreadwatch/internal/gateway"
	"spreadwatch/internal/metrics"
	"spreadwatch/internal/report"
	"spreadwatch/internal/services/notional"
	"spreadwatch/internal/services/ranker"
	"spreadwatch/internal/services/spread"
)

// Watcher drives the market statistics pipeline: one-time ranking and
// notional reports at startup, then the spread polling loop.
type Watcher struct {
	cfg     config.Config
	gateway gateway.MarketData
	metrics *metrics.Metrics
	logger  *zap.Logger
	out     io.Writer

	tracker  *spread.Tracker
	previous []domain.SpreadObservation
}

// NewWatcher creates a watcher. Reports are written to out.
func NewWatcher(cfg config.Config, gw gateway.MarketData, m *metrics.Metrics, logger *zap.Logger, out io.Writer) *Watcher {
	return &Watcher{
		cfg:     cfg,
		gateway: gw,
		metrics: m,
		logger:  logger,
		out:     out,
	}
}

// Initialize selects the tracked symbol sets, prints the startup reports
// and records the spread baseline. The metrics endpoint must not be served
// before it returns.
func (w *Watcher) Initialize(ctx context.Context) error {
	infos, err := w.gateway.ExchangeInfo(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch exchange info")
	}
	tickers, err := w.gateway.Tickers24h(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch 24h tickers")
	}

	topNotional, err := w.rankAndReport(tickers, infos, w.cfg.NotionalQuoteAsset, false)
	if err != nil {
		return err
	}
	topSpread, err := w.rankAndReport(tickers, infos, w.cfg.SpreadQuoteAsset, true)
	if err != nil {
		return err
	}

	aggregator := notional.NewAggregator(w.gateway)
	entries, err := aggregator.Aggregate(ctx, symbolsOf(topNotional))
	if err != nil {
		return errors.Wrap(err, "failed to aggregate notional values")
	}
	fmt.Fprintf(w.out, "\nNotional value for the top %d %s symbols:\n", w.cfg.TopN, w.cfg.NotionalQuoteAsset)
	report.Notional(w.out, entries)

	tracked := symbolsOf(topSpread)
	w.tracker = spread.NewTracker(w.gateway, tracked)
	baseline, err := w.tracker.Snapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch spread baseline")
	}
	fmt.Fprintf(w.out, "\nThe price spread for each of the top %d %s symbols:\n", w.cfg.TopN, w.cfg.SpreadQuoteAsset)
	report.Spreads(w.out, baseline)
	w.previous = baseline

	w.logger.Info("baseline ready",
		zap.Strings("symbols", tracked),
		zap.String("pairing", string(w.cfg.DeltaPairing)))
	return nil
}

// Run polls spreads until ctx is cancelled, publishing every cycle to the
// metrics sink and to the report writer. The effective period is the fetch
// latency plus the configured interval: the sleep starts once the fetch
// completes. Any gateway or pairing error ends the run.
func (w *Watcher) Run(ctx context.Context) error {
	if w.tracker == nil {
		return errors.New("watcher is not initialized")
	}

	w.logger.Info("starting spread polling loop", zap.Duration("interval", w.cfg.PollInterval))
	for {
		current, err := w.tracker.Snapshot(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to fetch spread observations")
		}

		select {
		case <-ctx.Done():
			w.logger.Info("stopping spread polling loop")
			return nil
		case <-time.After(w.cfg.PollInterval):
		}

		withDeltas, err := spread.Deltas(current, w.previous, w.cfg.DeltaPairing)
		if err != nil {
			return errors.Wrap(err, "failed to compute spread deltas")
		}

		w.metrics.Publish(withDeltas)
		fmt.Fprintf(w.out, "\nThe price spread for each of the top %d %s symbols and delta:\n", w.cfg.TopN, w.cfg.SpreadQuoteAsset)
		report.SpreadDeltas(w.out, withDeltas)

		w.previous = current
	}
}

func (w *Watcher) rankAndReport(tickers []domain.Ticker, infos []domain.SymbolInfo, quoteAsset string, separate bool) ([]domain.RankedSymbol, error) {
	symbols := ranker.QuoteAssetSet(infos, quoteAsset)
	top, err := ranker.TopSymbols(tickers, symbols, w.cfg.TopN, w.cfg.RankField, true)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank %s symbols", quoteAsset)
	}

	if separate {
		fmt.Fprintln(w.out)
	}
	fmt.Fprintf(w.out, "Top %d %s symbols with the highest %s in 24h:\n", w.cfg.TopN, quoteAsset, w.cfg.RankField)
	report.Ranked(w.out, top)
	return top, nil
}

func symbolsOf(rows []domain.RankedSymbol) []string {
	symbols := make([]string, len(rows))
	for i, row := range rows {
		symbols[i] = row.Symbol
	}
	return symbols
}
