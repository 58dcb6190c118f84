// Package journal is the trade journal core: the trade repository plus the user profile,
// settings, drafts, templates and export state that live beside it.
package journal

import (
	"context"
	"time"

	"go.uber.org/zap"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/filter"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/pricing"
	"trade-journal-go/internal/stats"
	"trade-journal-go/internal/storage"
)

// Journal is the single entry point consumed by the HTTP API and the CLI.
type Journal struct {
	trades    *Repository
	user      *blob[*models.UserProfile]
	settings  *blob[*models.Settings]
	drafts    *blob[[]models.Draft]
	templates *blob[[]models.Template]

	cfg    config.Journal
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// New creates a Journal persisting to store.
func New(store storage.Store, cfg config.Journal, logger *zap.Logger, opts ...Option) *Journal {
	j := &Journal{
		user:      newBlob[*models.UserProfile](store, storage.KeyUser),
		settings:  newBlob[*models.Settings](store, storage.KeySettings),
		drafts:    newBlob[[]models.Draft](store, storage.KeyDrafts),
		templates: newBlob[[]models.Template](store, storage.KeyTemplates),
		cfg:       cfg,
		logger:    logger.Named("journal"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.trades = NewRepository(store, logger, j.now)
	return j
}

// Trades exposes the underlying repository.
func (j *Journal) Trades() *Repository { return j.trades }

// SubmitTrade validates, derives and stores a new trade.
func (j *Journal) SubmitTrade(ctx context.Context, t models.Trade) (models.Trade, error) {
	return j.trades.Create(ctx, t)
}

// EditTrade merges patch into an existing trade.
func (j *Journal) EditTrade(ctx context.Context, id string, patch models.TradePatch) (models.Trade, error) {
	return j.trades.Update(ctx, id, patch)
}

// CloseTrade records the exit price of a trade and recomputes its derived values.
func (j *Journal) CloseTrade(ctx context.Context, id string, exitPrice float64) (models.Trade, error) {
	return j.trades.Update(ctx, id, models.TradePatch{ExitPrice: &exitPrice})
}

// GetTrade returns one trade.
func (j *Journal) GetTrade(ctx context.Context, id string) (models.Trade, error) {
	return j.trades.GetByID(ctx, id)
}

// DeleteTrade removes one trade.
func (j *Journal) DeleteTrade(ctx context.Context, id string) error {
	return j.trades.Delete(ctx, id)
}

// DeleteAllTrades removes every trade. Drafts, templates and settings are kept.
func (j *Journal) DeleteAllTrades(ctx context.Context) error {
	return j.trades.DeleteAll(ctx)
}

// ListTrades filters, sorts and pages the trade history. A non-positive pageSize
// falls back to the page size in the saved settings.
func (j *Journal) ListTrades(ctx context.Context, spec filter.Spec, page, pageSize int) (filter.Page[models.Trade], error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return filter.Page[models.Trade]{}, err
	}
	if pageSize <= 0 {
		settings, err := j.GetSettings(ctx)
		if err != nil {
			return filter.Page[models.Trade]{}, err
		}
		pageSize = settings.PageSize
	}
	return filter.Paginate(filter.Apply(trades, spec, j.now()), pageSize, page), nil
}

// Statistics summarises the trades matching spec.
func (j *Journal) Statistics(ctx context.Context, spec filter.Spec) (stats.Summary, error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	now := j.now()
	return stats.Compute(filter.Apply(trades, spec, now), now), nil
}

// EquityCurve replays closed trades on top of the configured starting balance.
func (j *Journal) EquityCurve(ctx context.Context) ([]stats.EquityPoint, error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := j.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return stats.EquityCurve(trades, settings.StartingBalance), nil
}

// MonthlySeries returns the per-month profit series, optionally for one timeframe.
func (j *Journal) MonthlySeries(ctx context.Context, timeframe string) ([]stats.MonthBucket, error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Monthly(trades, timeframe), nil
}

// RecentTrades returns the n trades with the latest trade dates.
func (j *Journal) RecentTrades(ctx context.Context, n int) ([]models.Trade, error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Recent(trades, n), nil
}

// Symbols lists the distinct traded symbols.
func (j *Journal) Symbols(ctx context.Context) ([]string, error) {
	trades, err := j.trades.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.UniqueSymbols(trades), nil
}

// PositionSize sizes a position under the configured risk ceiling. A zero balance or
// risk percent is taken from the saved settings.
func (j *Journal) PositionSize(ctx context.Context, in pricing.SizingInput) (pricing.PositionSizing, error) {
	if in.Balance == 0 || in.RiskPercent == 0 {
		settings, err := j.GetSettings(ctx)
		if err != nil {
			return pricing.PositionSizing{}, err
		}
		if in.Balance == 0 {
			in.Balance = settings.StartingBalance
		}
		if in.RiskPercent == 0 {
			in.RiskPercent = settings.RiskPercent
		}
	}
	if in.MaxRiskPercent <= 0 {
		in.MaxRiskPercent = j.cfg.MaxRiskPercent
	}
	return pricing.PositionSize(in)
}
