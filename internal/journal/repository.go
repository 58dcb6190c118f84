package journal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/pricing"
	"trade-journal-go/internal/storage"
	"trade-journal-go/internal/validator"
)

// Repository owns the trade collection. Every accepted trade has been validated and
// has its derived fields recomputed from its prices.
type Repository struct {
	trades *blob[[]models.Trade]
	logger *zap.Logger
	now    func() time.Time
}

// NewRepository creates a repository persisting to the "trades" blob of store.
// A nil clock means time.Now.
func NewRepository(store storage.Store, logger *zap.Logger, clock func() time.Time) *Repository {
	if clock == nil {
		clock = time.Now
	}
	return &Repository{
		trades: newBlob[[]models.Trade](store, storage.KeyTrades),
		logger: logger.Named("repository"),
		now:    clock,
	}
}

// prepare normalises, validates and derives. It is the single entry path for trade data.
func (r *Repository) prepare(t *models.Trade) error {
	normalize(t)
	if err := validator.Validate(t); err != nil {
		return err
	}
	pricing.Enrich(t)
	if t.IsClosed() && t.RRRatio == nil {
		r.logger.Warn("Risk/reward undefined for zero stop-loss distance",
			zap.String("trade_id", t.ID), zap.String("symbol", t.Symbol))
	}
	return nil
}

func normalize(t *models.Trade) {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	t.Timeframe = strings.TrimSpace(t.Timeframe)
	t.Direction = models.Direction(strings.ToUpper(string(t.Direction)))
	t.TradeDate = t.TradeDate.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.Emotions = normalizeTags(t.Emotions)
}

// normalizeTags treats emotions as a set: trimmed, blank and repeated tags dropped.
func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Create validates and stores a new trade, assigning id and timestamps when absent.
func (r *Repository) Create(ctx context.Context, t models.Trade) (models.Trade, error) {
	trade := t.Clone()
	if err := r.prepare(&trade); err != nil {
		return models.Trade{}, err
	}

	now := r.now().UTC()
	if trade.ID == "" {
		trade.ID = newID("trd", now)
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = now
	}
	if trade.UpdatedAt.IsZero() {
		trade.UpdatedAt = now
	}

	_, err := r.trades.update(ctx, func(trades []models.Trade) ([]models.Trade, error) {
		if indexOf(trades, trade.ID) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, trade.ID)
		}
		return append(trades, trade), nil
	})
	if err != nil {
		r.logger.Error("Failed to create trade", zap.String("trade_id", trade.ID), zap.Error(err))
		return models.Trade{}, err
	}

	r.logger.Info("Trade created",
		zap.String("trade_id", trade.ID),
		zap.String("symbol", trade.Symbol),
		zap.String("direction", string(trade.Direction)),
		zap.String("status", string(trade.Status())),
	)
	return trade.Clone(), nil
}

// GetAll returns a snapshot of every trade in insertion order.
func (r *Repository) GetAll(ctx context.Context) ([]models.Trade, error) {
	trades, err := r.trades.get(ctx)
	if err != nil {
		return nil, err
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	r.logger.Debug("Loaded trades", zap.Int("count", len(trades)))
	return trades, nil
}

// GetByID returns the trade with id or a *NotFoundError.
func (r *Repository) GetByID(ctx context.Context, id string) (models.Trade, error) {
	trades, err := r.trades.get(ctx)
	if err != nil {
		return models.Trade{}, err
	}
	i := indexOf(trades, id)
	if i < 0 {
		return models.Trade{}, &NotFoundError{Kind: "trade", ID: id}
	}
	return trades[i], nil
}

// Update merges patch into the trade, re-validates and re-derives it, and bumps UpdatedAt.
// The id and CreatedAt never change.
func (r *Repository) Update(ctx context.Context, id string, patch models.TradePatch) (models.Trade, error) {
	var updated models.Trade
	_, err := r.trades.update(ctx, func(trades []models.Trade) ([]models.Trade, error) {
		i := indexOf(trades, id)
		if i < 0 {
			return nil, &NotFoundError{Kind: "trade", ID: id}
		}

		merged := trades[i].Clone()
		patch.Apply(&merged)
		merged.ID = trades[i].ID
		merged.CreatedAt = trades[i].CreatedAt
		if err := r.prepare(&merged); err != nil {
			return nil, err
		}
		merged.UpdatedAt = r.now().UTC()

		trades[i] = merged
		updated = merged
		return trades, nil
	})
	if err != nil {
		return models.Trade{}, err
	}

	r.logger.Info("Trade updated", zap.String("trade_id", id), zap.String("status", string(updated.Status())))
	return updated.Clone(), nil
}

// Delete removes one trade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.trades.update(ctx, func(trades []models.Trade) ([]models.Trade, error) {
		i := indexOf(trades, id)
		if i < 0 {
			return nil, &NotFoundError{Kind: "trade", ID: id}
		}
		return slices.Delete(trades, i, i+1), nil
	})
	if err != nil {
		return err
	}
	r.logger.Info("Trade deleted", zap.String("trade_id", id))
	return nil
}

// DeleteAll irreversibly removes every trade. Confirmation is the caller's job.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.trades.set(ctx, []models.Trade{}); err != nil {
		r.logger.Error("Failed to delete all trades", zap.Error(err))
		return err
	}
	r.logger.Warn("All trades deleted")
	return nil
}

// Replace swaps the whole collection for trades, preparing each one. Nothing is written
// if any trade is invalid or two trades share an id.
func (r *Repository) Replace(ctx context.Context, trades []models.Trade) error {
	now := r.now().UTC()
	prepared := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		trade := t.Clone()
		if err := r.prepare(&trade); err != nil {
			return fmt.Errorf("trade %q: %w", t.ID, err)
		}
		if trade.ID == "" {
			trade.ID = newID("trd", now)
		}
		if indexOf(prepared, trade.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, trade.ID)
		}
		if trade.CreatedAt.IsZero() {
			trade.CreatedAt = now
		}
		if trade.UpdatedAt.IsZero() {
			trade.UpdatedAt = now
		}
		prepared = append(prepared, trade)
	}

	if err := r.trades.set(ctx, prepared); err != nil {
		return err
	}
	r.logger.Info("Trades replaced", zap.Int("count", len(prepared)))
	return nil
}

func indexOf(trades []models.Trade, id string) int {
	return slices.IndexFunc(trades, func(t models.Trade) bool { return t.ID == id })
}
