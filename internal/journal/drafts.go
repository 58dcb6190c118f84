package journal

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

const defaultMaxDrafts = 10

// SaveDraft stores a partial trade without validating it. Drafts are kept newest first;
// once the cap is reached the oldest draft is evicted.
func (j *Journal) SaveDraft(ctx context.Context, patch models.TradePatch) (models.Draft, error) {
	limit := j.cfg.MaxDrafts
	if limit <= 0 {
		limit = defaultMaxDrafts
	}

	now := j.now().UTC()
	draft := models.Draft{ID: newID("draft", now), SavedAt: now, Trade: patch}

	var evicted int
	_, err := j.drafts.update(ctx, func(drafts []models.Draft) ([]models.Draft, error) {
		drafts = append([]models.Draft{draft}, drafts...)
		if len(drafts) > limit {
			evicted = len(drafts) - limit
			drafts = drafts[:limit]
		}
		return drafts, nil
	})
	if err != nil {
		return models.Draft{}, err
	}

	j.logger.Info("Draft saved", zap.String("draft_id", draft.ID), zap.Int("evicted", evicted))
	return draft, nil
}

// ListDrafts returns the drafts, newest first.
func (j *Journal) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	drafts, err := j.drafts.get(ctx)
	if err != nil {
		return nil, err
	}
	if drafts == nil {
		drafts = []models.Draft{}
	}
	return drafts, nil
}

// DeleteDraft removes one draft, typically after it has been submitted as a trade.
func (j *Journal) DeleteDraft(ctx context.Context, id string) error {
	_, err := j.drafts.update(ctx, func(drafts []models.Draft) ([]models.Draft, error) {
		i := slices.IndexFunc(drafts, func(d models.Draft) bool { return d.ID == id })
		if i < 0 {
			return nil, &NotFoundError{Kind: "draft", ID: id}
		}
		return slices.Delete(drafts, i, i+1), nil
	})
	if err != nil {
		return err
	}
	j.logger.Info("Draft deleted", zap.String("draft_id", id))
	return nil
}
