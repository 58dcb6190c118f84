package journal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

// defaultSettings derives the initial settings from the journal configuration.
func (j *Journal) defaultSettings() models.Settings {
	return models.Settings{
		Currency:        "USD",
		StartingBalance: j.cfg.StartingBalance,
		DefaultLotSize:  0.01,
		RiskPercent:     1,
		PageSize:        j.cfg.PageSize,
	}
}

// GetSettings returns the saved settings, or the configured defaults if none were saved.
func (j *Journal) GetSettings(ctx context.Context) (models.Settings, error) {
	saved, err := j.settings.get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if saved == nil {
		return j.defaultSettings(), nil
	}
	return *saved, nil
}

// SaveSettings validates and stores s.
func (j *Journal) SaveSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if err := j.validateSettings(s); err != nil {
		return models.Settings{}, err
	}
	if err := j.settings.set(ctx, &s); err != nil {
		return models.Settings{}, err
	}
	j.logger.Info("Settings saved",
		zap.String("currency", s.Currency),
		zap.Float64("starting_balance", s.StartingBalance),
		zap.Int("page_size", s.PageSize),
	)
	return s, nil
}

func (j *Journal) validateSettings(s models.Settings) error {
	switch {
	case s.Currency == "":
		return fmt.Errorf("%w: currency is required", ErrInvalidSettings)
	case s.StartingBalance < 0:
		return fmt.Errorf("%w: starting balance must not be negative", ErrInvalidSettings)
	case s.DefaultLotSize <= 0:
		return fmt.Errorf("%w: default lot size must be positive", ErrInvalidSettings)
	case s.RiskPercent <= 0 || (j.cfg.MaxRiskPercent > 0 && s.RiskPercent > j.cfg.MaxRiskPercent):
		return fmt.Errorf("%w: risk percent must be in (0, %.0f]", ErrInvalidSettings, j.cfg.MaxRiskPercent)
	case s.PageSize <= 0:
		return fmt.Errorf("%w: page size must be positive", ErrInvalidSettings)
	}
	return nil
}
