package journal

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

// SaveTemplate stores a reusable set of trade parameters. Templates are not validated
// as trades; the prices are starting values for a new entry. A template without a lot
// size gets the default lot size from the settings.
func (j *Journal) SaveTemplate(ctx context.Context, tpl models.Template) (models.Template, error) {
	if tpl.LotSize == 0 {
		settings, err := j.GetSettings(ctx)
		if err != nil {
			return models.Template{}, err
		}
		tpl.LotSize = settings.DefaultLotSize
	}

	now := j.now().UTC()
	tpl.ID = newID("tpl", now)
	tpl.SavedAt = now
	tpl.Name = strings.TrimSpace(tpl.Name)
	tpl.Symbol = strings.ToUpper(strings.TrimSpace(tpl.Symbol))
	tpl.Direction = models.Direction(strings.ToUpper(string(tpl.Direction)))

	_, err := j.templates.update(ctx, func(templates []models.Template) ([]models.Template, error) {
		return append(templates, tpl), nil
	})
	if err != nil {
		return models.Template{}, err
	}

	j.logger.Info("Template saved", zap.String("template_id", tpl.ID), zap.String("symbol", tpl.Symbol))
	return tpl, nil
}

// ListTemplates returns the templates in the order they were saved.
func (j *Journal) ListTemplates(ctx context.Context) ([]models.Template, error) {
	templates, err := j.templates.get(ctx)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []models.Template{}
	}
	return templates, nil
}

// DeleteTemplate removes one template.
func (j *Journal) DeleteTemplate(ctx context.Context, id string) error {
	_, err := j.templates.update(ctx, func(templates []models.Template) ([]models.Template, error) {
		i := slices.IndexFunc(templates, func(t models.Template) bool { return t.ID == id })
		if i < 0 {
			return nil, &NotFoundError{Kind: "template", ID: id}
		}
		return slices.Delete(templates, i, i+1), nil
	})
	if err != nil {
		return err
	}
	j.logger.Info("Template deleted", zap.String("template_id", id))
	return nil
}
