package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

// ExportVersion tags every JSON snapshot. ImportJSON refuses any other version.
const ExportVersion = "1.0"

const csvDateLayout = "2006-01-02 15:04"

var csvHeader = []string{
	"ID", "Date", "Symbol", "Timeframe", "Direction", "LotSize", "EntryPrice", "StopLoss", "TakeProfit",
	"ExitPrice", "ProfitLoss", "RRRatio", "PipsSL", "PipsTP", "Emotions", "Notes", "Screenshot", "Status",
}

// Snapshot is the complete journal state as written by ExportJSON.
type Snapshot struct {
	Version    string              `json:"version"`
	ExportedAt time.Time           `json:"exportedAt"`
	User       *models.UserProfile `json:"user,omitempty"`
	Settings   models.Settings     `json:"settings"`
	Trades     []models.Trade      `json:"trades"`
	Drafts     []models.Draft      `json:"drafts"`
	Templates  []models.Template   `json:"templates"`
}

// ToCSV renders trades as CSV, one row per trade in the given order. Values derived from
// the exit price are blank for open trades. Notes are always quoted.
func ToCSV(trades []models.Trade) string {
	var sb strings.Builder

	sb.WriteString(strings.Join(csvHeader, ","))
	sb.WriteString("\n")

	for i := range trades {
		t := &trades[i]
		var exit, profit, rr, slPips, tpPips string
		if t.IsClosed() {
			exit = formatFloat(t.ExitPrice)
			profit = strconv.FormatFloat(t.ProfitLoss, 'f', 2, 64)
			if t.RRRatio != nil {
				rr = strconv.FormatFloat(*t.RRRatio, 'f', 2, 64)
			}
			slPips = formatFloat(t.SLPips)
			tpPips = formatFloat(t.TPPips)
		}

		row := []string{
			csvField(t.ID),
			t.TradeDate.Format(csvDateLayout),
			csvField(t.Symbol),
			csvField(t.Timeframe),
			string(t.Direction),
			formatFloat(t.LotSize),
			formatFloat(t.EntryPrice),
			formatFloat(t.StopLoss),
			formatFloat(t.TakeProfit),
			exit,
			profit,
			rr,
			slPips,
			tpPips,
			csvField(strings.Join(t.Emotions, ";")),
			quote(t.Notes),
			csvField(t.Screenshot),
			string(t.Status()),
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}

// ExportCSV renders every trade, newest trade date first.
func (j *Journal) ExportCSV(ctx context.Context) (string, error) {
	trades, err := j.RecentTrades(ctx, -1)
	if err != nil {
		return "", err
	}
	j.logger.Info("Exported trades as CSV", zap.Int("count", len(trades)))
	return ToCSV(trades), nil
}

// ExportJSON serialises the whole journal state with a version tag and export time.
func (j *Journal) ExportJSON(ctx context.Context) ([]byte, error) {
	snap := Snapshot{Version: ExportVersion, ExportedAt: j.now().UTC()}

	var err error
	if snap.Trades, err = j.trades.GetAll(ctx); err != nil {
		return nil, err
	}
	if snap.Drafts, err = j.ListDrafts(ctx); err != nil {
		return nil, err
	}
	if snap.Templates, err = j.ListTemplates(ctx); err != nil {
		return nil, err
	}
	if snap.Settings, err = j.GetSettings(ctx); err != nil {
		return nil, err
	}
	if user, ok, err := j.GetUser(ctx); err != nil {
		return nil, err
	} else if ok {
		snap.User = &user
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	j.logger.Info("Exported journal as JSON", zap.Int("trades", len(snap.Trades)))
	return data, nil
}

// ImportJSON restores trades, drafts, templates and settings from a snapshot written by
// ExportJSON. Every trade is validated and re-derived; nothing is written if the snapshot
// is malformed, of another version, or holds an invalid trade or invalid settings.
// The logged-in user is left as is.
func (j *Journal) ImportJSON(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedImport, err)
	}
	if snap.Version != ExportVersion {
		return fmt.Errorf("%w: got %q, want %q", ErrUnsupportedImport, snap.Version, ExportVersion)
	}
	if err := j.validateSettings(snap.Settings); err != nil {
		return err
	}

	if err := j.trades.Replace(ctx, snap.Trades); err != nil {
		return err
	}
	if snap.Drafts == nil {
		snap.Drafts = []models.Draft{}
	}
	if err := j.drafts.set(ctx, snap.Drafts); err != nil {
		return err
	}
	if snap.Templates == nil {
		snap.Templates = []models.Template{}
	}
	if err := j.templates.set(ctx, snap.Templates); err != nil {
		return err
	}
	if err := j.settings.set(ctx, &snap.Settings); err != nil {
		return err
	}

	j.logger.Info("Imported journal",
		zap.Int("trades", len(snap.Trades)),
		zap.Int("drafts", len(snap.Drafts)),
		zap.Int("templates", len(snap.Templates)),
	)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// csvField quotes s only when it contains a separator, quote or line break.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
