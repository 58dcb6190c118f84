package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"trade-journal-go/internal/filter"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

const usage = `Usage: journal [--config DIR] <command> [flags]

Commands:
  seed          load the demo trades
  list          print one page of trades (--symbol --direction --timeframe --result --date --sort --page --page-size)
  stats         print summary statistics (same filters as list)
  settings      print the settings, or change them (--currency --starting-balance --default-lot --risk-percent --page-size)
  export-csv    write all trades as CSV (--out FILE, default stdout)
  export-json   write a full JSON snapshot (--out FILE, default stdout)
  import FILE   restore a JSON snapshot
  clear --yes   delete every trade
`

var errUsage = errors.New("invalid usage")

// runCommand executes one CLI command against j, writing its output to out.
func runCommand(ctx context.Context, j *journal.Journal, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}
	name, rest := args[0], args[1:]
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)

	switch name {
	case "seed":
		if err := fs.Parse(rest); err != nil {
			return err
		}
		trades, err := j.LoadSampleTrades(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Loaded %d sample trades\n", len(trades))
		return nil

	case "list":
		spec := specFlags(fs)
		page := fs.Int("page", 1, "page number, starting at 1")
		pageSize := fs.Int("page-size", 0, "trades per page (default from config)")
		sortBy := fs.String("sort", "", `sort order, e.g. "date-desc" or "profit asc"`)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		s, err := spec(*sortBy)
		if err != nil {
			return err
		}
		result, err := j.ListTrades(ctx, s, *page, *pageSize)
		if err != nil {
			return err
		}
		settings, err := j.GetSettings(ctx)
		if err != nil {
			return err
		}
		printTrades(out, result.Items, settings.Currency)
		fmt.Fprintf(out, "Page %d of %d (%d trades)\n", result.Page, result.TotalPages, result.TotalItems)
		return nil

	case "stats":
		spec := specFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		s, err := spec("")
		if err != nil {
			return err
		}
		summary, err := j.Statistics(ctx, s)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)

	case "settings":
		current, err := j.GetSettings(ctx)
		if err != nil {
			return err
		}
		currency := fs.String("currency", current.Currency, "account currency")
		balance := fs.Float64("starting-balance", current.StartingBalance, "balance the equity curve starts from")
		lot := fs.Float64("default-lot", current.DefaultLotSize, "lot size for templates saved without one")
		risk := fs.Float64("risk-percent", current.RiskPercent, "risk per trade used by the position-size calculator")
		pageSize := fs.Int("page-size", current.PageSize, "trades per page")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NFlag() > 0 {
			current, err = j.SaveSettings(ctx, models.Settings{
				Currency:        *currency,
				StartingBalance: *balance,
				DefaultLotSize:  *lot,
				RiskPercent:     *risk,
				PageSize:        *pageSize,
			})
			if err != nil {
				return err
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(current)

	case "export-csv":
		path := fs.String("out", "", "output file (default stdout)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		csv, err := j.ExportCSV(ctx)
		if err != nil {
			return err
		}
		return writeOutput(out, *path, []byte(csv))

	case "export-json":
		path := fs.String("out", "", "output file (default stdout)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		data, err := j.ExportJSON(ctx)
		if err != nil {
			return err
		}
		return writeOutput(out, *path, append(data, '\n'))

	case "import":
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: import takes exactly one file", errUsage)
		}
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if err := j.ImportJSON(ctx, data); err != nil {
			return err
		}
		fmt.Fprintln(out, "Snapshot imported")
		return nil

	case "clear":
		yes := fs.Bool("yes", false, "confirm deleting every trade")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if !*yes {
			return fmt.Errorf("%w: clear deletes every trade, pass --yes to confirm", errUsage)
		}
		if err := j.DeleteAllTrades(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All trades deleted")
		return nil

	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

// specFlags registers the filter flags on fs and returns a builder for the parsed spec.
func specFlags(fs *pflag.FlagSet) func(sort string) (filter.Spec, error) {
	symbol := fs.String("symbol", "", "only this symbol")
	direction := fs.String("direction", "", "BUY or SELL")
	timeframe := fs.String("timeframe", "", "only this timeframe")
	result := fs.String("result", "", "WIN, LOSS or OPEN")
	date := fs.String("date", "", "today, week, month or last3months")

	return func(sort string) (filter.Spec, error) {
		return filter.NewSpec(filter.Params{
			Symbol:    *symbol,
			Direction: *direction,
			Timeframe: *timeframe,
			Result:    *result,
			Date:      *date,
			Sort:      sort,
		})
	}
}

func printTrades(out io.Writer, trades []models.Trade, currency string) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tDATE\tSYMBOL\tTF\tSIDE\tLOTS\tENTRY\tEXIT\tP&L (%s)\tSTATUS\n", currency)
	for _, t := range trades {
		exit, pnl := "-", "-"
		if t.IsClosed() {
			exit = fmt.Sprintf("%g", t.ExitPrice)
			pnl = fmt.Sprintf("%.2f", t.ProfitLoss)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%g\t%g\t%s\t%s\t%s\n",
			t.ID, t.TradeDate.Format("2006-01-02 15:04"), t.Symbol, t.Timeframe, t.Direction,
			t.LotSize, t.EntryPrice, exit, pnl, t.Status())
	}
	tw.Flush()
}

func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
