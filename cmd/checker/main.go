// Command checker sweeps the report registry: it downloads each report's
// documented example URL, applies the registered parser and prints a column
// summary. Reports with unimplemented parsers are listed and skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"misoreports/internal/client"
	"misoreports/internal/config"
	apperrors "misoreports/internal/errors"
	"misoreports/internal/infrastructure"
	"misoreports/internal/report"
	"misoreports/pkg/tables"
)

func main() {
	all := flag.Bool("all", false, "check every registered report")
	names := flag.String("reports", "", "comma-separated report names to check")
	output := flag.String("output", "", "directory to write the result file into")
	top := flag.Int("top", 3, "rows to show from the top of each table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var selected []string
	switch {
	case *all:
		selected = report.Names()
	case *names != "":
		for _, name := range strings.Split(*names, ",") {
			name = strings.TrimSpace(name)
			if _, err := report.Lookup(name); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			selected = append(selected, name)
		}
	default:
		fmt.Fprintln(os.Stderr, "error: provide either -all or -reports")
		os.Exit(1)
	}

	c := client.New(
		client.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
		client.WithUserAgent(cfg.Client.UserAgent),
		client.WithLogger(logger),
	)

	ctx := infrastructure.EnsureTraceID(context.Background())
	results := sweep(ctx, c, cfg.Checker, selected, *top)

	var out strings.Builder
	for _, name := range selected {
		out.WriteString(results[name])
		fmt.Print(results[name])
	}

	if *output != "" {
		path := filepath.Join(*output,
			fmt.Sprintf("checker_output_%s.txt", time.Now().Format("20060102_150405")))
		if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("output written to %s\n", path)
	}
}

// sweep fetches and summarizes the selected reports concurrently, throttled
// so the report hosts do not ban the sweep.
func sweep(ctx context.Context, c *client.Client, cfg config.CheckerConfig, names []string, top int) map[string]string {
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), 1)

	var mu sync.Mutex
	results := make(map[string]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			summary := checkOne(ctx, c, name, top)
			mu.Lock()
			results[name] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("sweep aborted", slog.String("error", err.Error()))
	}
	return results
}

func checkOne(ctx context.Context, c *client.Client, name string, top int) string {
	rec, err := report.Lookup(name)
	if err != nil {
		return fmt.Sprintf("\nreport %q: %v\n", name, err)
	}

	table, err := c.GetTable(ctx, name, client.FetchOptions{URLOverride: rec.ExampleURL})
	if err != nil {
		if apperrors.IsUnimplemented(err) {
			return fmt.Sprintf("\nreport %q is not implemented: %v\n", name, err)
		}
		infrastructure.LoggerFromContext(ctx).Warn("report check failed",
			slog.String("report", name),
			slog.String("error", err.Error()))
		return fmt.Sprintf("\nreport %q failed: %v\n", name, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nReport: %s\nURL: %s\n", name, rec.ExampleURL)
	summarizeTable(&b, table, top)
	return b.String()
}

// summarizeTable prints the column schema and the first rows, descending
// into multi-table containers.
func summarizeTable(b *strings.Builder, t *tables.Table, top int) {
	if subs := t.SubTables(); subs != nil {
		for _, sub := range subs {
			fmt.Fprintf(b, "\n[%s]\n", sub.Name)
			summarizeTable(b, sub.Table, top)
		}
		return
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s(%s)", c.Name, c.Type)
	}
	fmt.Fprintf(b, "columns: %s\nrows: %d\n", strings.Join(cols, ", "), t.NumRows())

	n := min(top, t.NumRows())
	for _, row := range t.Rows[:n] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = tables.CellString(cell)
		}
		fmt.Fprintf(b, "  %s\n", strings.Join(cells, " | "))
	}
}
