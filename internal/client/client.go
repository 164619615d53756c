// Package client implements the retrieval orchestrator: it resolves a
// report name to a URL through the registry, fetches the payload over HTTP
// and applies the registered parser.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "misoreports/internal/errors"
	"misoreports/internal/parsers"
	"misoreports/internal/report"
	"misoreports/pkg/tables"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "misoreports"
)

// Client fetches and parses MISO reports. It holds no mutable state beyond
// the shared HTTP client, so one instance serves concurrent callers.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	tracer     trace.Tracer

	fetchesTotal  metric.Int64Counter
	fetchErrors   metric.Int64Counter
	fetchDuration metric.Float64Histogram
	parsesTotal   metric.Int64Counter
	parseErrors   metric.Int64Counter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, usually to install a
// test transport or a custom timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent sets the User-Agent header sent on report downloads.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a Client. Metric instrument creation never fails with the
// global meter, so New returns no error.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     slog.Default(),
		tracer:     otel.Tracer("misoreports/client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	meter := otel.Meter("misoreports/client")
	c.fetchesTotal, _ = meter.Int64Counter("miso_report_fetches_total",
		metric.WithDescription("Report fetch attempts"))
	c.fetchErrors, _ = meter.Int64Counter("miso_report_fetch_errors_total",
		metric.WithDescription("Report fetches that failed"))
	c.fetchDuration, _ = meter.Float64Histogram("miso_report_fetch_duration_seconds",
		metric.WithDescription("Report fetch latency"),
		metric.WithUnit("s"))
	c.parsesTotal, _ = meter.Int64Counter("miso_report_parses_total",
		metric.WithDescription("Report parse attempts"))
	c.parseErrors, _ = meter.Int64Counter("miso_report_parse_errors_total",
		metric.WithDescription("Report parses that failed"))
	return c
}

// FetchOptions carries the optional inputs of one retrieval. URLOverride
// bypasses the registry builder entirely; Extension and Date feed it.
type FetchOptions struct {
	Extension   *string
	Date        *time.Time
	URLOverride string
}

// ResolveURL maps a report name plus optional extension and date to the
// concrete download URL without touching the network.
func (c *Client) ResolveURL(name string, ext *string, date *time.Time) (string, error) {
	rec, err := report.Lookup(name)
	if err != nil {
		return "", err
	}
	url, err := rec.Builder.BuildURL(ext, date)
	if err != nil {
		return "", err
	}
	return url, nil
}

// StepDate moves date by direction publication cycles of the named report.
func (c *Client) StepDate(name string, date *time.Time, direction int) (*time.Time, error) {
	rec, err := report.Lookup(name)
	if err != nil {
		return nil, err
	}
	return rec.Builder.StepDate(date, direction)
}

// Fetch resolves and downloads one report. All configuration errors surface
// before any request is made; a non-2xx response fails the whole call.
func (c *Client) Fetch(ctx context.Context, name string, opts FetchOptions) (*parsers.RawReport, error) {
	ctx, span := c.tracer.Start(ctx, "client.Fetch",
		trace.WithAttributes(attribute.String("report.name", name)))
	defer span.End()

	url := opts.URLOverride
	if url == "" {
		resolved, err := c.ResolveURL(name, opts.Extension, opts.Date)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		url = resolved
	}
	span.SetAttributes(attribute.String("report.url", url))

	attrs := metric.WithAttributes(attribute.String("report", name))
	c.fetchesTotal.Add(ctx, 1, attrs)
	start := time.Now()

	raw, err := c.download(ctx, url)
	c.fetchDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		c.fetchErrors.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, err.Error())
		c.logger.ErrorContext(ctx, "report fetch failed",
			slog.String("report", name),
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, err
	}

	c.logger.DebugContext(ctx, "report fetched",
		slog.String("report", name),
		slog.String("url", url),
		slog.Int("bytes", len(raw.Body)),
		slog.Duration("duration", time.Since(start)))
	return raw, nil
}

func (c *Client) download(ctx context.Context, url string) (*parsers.RawReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, err, "cannot build request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, err, "GET %s failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.New(apperrors.KindTransport,
			"GET %s returned %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, err, "reading body of %s", url)
	}
	return &parsers.RawReport{Body: body, URL: url, Status: resp.StatusCode}, nil
}

// GetTable fetches one report and applies its registered parser. An
// unimplemented parser returns the distinguished unimplemented error that
// sweep callers are expected to skip.
func (c *Client) GetTable(ctx context.Context, name string, opts FetchOptions) (*tables.Table, error) {
	ctx, span := c.tracer.Start(ctx, "client.GetTable",
		trace.WithAttributes(attribute.String("report.name", name)))
	defer span.End()

	rec, err := report.Lookup(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	raw, err := c.Fetch(ctx, name, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	attrs := metric.WithAttributes(attribute.String("report", name))
	c.parsesTotal.Add(ctx, 1, attrs)
	table, err := rec.Parse(raw)
	if err != nil {
		c.parseErrors.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, err.Error())
		if rerr, ok := err.(*apperrors.ReportError); ok {
			return nil, rerr.ForReport(name)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	span.SetAttributes(attribute.Int("table.rows", table.NumRows()))
	return table, nil
}
