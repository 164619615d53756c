// Package http exposes the report catalog over a small JSON API with
// RFC 7807 error responses.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"misoreports/internal/client"
	apperrors "misoreports/internal/errors"
	"misoreports/internal/report"
)

// ReportHandler serves registry lookups, URL resolution and report tables.
type ReportHandler struct {
	client       *client.Client
	logger       *slog.Logger
	errorHandler *apperrors.Handler
	validate     *validator.Validate
}

// NewReportHandler creates the handler.
func NewReportHandler(c *client.Client, logger *slog.Logger, errorHandler *apperrors.Handler) *ReportHandler {
	return &ReportHandler{
		client:       c,
		logger:       logger.With(slog.String("handler", "report")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListReports)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", h.GetReport)
		r.Get("/url", h.ResolveURL)
		r.Get("/table", h.GetTable)
	})
	return r
}

// reportQuery carries the optional query parameters of a resolution or
// fetch. Date uses the ISO calendar-date format.
type reportQuery struct {
	Extension string `validate:"omitempty,alphanum,max=8"`
	Date      string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *ReportHandler) parseQuery(r *http.Request) (*string, *time.Time, error) {
	q := reportQuery{
		Extension: r.URL.Query().Get("extension"),
		Date:      r.URL.Query().Get("date"),
	}
	if err := h.validate.Struct(q); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindUnsupportedExtension, err,
			"invalid query parameters")
	}

	var ext *string
	if q.Extension != "" {
		ext = &q.Extension
	}
	var date *time.Time
	if q.Date != "" {
		parsed, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.KindDateRequired, err,
				"invalid date %q", q.Date)
		}
		date = &parsed
	}
	return ext, date, nil
}

// ListReports handles GET /api/reports.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"reports": report.Names(),
	})
}

// GetReport handles GET /api/reports/{name}.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, err := report.Lookup(name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := map[string]any{
		"name":                 name,
		"type":                 string(rec.Type),
		"supported_extensions": rec.Builder.Supported,
		"default_extension":    rec.Builder.Default,
		"example_url":          rec.ExampleURL,
	}
	if rec.ExampleDate != nil {
		resp["example_date"] = rec.ExampleDate.Format("2006-01-02")
	}
	render.JSON(w, r, resp)
}

// ResolveURL handles GET /api/reports/{name}/url.
func (h *ReportHandler) ResolveURL(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ext, date, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	url, err := h.client.ResolveURL(name, ext, date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"report": name,
		"url":    url,
	})
}

// GetTable handles GET /api/reports/{name}/table. It fetches the report
// from the upstream host and returns the parsed table.
func (h *ReportHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ext, date, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table, err := h.client.GetTable(r.Context(), name, client.FetchOptions{
		Extension: ext,
		Date:      date,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "report table served",
		slog.String("report", name),
		slog.Int("rows", table.NumRows()))
	render.JSON(w, r, map[string]any{
		"report": name,
		"table":  table,
	})
}
