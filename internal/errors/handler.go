package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Problem is an RFC 7807 problem details response body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Render implements render.Renderer.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, p.Status)
	return nil
}

// statusFor maps an error kind to an HTTP status for the API surface.
func statusFor(kind Kind) int {
	switch kind {
	case KindUnknownReport:
		return http.StatusNotFound
	case KindUnsupportedExtension, KindMissingExtension, KindDateRequired:
		return http.StatusBadRequest
	case KindUnimplemented:
		return http.StatusNotImplemented
	case KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Handler renders module errors as RFC 7807 problem responses.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates an error handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError writes err as a problem response, logging server-side faults.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	p := &Problem{
		Type:     "/errors/internal",
		Title:    "Internal error",
		Status:   http.StatusInternalServerError,
		Detail:   err.Error(),
		Instance: r.URL.Path,
	}
	if kind, ok := KindOf(err); ok {
		p.Type = "/errors/" + kind.String()
		p.Title = kind.String()
		p.Status = statusFor(kind)
	}
	if p.Status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	render.Render(w, r, p)
}
