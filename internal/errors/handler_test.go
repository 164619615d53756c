package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleErr(t *testing.T, err error) (*httptest.ResponseRecorder, Problem) {
	t.Helper()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/getfuelmix/table", nil)

	h.HandleError(rec, req, err)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return rec, p
}

func TestHandleErrorUnknownReport(t *testing.T) {
	rec, p := handleErr(t, New(KindUnknownReport, "no report named %q", "bogus"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/errors/unknown_report", p.Type)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Contains(t, p.Detail, "bogus")
	assert.Equal(t, "/api/reports/getfuelmix/table", p.Instance)
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindUnsupportedExtension, http.StatusBadRequest},
		{KindMissingExtension, http.StatusBadRequest},
		{KindDateRequired, http.StatusBadRequest},
		{KindUnimplemented, http.StatusNotImplemented},
		{KindTransport, http.StatusBadGateway},
		{KindNoIncrement, http.StatusInternalServerError},
		{KindParseShape, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec, p := handleErr(t, New(tt.kind, "boom"))
		assert.Equal(t, tt.want, rec.Code, tt.kind.String())
		assert.Equal(t, "/errors/"+tt.kind.String(), p.Type, tt.kind.String())
	}
}

func TestHandleErrorPlainError(t *testing.T) {
	rec, p := handleErr(t, fmt.Errorf("database on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "/errors/internal", p.Type)
	assert.Equal(t, "Internal error", p.Title)
	assert.Equal(t, "database on fire", p.Detail)
}
