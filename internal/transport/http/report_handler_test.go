package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"misoreports/internal/client"
	apperrors "misoreports/internal/errors"
)

func newTestHandler() *ReportHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReportHandler(client.New(), logger, apperrors.NewHandler(logger))
}

func doRequest(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	newTestHandler().Routes().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestListReports(t *testing.T) {
	rec, body := doRequest(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	reports, ok := body["reports"].([]any)
	require.True(t, ok)
	assert.Contains(t, reports, "getfuelmix")
	assert.Contains(t, reports, "da_expost_lmp")
}

func TestGetReport(t *testing.T) {
	rec, body := doRequest(t, "/da_expost_lmp/")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "da_expost_lmp", body["name"])
	assert.Equal(t, "csv", body["type"])
	assert.Equal(t, "csv", body["default_extension"])
	assert.Equal(t, "2024-10-26", body["example_date"])
}

func TestGetReportUnknown(t *testing.T) {
	rec, body := doRequest(t, "/no_such_report/")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/errors/unknown_report", body["type"])
}

func TestResolveURL(t *testing.T) {
	rec, body := doRequest(t, "/da_expost_lmp/url?date=2024-10-26")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"https://docs.misoenergy.org/marketreports/20241026_da_expost_lmp.csv",
		body["url"])
}

func TestResolveURLMissingDate(t *testing.T) {
	rec, body := doRequest(t, "/da_expost_lmp/url")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "/errors/date_required", body["type"])
}

func TestResolveURLBadDateFormat(t *testing.T) {
	rec, _ := doRequest(t, "/da_expost_lmp/url?date=26-10-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveURLUnsupportedExtension(t *testing.T) {
	rec, body := doRequest(t, "/getfuelmix/url?extension=pdf")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "/errors/unsupported_extension", body["type"])
}

func TestGetTableUnknownReportFailsBeforeFetch(t *testing.T) {
	rec, body := doRequest(t, "/no_such_report/table")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/errors/unknown_report", body["type"])
}
