package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "misoreports/internal/errors"
)

func strp(s string) *string { return &s }

func datep(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveURL(t *testing.T) {
	c := New()

	url, err := c.ResolveURL("getfuelmix", strp("csv"), nil)
	require.NoError(t, err)
	assert.Equal(t,
		"https://api.misoenergy.org/MISORTWDDataBroker/DataBrokerServices.asmx?messageType=getfuelmix&returnType=csv",
		url)

	url, err = c.ResolveURL("da_expost_lmp", nil, datep(2024, time.October, 26))
	require.NoError(t, err)
	assert.Equal(t,
		"https://docs.misoenergy.org/marketreports/20241026_da_expost_lmp.csv",
		url)
}

func TestResolveURLErrors(t *testing.T) {
	c := New()

	_, err := c.ResolveURL("no_such_report", nil, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindUnknownReport))

	_, err = c.ResolveURL("getfuelmix", strp("pdf"), nil)
	assert.True(t, apperrors.Is(err, apperrors.KindUnsupportedExtension))

	_, err = c.ResolveURL("da_expost_lmp", nil, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindDateRequired))
}

func TestStepDate(t *testing.T) {
	c := New()

	next, err := c.StepDate("rt_expost_str_mcp", datep(2024, time.December, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), *next)

	same, err := c.StepDate("getfuelmix", datep(2024, time.October, 26), 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.October, 26, 0, 0, 0, 0, time.UTC), *same)
}

func TestFetchWithURLOverride(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()))
	raw, err := c.Fetch(context.Background(), "getfuelmix", FetchOptions{
		URLOverride: srv.URL + "/override",
	})
	require.NoError(t, err)
	assert.Equal(t, "/override", gotPath)
	assert.Equal(t, []byte("payload"), raw.Body)
	assert.Equal(t, srv.URL+"/override", raw.URL)
	assert.Equal(t, http.StatusOK, raw.Status)
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()), WithUserAgent("misoreports/test"))
	_, err := c.Fetch(context.Background(), "getfuelmix", FetchOptions{URLOverride: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "misoreports/test", gotUA)

	c = New(WithHTTPClient(srv.Client()))
	_, err = c.Fetch(context.Background(), "getfuelmix", FetchOptions{URLOverride: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "misoreports", gotUA)
}

func TestFetchNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()))
	_, err := c.Fetch(context.Background(), "getfuelmix", FetchOptions{URLOverride: srv.URL})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindTransport))
	assert.Contains(t, err.Error(), "404")
}

func TestFetchConfigurationErrorBeforeNetwork(t *testing.T) {
	c := New(WithHTTPClient(&http.Client{
		Transport: failTransport{},
	}))

	_, err := c.Fetch(context.Background(), "da_expost_lmp", FetchOptions{})
	assert.True(t, apperrors.Is(err, apperrors.KindDateRequired),
		"builder errors must surface before any request is made")
}

type failTransport struct{}

func (failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("unexpected network round trip")
}

func TestGetTable(t *testing.T) {
	body := "RefId,25-Oct-2024 - Interval 14:50 EST\n" +
		"\n" +
		"INTERVALEST,CATEGORY,ACT,TOTALMW\n" +
		"2024-10-25 02:50:00 PM,Coal,10338,71164\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()))
	table, err := c.GetTable(context.Background(), "getfuelmix", FetchOptions{URLOverride: srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, int64(10338), table.Rows[0][table.ColumnIndex("ACT")])
}

func TestGetTableParseErrorNamesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not,a\nvalid shape"))
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()))
	_, err := c.GetTable(context.Background(), "gettotalload", FetchOptions{URLOverride: srv.URL})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindParseShape))
	assert.Contains(t, err.Error(), "gettotalload")
}

func TestGetTableUnimplementedReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("anything"))
	}))
	defer srv.Close()

	c := New(WithHTTPClient(srv.Client()))
	_, err := c.GetTable(context.Background(), "da_M2M_Settlement_srw", FetchOptions{URLOverride: srv.URL})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnimplemented(err))
}

func TestGetTableUnknownReport(t *testing.T) {
	c := New()
	_, err := c.GetTable(context.Background(), "bogus", FetchOptions{})
	assert.True(t, apperrors.Is(err, apperrors.KindUnknownReport))
}
