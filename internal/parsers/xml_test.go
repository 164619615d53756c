package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayOfYearDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"3042024", time.Date(2024, time.October, 30, 0, 0, 0, 0, time.UTC)},
		{"0052024", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"12024", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"3662024", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDayOfYearDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDayOfYearDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "2024", "ab32024"} {
		_, err := parseDayOfYearDate(in)
		assert.Error(t, err, in)
	}
}

func TestMISODaily(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<Product>
  <AccountHeader>
    <PostingHeader Data_Code="MISO" Data_Date="3042024" Data_Type="DF" PostingType="Demand Forecast">
      <HourlyIndicatedValue Hour="1" PostedValue="62312" UTCOffset="-5"/>
      <HourlyIndicatedValue Hour="2" PostedValue="60891" UTCOffset="-5"/>
    </PostingHeader>
    <PostingHeader Data_Code="MISO" Data_Date="3042024" Data_Type="AD" PostingType="Actual Demand">
      <HourlyIndicatedValue Hour="1" PostedValue="61742" UTCOffset="-5"/>
    </PostingHeader>
  </AccountHeader>
</Product>`)

	table, err := MISODaily(&RawReport{Body: body})
	require.NoError(t, err)
	require.Equal(t, 3, table.NumRows())

	assert.Equal(t, "MISO", table.Rows[0][0])
	assert.Equal(t, time.Date(2024, time.October, 30, 0, 0, 0, 0, time.UTC), table.Rows[0][1])
	assert.Equal(t, "DF", table.Rows[0][2])
	assert.Equal(t, int64(2), table.Rows[1][4])
	assert.Equal(t, int64(61742), table.Rows[2][5])
	assert.Equal(t, int64(-5), table.Rows[2][6])
	assert.Equal(t, "Actual Demand", table.Rows[2][3])
}

func TestMISOSameDayDemandRejectsMalformedXML(t *testing.T) {
	_, err := MISOSameDayDemand(&RawReport{Body: []byte("<Product><unterminated")})
	assert.Error(t, err)
}
