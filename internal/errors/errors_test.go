package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := New(KindDateRequired, "report URL needs a date")
	assert.Equal(t, "report URL needs a date", err.Error())

	tagged := err.ForReport("da_expost_lmp")
	assert.Equal(t, `report "da_expost_lmp": report URL needs a date`, tagged.Error())
	assert.Empty(t, err.Report, "tagging returns a copy")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(KindTransport, cause, "GET %s failed", "https://example.invalid")

	assert.Equal(t, "GET https://example.invalid failed: connection refused", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(New(KindUnknownReport, "nope"))
	require.True(t, ok)
	assert.Equal(t, KindUnknownReport, kind)

	wrapped := fmt.Errorf("outer: %w", New(KindParseShape, "bad shape"))
	kind, ok = KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindParseShape, kind)

	_, ok = KindOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	err := New(KindUnsupportedExtension, "xml not supported")
	assert.True(t, Is(err, KindUnsupportedExtension))
	assert.False(t, Is(err, KindTransport))
	assert.False(t, Is(nil, KindTransport))
}

func TestIsUnimplemented(t *testing.T) {
	assert.True(t, IsUnimplemented(New(KindUnimplemented, "empty files so far")))
	assert.False(t, IsUnimplemented(New(KindParseShape, "bad shape")))
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindUnknownReport, true},
		{KindUnsupportedExtension, true},
		{KindMissingExtension, true},
		{KindNoIncrement, true},
		{KindDateRequired, false},
		{KindTransport, false},
		{KindParseShape, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsConfiguration(New(tt.kind, "x")), tt.kind.String())
	}
	assert.False(t, IsConfiguration(fmt.Errorf("plain")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown_report", KindUnknownReport.String())
	assert.Equal(t, "parse_shape", KindParseShape.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
