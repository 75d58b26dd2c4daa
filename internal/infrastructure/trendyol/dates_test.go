package trendyol

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateISODateInRomanianTime(t *testing.T) {
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, bucharest).UnixMilli()
	got := formatDate("2026-03-15")
	assert.Equal(t, want, mustParseMillis(t, got))
}

func TestFormatDateWithTime(t *testing.T) {
	want := time.Date(2026, 3, 15, 14, 30, 0, 0, bucharest).UnixMilli()
	got := formatDate("2026-03-15T14:30:00")
	assert.Equal(t, want, mustParseMillis(t, got))
}

func TestFormatDateRespectsExplicitOffset(t *testing.T) {
	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, mustParseMillis(t, formatDate("2026-03-15T12:00:00Z")))
	assert.Equal(t, want, mustParseMillis(t, formatDate("2026-03-15T12:00:00+00:00")))
}

func TestFormatDateUnparseablePassesThrough(t *testing.T) {
	// Valorile neinterpretabile trec neschimbate; furnizorul le respinge singur.
	assert.Equal(t, "15/03/2026", formatDate("15/03/2026"))
	assert.Equal(t, "", formatDate(""))
}

func mustParseMillis(t *testing.T, s string) int64 {
	t.Helper()
	millis, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("nu e un număr de milisecunde: %q", s)
	}
	return millis
}
