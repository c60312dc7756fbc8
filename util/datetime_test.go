package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	want := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	for _, input := range []string{
		"2026-11-02T09:30:00Z",
		"2026-11-02T11:30:00+02:00",
		"2026-11-02T09:30:00",
		"2026-11-02T09:30",
		"2026-11-02 09:30",
	} {
		got, err := ParseDateTime(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), input)
	}

	_, err := ParseDateTime("next tuesday")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("1990-04-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("12/04/1990")
	assert.Error(t, err)
}
