package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-999, "-999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), tt.in)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "33.3%", FormatPercentage(33.333, 1))
	assert.Equal(t, "50%", FormatPercentage(50, 0))
	assert.Equal(t, "0.00%", FormatPercentage(0, 2))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "—", FormatDate(time.Time{}))
	assert.Equal(t, "Mar 05, 2024", FormatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Mar 05, 2024", FormatDateString("2024-03-05"))
	assert.Equal(t, "Mar 05, 2024", FormatDateString("2024-03-05T10:00:00Z"))
	assert.Equal(t, "—", FormatDateString(""))
	assert.Equal(t, "—", FormatDateString("yesterday-ish"))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{2 * time.Hour, "Today"},
		{30 * time.Hour, "Yesterday"},
		{3 * 24 * time.Hour, "3 days ago"},
		{10 * 24 * time.Hour, "1 weeks ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
		{45 * 24 * time.Hour, "May 16, 2024"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRelativeTime(now.Add(-tt.ago), now), tt.ago)
	}
	assert.Equal(t, "—", FormatRelativeTime(time.Time{}, now))
}
