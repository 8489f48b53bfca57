package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateLabel(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2025-03-05", "Wed, Mar 5"},
		{"2025-03-09", "Sun, Mar 9"},
		{"2025-12-25", "Thu, Dec 25"},
		{"2025-01-01", "Wed, Jan 1"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, DateLabel(tc.date))
	}
}

func TestDateLabel_MalformedInputPassesThrough(t *testing.T) {
	assert.Equal(t, "05/03/2025", DateLabel("05/03/2025"))
	assert.Equal(t, "", DateLabel(""))
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		clock    string
		expected string
	}{
		{"09:00", "9am"},
		{"09:30", "9:30am"},
		{"12:00", "12pm"},
		{"12:15", "12:15pm"},
		{"00:00", "12am"},
		{"00:05", "12:05am"},
		{"13:30", "1:30pm"},
		{"23:45", "11:45pm"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, TimeLabel(tc.clock))
	}
}

func TestTimeLabel_NeverRendersZeroMinutes(t *testing.T) {
	for _, clock := range []string{"09:00", "17:00", "12:00"} {
		assert.NotContains(t, TimeLabel(clock), ":00")
	}
}

func TestPreferredDatesLabel(t *testing.T) {
	assert.Equal(t, "Wed, Mar 6 at 1:30pm", PreferredDatesLabel("2024-03-06", "13:30"))
	assert.Equal(t, "Mon, Mar 3 at 9am", PreferredDatesLabel("2025-03-03", "09:00"))
}
