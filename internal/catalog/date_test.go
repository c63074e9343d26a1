package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Date_AddYears(t *testing.T) {
	testCases := []struct {
		name     string
		date     Date
		years    int
		expected Date
	}{
		{
			name:     "Plain date moves one year",
			date:     NewDate(2025, time.March, 15),
			years:    1,
			expected: NewDate(2026, time.March, 15),
		},
		{
			name:     "Month and day are preserved",
			date:     NewDate(2025, time.December, 31),
			years:    1,
			expected: NewDate(2026, time.December, 31),
		},
		{
			name:     "Leap day rolls over to March 1 in a non-leap year",
			date:     NewDate(2024, time.February, 29),
			years:    1,
			expected: NewDate(2025, time.March, 1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.date.AddYears(tc.years).Equal(tc.expected))
		})
	}
}

func Test_Date_JSONRoundTrip(t *testing.T) {
	// given
	d := NewDate(2026, time.August, 29)
	// when
	data, err := json.Marshal(d)
	// then
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-29"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d))
}

func Test_Date_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    Date
		expectError bool
	}{
		{
			name:     "Date-only value",
			input:    `"2026-01-02"`,
			expected: NewDate(2026, time.January, 2),
		},
		{
			name:     "RFC 3339 timestamp drops time of day",
			input:    `"2026-01-02T15:04:05Z"`,
			expected: NewDate(2026, time.January, 2),
		},
		{
			name:     "Empty string is the zero date",
			input:    `""`,
			expected: Date{},
		},
		{
			name:        "Garbage is rejected",
			input:       `"tomorrow"`,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(tc.expected))
		})
	}
}

func Test_Product_RevisionConsistent(t *testing.T) {
	release := NewDate(2026, time.May, 10)

	assert.True(t, Product{DateRelease: release, DateRevision: release.AddYears(1)}.RevisionConsistent())
	assert.False(t, Product{DateRelease: release, DateRevision: release}.RevisionConsistent())
	assert.False(t, Product{DateRevision: release.AddYears(1)}.RevisionConsistent())
}
