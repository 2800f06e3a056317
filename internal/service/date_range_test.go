package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/errors"
)

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2025, time.March, 20, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         RangeQuery
		expectedStart time.Time
		expectedEnd   time.Time
		explicit      bool
		expectedError error
	}{
		{
			name:          "explicit start date is open-ended",
			query:         RangeQuery{StartDate: "2025-01-15"},
			expectedStart: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			explicit:      true,
		},
		{
			name:          "start date wins over month and year",
			query:         RangeQuery{StartDate: "2025-01-15", Month: "6", Year: "2024"},
			expectedStart: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			explicit:      true,
		},
		{
			name:          "malformed start date",
			query:         RangeQuery{StartDate: "15/01/2025"},
			expectedError: errors.ErrInvalidStartDate,
		},
		{
			name:          "month and year resolve to a closed month",
			query:         RangeQuery{Month: "6", Year: "2025"},
			expectedStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			explicit:      true,
		},
		{
			name:          "december rolls over to january of next year",
			query:         RangeQuery{Month: "12", Year: "2025"},
			expectedStart: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			explicit:      true,
		},
		{
			name:          "malformed month",
			query:         RangeQuery{Month: "june", Year: "2025"},
			expectedError: errors.ErrInvalidMonthYear,
		},
		{
			name:          "malformed year",
			query:         RangeQuery{Month: "6", Year: "20x5"},
			expectedError: errors.ErrInvalidMonthYear,
		},
		{
			name:          "month out of range",
			query:         RangeQuery{Month: "13", Year: "2025"},
			expectedError: errors.ErrInvalidMonthYear,
		},
		{
			name:          "month without year falls through to default",
			query:         RangeQuery{Month: "6"},
			expectedStart: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "no parameters default to month-to-date",
			query:         RangeQuery{},
			expectedStart: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := ResolveDateRange(tt.query, now)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, resolved.Start)
			assert.Equal(t, tt.expectedEnd, resolved.End)
			assert.Equal(t, tt.explicit, resolved.Explicit)
		})
	}
}

func TestDateRangeMonthYear(t *testing.T) {
	resolved, err := ResolveDateRange(RangeQuery{Month: "12", Year: "2025"}, time.Now())
	require.NoError(t, err)

	month, year := resolved.MonthYear()
	assert.Equal(t, 12, month)
	assert.Equal(t, 2025, year)
}
