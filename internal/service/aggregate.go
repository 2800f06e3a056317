package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/model"
)

// BucketGranularity selects the width of trend buckets.
type BucketGranularity string

const (
	// BucketWeek groups expenses into Monday-start weeks.
	BucketWeek BucketGranularity = "week"
	// BucketDay groups expenses into single days.
	BucketDay BucketGranularity = "day"
)

// BucketTotal is the summed spend of one time bucket.
type BucketTotal struct {
	Start time.Time
	Total decimal.Decimal
}

// Total sums the amounts of all expenses. An empty input yields zero.
func Total(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalsByCategory groups expenses by category and sums each group.
// Categories with no expenses in the input are absent from the result.
func TotalsByCategory(expenses []model.Expense) map[model.Category]decimal.Decimal {
	totals := make(map[model.Category]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// BucketTotals groups expenses into time buckets of the given granularity
// and sums each bucket. Buckets with no expenses are omitted; the result is
// ordered ascending by bucket start.
func BucketTotals(expenses []model.Expense, granularity BucketGranularity) []BucketTotal {
	totals := make(map[time.Time]decimal.Decimal)
	for _, e := range expenses {
		start := bucketStart(e.Date.Time, granularity)
		totals[start] = totals[start].Add(e.Amount)
	}

	buckets := make([]BucketTotal, 0, len(totals))
	for start, total := range totals {
		buckets = append(buckets, BucketTotal{Start: start, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// bucketStart truncates a date to the start of its bucket. Weeks start on
// Monday, so a bucket may begin before the filtered range does.
func bucketStart(date time.Time, granularity BucketGranularity) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if granularity != BucketWeek {
		return day
	}
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
