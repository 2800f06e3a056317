package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/cache"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const summaryCacheTTL = 5 * time.Minute

// Trend periods accepted by the trends and breakdown endpoints.
const (
	PeriodMonth = "month"
	PeriodWeek  = "week"
)

// CategoryTotal is the summed spend of one category.
type CategoryTotal struct {
	Category model.Category  `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Summary is a user's total spend with a per-category breakdown, sorted
// descending by total.
type Summary struct {
	TotalSpent        decimal.Decimal `json:"total_spent"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
}

// TrendPoint is the summed spend of one time bucket.
type TrendPoint struct {
	Period model.Date      `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// PeriodInfo echoes the month and year a breakdown covers.
type PeriodInfo struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Breakdown is the per-category spend over a resolved date range.
// PeriodInfo is nil only for the default-range empty-result case.
type Breakdown struct {
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
	PeriodInfo        *PeriodInfo     `json:"period_info,omitempty"`
}

// ReportService computes aggregated views over expenses.
type ReportService interface {
	// Summary covers all of the owner's expenses, regardless of date.
	Summary(ctx context.Context, ownerID uint) (*Summary, error)
	// Trends buckets expenses in the resolved range: week buckets for
	// period "month", day buckets for period "week". Not owner-scoped.
	Trends(ctx context.Context, period string, q RangeQuery) ([]TrendPoint, error)
	// Breakdown totals expenses per category over the resolved range.
	// Not owner-scoped.
	Breakdown(ctx context.Context, period string, q RangeQuery) (*Breakdown, error)
}

type reportService struct {
	expenseRepo repository.ExpenseRepository
	cache       *cache.Client
	now         func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(expenseRepo repository.ExpenseRepository, cache *cache.Client) ReportService {
	return &reportService{
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

func summaryCacheKey(ownerID uint) string {
	return fmt.Sprintf("expense_summary:%d", ownerID)
}

// Summary returns the owner's total spend and category breakdown. Results
// are cached per user; every expense write invalidates the cache.
func (s *reportService) Summary(ctx context.Context, ownerID uint) (*Summary, error) {
	if data, _ := s.cache.Get(ctx, summaryCacheKey(ownerID)); data != nil {
		var cached Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	expenses, err := s.expenseRepo.ListByOwner(ctx, ownerID, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	summary := &Summary{
		TotalSpent:        Total(expenses),
		CategoryBreakdown: sortedCategoryTotals(TotalsByCategory(expenses), true),
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, summaryCacheKey(ownerID), payload, summaryCacheTTL)
	}
	return summary, nil
}

// Trends returns time-bucketed totals over the resolved range.
func (s *reportService) Trends(ctx context.Context, period string, q RangeQuery) ([]TrendPoint, error) {
	granularity, err := trendGranularity(period)
	if err != nil {
		return nil, err
	}

	expenses, _, err := s.inRange(ctx, q)
	if err != nil {
		return nil, err
	}

	buckets := BucketTotals(expenses, granularity)
	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, TrendPoint{Period: model.DateOf(b.Start), Total: b.Total})
	}
	return points, nil
}

// Breakdown returns category totals over the resolved range plus the range's
// month/year metadata.
func (s *reportService) Breakdown(ctx context.Context, period string, q RangeQuery) (*Breakdown, error) {
	if _, err := trendGranularity(period); err != nil {
		return nil, err
	}

	expenses, dateRange, err := s.inRange(ctx, q)
	if err != nil {
		return nil, err
	}

	breakdown := &Breakdown{
		CategoryBreakdown: sortedCategoryTotals(TotalsByCategory(expenses), false),
	}

	// The default month-to-date range reports no period metadata when it is
	// empty, matching the explicit empty-result policy.
	if dateRange.Explicit || len(expenses) > 0 {
		month, year := dateRange.MonthYear()
		breakdown.PeriodInfo = &PeriodInfo{Month: month, Year: year}
	}
	return breakdown, nil
}

// inRange resolves the request's filter parameters and fetches the matching
// expenses.
func (s *reportService) inRange(ctx context.Context, q RangeQuery) ([]model.Expense, DateRange, error) {
	dateRange, err := ResolveDateRange(q, s.now())
	if err != nil {
		return nil, DateRange{}, err
	}

	expenses, err := s.expenseRepo.FindInRange(ctx, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, DateRange{}, fmt.Errorf("find expenses in range: %w", err)
	}
	return expenses, dateRange, nil
}

// trendGranularity maps a request period to a bucket width: a month is
// examined in weeks, a week in days.
func trendGranularity(period string) (BucketGranularity, error) {
	switch period {
	case PeriodMonth:
		return BucketWeek, nil
	case PeriodWeek:
		return BucketDay, nil
	default:
		return "", apperrors.ErrInvalidPeriod
	}
}

// sortedCategoryTotals flattens a category->total map. With byTotal set the
// result is ordered descending by total, otherwise ascending by category.
func sortedCategoryTotals(totals map[model.Category]decimal.Decimal, byTotal bool) []CategoryTotal {
	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if byTotal && !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Category < result[j].Category
	})
	return result
}
