package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

func newReportService(repo repository.ExpenseRepository) *reportService {
	svc := NewReportService(repo, nil).(*reportService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestReportServiceSummary(t *testing.T) {
	repo := new(MockExpenseRepository)
	repo.On("ListByOwner", mock.Anything, uint(7), repository.ListFilter{}).Return([]model.Expense{
		expense(model.CategoryFood, "50.00", 2025, time.January, 1),
		expense(model.CategoryTransport, "20.00", 2025, time.January, 2),
		expense(model.CategoryTransport, "45.00", 2025, time.February, 2),
	}, nil)
	svc := newReportService(repo)

	summary, err := svc.Summary(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.Equal(decimal.RequireFromString("115.00")))
	require.Len(t, summary.CategoryBreakdown, 2)
	// Sorted descending by total.
	assert.Equal(t, model.CategoryTransport, summary.CategoryBreakdown[0].Category)
	assert.True(t, summary.CategoryBreakdown[0].Total.Equal(decimal.RequireFromString("65.00")))
	assert.Equal(t, model.CategoryFood, summary.CategoryBreakdown[1].Category)
}

func TestReportServiceSummaryEmpty(t *testing.T) {
	repo := new(MockExpenseRepository)
	repo.On("ListByOwner", mock.Anything, uint(7), repository.ListFilter{}).Return([]model.Expense{}, nil)
	svc := newReportService(repo)

	summary, err := svc.Summary(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.IsZero())
	assert.Empty(t, summary.CategoryBreakdown)
}

func TestReportServiceTrends(t *testing.T) {
	t.Run("invalid period", func(t *testing.T) {
		svc := newReportService(new(MockExpenseRepository))

		_, err := svc.Trends(context.Background(), "year", RangeQuery{})

		assert.Equal(t, apperrors.ErrInvalidPeriod, err)
	})

	t.Run("period month buckets by week", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, from, to).Return([]model.Expense{
			expense(model.CategoryFood, "10.00", 2025, time.March, 5),
			expense(model.CategoryBills, "20.00", 2025, time.March, 12),
		}, nil)
		svc := newReportService(repo)

		points, err := svc.Trends(context.Background(), PeriodMonth, RangeQuery{Month: "3", Year: "2025"})

		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "2025-03-03", points[0].Period.String())
		assert.Equal(t, "2025-03-10", points[1].Period.String())
		repo.AssertExpectations(t)
	})

	t.Run("period week buckets by day", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, start, time.Time{}).Return([]model.Expense{
			expense(model.CategoryFood, "10.00", 2025, time.March, 5),
			expense(model.CategoryFood, "2.50", 2025, time.March, 5),
		}, nil)
		svc := newReportService(repo)

		points, err := svc.Trends(context.Background(), PeriodWeek, RangeQuery{StartDate: "2025-03-03"})

		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "2025-03-05", points[0].Period.String())
		assert.True(t, points[0].Total.Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("default range with no records returns an explicit empty list", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, monthStart, time.Time{}).Return([]model.Expense{}, nil)
		svc := newReportService(repo)

		points, err := svc.Trends(context.Background(), PeriodMonth, RangeQuery{})

		require.NoError(t, err)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
}

func TestReportServiceBreakdown(t *testing.T) {
	t.Run("invalid period", func(t *testing.T) {
		svc := newReportService(new(MockExpenseRepository))

		_, err := svc.Breakdown(context.Background(), "quarter", RangeQuery{})

		assert.Equal(t, apperrors.ErrInvalidPeriod, err)
	})

	t.Run("explicit month echoes period info", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		from := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, from, to).Return([]model.Expense{
			expense(model.CategoryFood, "50.00", 2025, time.December, 24),
			expense(model.CategoryShopping, "80.00", 2025, time.December, 20),
		}, nil)
		svc := newReportService(repo)

		breakdown, err := svc.Breakdown(context.Background(), PeriodMonth, RangeQuery{Month: "12", Year: "2025"})

		require.NoError(t, err)
		require.Len(t, breakdown.CategoryBreakdown, 2)
		require.NotNil(t, breakdown.PeriodInfo)
		assert.Equal(t, 12, breakdown.PeriodInfo.Month)
		assert.Equal(t, 2025, breakdown.PeriodInfo.Year)
	})

	t.Run("start date filter reports the range start's month", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, start, time.Time{}).Return([]model.Expense{}, nil)
		svc := newReportService(repo)

		breakdown, err := svc.Breakdown(context.Background(), PeriodMonth, RangeQuery{StartDate: "2025-01-15"})

		require.NoError(t, err)
		assert.Empty(t, breakdown.CategoryBreakdown)
		require.NotNil(t, breakdown.PeriodInfo)
		assert.Equal(t, 1, breakdown.PeriodInfo.Month)
		assert.Equal(t, 2025, breakdown.PeriodInfo.Year)
	})

	t.Run("default range with no records omits period info", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		repo.On("FindInRange", mock.Anything, monthStart, time.Time{}).Return([]model.Expense{}, nil)
		svc := newReportService(repo)

		breakdown, err := svc.Breakdown(context.Background(), PeriodMonth, RangeQuery{})

		require.NoError(t, err)
		assert.Empty(t, breakdown.CategoryBreakdown)
		assert.Nil(t, breakdown.PeriodInfo)
	})
}
