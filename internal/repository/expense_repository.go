package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// ListFilter narrows and orders an owner's expense listing.
type ListFilter struct {
	// Category filters on exact category match when non-empty.
	Category model.Category
	// Date filters on exact calendar date when non-zero.
	Date *model.Date
	// Ordering is "date", "amount", "-date" or "-amount". Empty keeps
	// insertion order.
	Ordering string
}

// ExpenseRepository defines expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Save(ctx context.Context, expense *model.Expense) error
	// FindByIDAndOwner returns gorm.ErrRecordNotFound both when the record
	// does not exist and when it belongs to a different user.
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Expense, error)
	// DeleteByIDAndOwner reports gorm.ErrRecordNotFound when nothing was
	// deleted, with the same ambiguity as FindByIDAndOwner.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error
	ListByOwner(ctx context.Context, ownerID uint, filter ListFilter) ([]model.Expense, error)
	// FindInRange returns all expenses with from <= date, and date < to when
	// to is non-zero. Not owner-scoped.
	FindInRange(ctx context.Context, from, to time.Time) ([]model.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Save(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepository) ListByOwner(ctx context.Context, ownerID uint, filter ListFilter) ([]model.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if order := orderClause(filter.Ordering); order != "" {
		query = query.Order(order)
	}

	var expenses []model.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) FindInRange(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	query := r.db.WithContext(ctx).Where("date >= ?", model.DateOf(from))
	if !to.IsZero() {
		query = query.Where("date < ?", model.DateOf(to))
	}

	var expenses []model.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// orderClause translates a caller-supplied ordering field, with an optional
// leading "-" for descending, into a SQL ORDER BY clause. Unknown fields are
// ignored so listing falls back to insertion order.
func orderClause(ordering string) string {
	desc := false
	field := ordering
	if len(field) > 0 && field[0] == '-' {
		desc = true
		field = field[1:]
	}
	switch field {
	case "date", "amount":
	default:
		return ""
	}
	if desc {
		return field + " DESC"
	}
	return field + " ASC"
}
