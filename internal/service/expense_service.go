package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendtrack/internal/cache"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

// ExpenseInput carries the fields of a create request.
type ExpenseInput struct {
	Category    model.Category
	Amount      decimal.Decimal
	Date        model.Date
	Description string
}

// ExpenseUpdate carries the fields of a partial update request. Nil fields
// are left untouched.
type ExpenseUpdate struct {
	Category    *model.Category
	Amount      *decimal.Decimal
	Date        *model.Date
	Description *string
}

// ExpenseService handles expense CRUD, always scoped to the owner.
type ExpenseService interface {
	List(ctx context.Context, ownerID uint, filter repository.ListFilter) ([]model.Expense, error)
	Create(ctx context.Context, ownerID uint, input ExpenseInput) (*model.Expense, error)
	Update(ctx context.Context, ownerID, id uint, update ExpenseUpdate) (*model.Expense, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	cache       *cache.Client
	now         func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo repository.ExpenseRepository, cache *cache.Client) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// List returns the owner's expenses, filtered and ordered per the request.
func (s *expenseService) List(ctx context.Context, ownerID uint, filter repository.ListFilter) ([]model.Expense, error) {
	return s.expenseRepo.ListByOwner(ctx, ownerID, filter)
}

// Create persists a new expense for the owner. The owner is always taken
// from the authenticated caller, never from the request body.
func (s *expenseService) Create(ctx context.Context, ownerID uint, input ExpenseInput) (*model.Expense, error) {
	expense := &model.Expense{
		UserID:      ownerID,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
	}

	if verr := s.validate(expense); !verr.Empty() {
		return nil, verr
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.invalidateSummary(ctx, ownerID)
	return expense, nil
}

// Update applies a partial update to an owned expense. Validation runs on
// the merged record, so an update can never push the record outside its
// invariants.
func (s *expenseService) Update(ctx context.Context, ownerID, id uint, update ExpenseUpdate) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.Description != nil {
		expense.Description = *update.Description
	}

	if verr := s.validate(expense); !verr.Empty() {
		return nil, verr
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	s.invalidateSummary(ctx, ownerID)
	return expense, nil
}

// Delete removes an owned expense. A missing record and a record owned by
// someone else produce the same not-found error.
func (s *expenseService) Delete(ctx context.Context, ownerID, id uint) error {
	if err := s.expenseRepo.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	s.invalidateSummary(ctx, ownerID)
	return nil
}

// validate checks the persistence invariants, reporting every violated
// field at once.
func (s *expenseService) validate(expense *model.Expense) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	if !expense.Category.Valid() {
		verr.Add("category", "Invalid category.")
	}
	if !expense.Amount.GreaterThan(decimal.Zero) {
		verr.Add("amount", "Amount must be greater than 0")
	}
	if expense.Date.IsZero() {
		verr.Add("date", "Date is required.")
	} else if expense.Date.After(model.DateOf(s.now())) {
		verr.Add("date", "Date cannot be in the future.")
	}
	return verr
}

func (s *expenseService) invalidateSummary(ctx context.Context, ownerID uint) {
	_ = s.cache.Delete(ctx, summaryCacheKey(ownerID))
}
