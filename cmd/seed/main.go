package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/config"
	"spendtrack/internal/db"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

type seedExpense struct {
	category    model.Category
	amount      string
	daysAgo     int
	description string
}

var seedExpenses = []seedExpense{
	{model.CategoryFood, "42.50", 0, "Groceries"},
	{model.CategoryTransport, "15.00", 1, "Metro card top-up"},
	{model.CategoryFood, "18.75", 2, "Lunch out"},
	{model.CategoryEntertainment, "29.99", 4, "Streaming subscription"},
	{model.CategoryBills, "120.00", 6, "Electricity"},
	{model.CategoryShopping, "63.40", 9, "New shoes"},
	{model.CategoryFood, "55.20", 12, "Groceries"},
	{model.CategoryOther, "10.00", 15, "Charity"},
	{model.CategoryTransport, "32.80", 20, "Fuel"},
	{model.CategoryBills, "45.00", 33, "Internet"},
	{model.CategoryEntertainment, "24.00", 40, "Cinema"},
	{model.CategoryFood, "71.10", 47, "Groceries"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (id=%d)", user.Username, user.ID)

	created, err := seedDemoExpenses(ctx, expenseRepo, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Expenses created: %d", created)
	log.Printf("  - Login with %s / %s", demoUsername, demoPassword)
}

// ensureDemoUser creates the demo user unless it already exists.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByUsername(ctx, demoUsername)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     demoUsername,
		Email:        "demo@example.com",
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedDemoExpenses inserts a spread of expenses across categories and the
// last few weeks, so trends and breakdowns have data to show.
func seedDemoExpenses(ctx context.Context, repo repository.ExpenseRepository, userID uint) (int, error) {
	existing, err := repo.ListByOwner(ctx, userID, repository.ListFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("User already has %d expenses, skipping expense seed", len(existing))
		return 0, nil
	}

	now := time.Now()
	created := 0
	for _, item := range seedExpenses {
		amount, err := decimal.NewFromString(item.amount)
		if err != nil {
			return created, err
		}
		expense := &model.Expense{
			UserID:      userID,
			Category:    item.category,
			Amount:      amount,
			Date:        model.DateOf(now.AddDate(0, 0, -item.daysAgo)),
			Description: item.description,
		}
		if err := repo.Create(ctx, expense); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
