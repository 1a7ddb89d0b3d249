package store

import (
	"myfi/internal/core"

	"github.com/shopspring/decimal"
)

// Seed rows shown on a fresh install when demo seeding is enabled. They
// are illustrative data only; the default build starts empty.

func SeedBills() []core.Bill {
	return []core.Bill{
		{ID: "1", Title: "Rent", Amount: decimal.NewFromInt(1500), DueDate: "01", Category: "Housing", IsPaid: true, Type: core.BillMonthly},
		{ID: "2", Title: "Electricity", Amount: decimal.NewFromInt(120), DueDate: "2023-11-15", Category: "Utilities", Type: core.BillOneTime},
		{ID: "3", Title: "Internet", Amount: decimal.NewFromInt(60), DueDate: "2023-11-20", Category: "Utilities", Type: core.BillOneTime},
		{ID: "4", Title: "Car Insurance", Amount: decimal.NewFromInt(100), DueDate: "2023-11-25", Category: "Insurance", Type: core.BillOneTime},
	}
}

func SeedTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Title: "Grocery Shopping", Amount: decimal.NewFromInt(150), Date: core.NewDate(2023, 11, 2), Category: "Food", Type: core.ExpenseTransaction, AccountID: "1"},
		{ID: "2", Title: "Gas Station", Amount: decimal.NewFromInt(45), Date: core.NewDate(2023, 11, 5), Category: "Transport", Type: core.ExpenseTransaction, AccountID: "1"},
		{ID: "3", Title: "Salary Deposit", Amount: decimal.NewFromInt(2500), Date: core.NewDate(2023, 11, 15), Category: "Salary", Type: core.IncomeTransaction, AccountID: "1"},
		{ID: "4", Title: "Coffee Shop", Amount: decimal.NewFromFloat(5.50), Date: core.NewDate(2023, 11, 16), Category: "Food", Type: core.ExpenseTransaction, AccountID: "1"},
		{ID: "5", Title: "Online Course", Amount: decimal.NewFromFloat(29.99), Date: core.NewDate(2023, 11, 18), Category: "Education", Type: core.ExpenseTransaction, AccountID: "3"},
	}
}
