package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBillDayOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		bill    Bill
		want    int
		wantErr bool
	}{
		{name: "first of month", bill: Bill{Type: BillMonthly, DueDate: "1"}, want: 1},
		{name: "zero padded", bill: Bill{Type: BillMonthly, DueDate: "01"}, want: 1},
		{name: "end of month", bill: Bill{Type: BillMonthly, DueDate: "31"}, want: 31},
		{name: "out of range", bill: Bill{Type: BillMonthly, DueDate: "32"}, wantErr: true},
		{name: "zero", bill: Bill{Type: BillMonthly, DueDate: "0"}, wantErr: true},
		{name: "not a number", bill: Bill{Type: BillMonthly, DueDate: "2023-11-15"}, wantErr: true},
		{name: "one-time bill", bill: Bill{Type: BillOneTime, DueDate: "15"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bill.DayOfMonth()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got day %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DayOfMonth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBillValidate(t *testing.T) {
	good := []Bill{
		{Title: "Rent", Amount: decimal.NewFromInt(1500), DueDate: "01", Type: BillMonthly},
		{Title: "Electricity", Amount: decimal.NewFromInt(120), DueDate: "2023-11-15", Type: BillOneTime},
	}
	for i, b := range good {
		if err := b.Validate(); err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
	}

	bad := []Bill{
		{Title: "", Amount: decimal.NewFromInt(1), DueDate: "01", Type: BillMonthly},
		{Title: "x", Amount: decimal.NewFromInt(-1), DueDate: "01", Type: BillMonthly},
		{Title: "x", Amount: decimal.NewFromInt(1), DueDate: "2023-11-15", Type: BillMonthly}, // full date on monthly
		{Title: "x", Amount: decimal.NewFromInt(1), DueDate: "15", Type: BillOneTime},         // bare day on one-time
		{Title: "x", Amount: decimal.NewFromInt(1), DueDate: "01", Type: "weekly"},
	}
	for i, b := range bad {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Title: "Coffee", Amount: decimal.NewFromFloat(5.50), Date: NewDate(2023, 11, 16), Type: ExpenseTransaction}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// A dangling account reference still validates.
	good.AccountID = "no-such-account"
	if err := good.Validate(); err != nil {
		t.Fatalf("dangling account reference should validate, got %v", err)
	}

	bad := []Transaction{
		{Title: "", Amount: decimal.NewFromInt(1), Date: NewDate(2023, 1, 1), Type: ExpenseTransaction},
		{Title: "x", Amount: decimal.NewFromInt(-1), Date: NewDate(2023, 1, 1), Type: ExpenseTransaction},
		{Title: "x", Amount: decimal.NewFromInt(1), Type: ExpenseTransaction}, // zero date
		{Title: "x", Amount: decimal.NewFromInt(1), Date: NewDate(2023, 1, 1), Type: "transfer"},
	}
	for i, tx := range bad {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	if err := (Income{Title: "Salary", Amount: decimal.NewFromInt(2500), Frequency: FrequencyMonthly}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Income{Title: "Salary", Amount: decimal.NewFromInt(2500), Frequency: "weekly"}).Validate(); err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Name: "Chase 1234", Type: Checking, Balance: decimal.NewFromInt(500), Currency: "usd", Source: ExternalLink}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Account{Name: "x", Type: "brokerage", Source: Manual}).Validate(); err == nil {
		t.Fatal("expected error for unknown account type")
	}
	if err := (Account{Name: "x", Type: Savings, Source: "plaid"}).Validate(); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
