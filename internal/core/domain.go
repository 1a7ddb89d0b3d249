package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
	Credit   AccountType = "credit"

	Manual       AccountSource = "manual"
	ExternalLink AccountSource = "externalLink"

	IncomeTransaction  TransactionType = "income"
	ExpenseTransaction TransactionType = "expense"

	BillMonthly BillType = "monthly"
	BillOneTime BillType = "one-time"

	FrequencyMonthly Frequency = "monthly"
	FrequencyOneTime Frequency = "one-time"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type (
	AccountType     string
	AccountSource   string
	TransactionType string
	BillType        string
	Frequency       string
	Theme           string

	// Account is a balance snapshot for a bank account. The balance is an
	// absolute value entered manually or reported by the bank feed; it is
	// never derived from transactions and the two may diverge.
	Account struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Type     AccountType     `json:"type"`
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency"`
		Source   AccountSource   `json:"source"`

		// Set only for externally linked accounts.
		ExternalAccountRef string    `json:"externalAccountRef,omitempty"`
		LastSyncedAt       time.Time `json:"lastSyncedAt"`
	}

	// Transaction carries its sign in Type; Amount is always non-negative.
	// AccountID is a soft reference: it may point at a deleted account and
	// consumers must treat a missing account as a normal case.
	Transaction struct {
		ID        string          `json:"id"`
		Title     string          `json:"title"`
		Amount    decimal.Decimal `json:"amount"`
		Date      Date            `json:"date"`
		Category  string          `json:"category"`
		Type      TransactionType `json:"type"`
		AccountID string          `json:"accountId,omitempty"`
	}

	// Bill's DueDate is type-dependent: for BillMonthly it holds a
	// day-of-month integer encoded as a string ("1".."31"); for BillOneTime
	// it holds a full calendar date. Readers must branch on Type first.
	Bill struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Amount   decimal.Decimal `json:"amount"`
		DueDate  string          `json:"dueDate"`
		Category string          `json:"category"`
		IsPaid   bool            `json:"isPaid"`
		Type     BillType        `json:"type"`
	}

	// Income is a recurring or one-off income source. It has no anchor
	// date; monthly incomes are assumed to recur every period.
	Income struct {
		ID        string          `json:"id"`
		Title     string          `json:"title"`
		Amount    decimal.Decimal `json:"amount"`
		Frequency Frequency       `json:"frequency"`
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyTitle     = errors.New("empty title")
	ErrInvalidDueDate = errors.New("invalid due date")
)

// DayOfMonth parses the due day of a monthly bill. It fails for one-time
// bills and for values outside 1..31.
func (b Bill) DayOfMonth() (int, error) {
	if b.Type != BillMonthly {
		return 0, ErrInvalidDueDate
	}
	day, err := strconv.Atoi(strings.TrimSpace(b.DueDate))
	if err != nil || day < 1 || day > 31 {
		return 0, ErrInvalidDueDate
	}
	return day, nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyTitle
	}
	switch a.Type {
	case Checking, Savings, Credit:
	default:
		return errors.New("invalid account type")
	}
	switch a.Source {
	case Manual, ExternalLink:
	default:
		return errors.New("invalid account source")
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	switch t.Type {
	case IncomeTransaction, ExpenseTransaction:
	default:
		return errors.New("invalid transaction type")
	}
	return nil
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	switch b.Type {
	case BillMonthly:
		if _, err := b.DayOfMonth(); err != nil {
			return err
		}
	case BillOneTime:
		if _, err := ParseDate(b.DueDate); err != nil {
			return ErrInvalidDueDate
		}
	default:
		return errors.New("invalid bill type")
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if i.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	switch i.Frequency {
	case FrequencyMonthly, FrequencyOneTime:
	default:
		return errors.New("invalid income frequency")
	}
	return nil
}
