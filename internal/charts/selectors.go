package charts

import (
	"sort"
	"sync"
	"time"

	"myfi/internal/core"
	"myfi/internal/store"

	"github.com/shopspring/decimal"
)

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Category string
	Total    decimal.Decimal
}

// BreakdownSlice is one slice of the income-vs-bills pie: a bill's title
// and amount, or the final leftover slice.
type BreakdownSlice struct {
	Name   string
	Amount decimal.Decimal
}

// LeftoverSlice is the label of the closing slice of IncomeVsBills.
const LeftoverSlice = "Leftover"

// MonthlySeries holds one expense bucket per calendar month, January
// first. Bucketing ignores the year: multi-year data collapses into the
// same twelve buckets.
type MonthlySeries [12]decimal.Decimal

// UpcomingBill pairs a bill with its projected next due date.
type UpcomingBill struct {
	Bill  core.Bill
	DueOn core.Date
}

type memo[T any] struct {
	valid    bool
	versions store.Versions
	value    T
}

// Engine evaluates the derived selectors against one store. Each selector
// caches its last result keyed on the version counters of the slices it
// reads and recomputes only on a counter mismatch.
type Engine struct {
	store *store.Store
	clock func() time.Time

	mu            sync.Mutex
	totalIncome   memo[decimal.Decimal]
	totalBills    memo[decimal.Decimal]
	totalExpenses memo[decimal.Decimal]
	totalIncomeTx memo[decimal.Decimal]
	byCategory    memo[[]CategoryAmount]
	monthly       memo[MonthlySeries]
	incomeVsBills memo[[]BreakdownSlice]
	upcoming      memo[[]UpcomingBill]
	upcomingDay   core.Date
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s, clock: time.Now}
}

// NewEngineAt pins the engine's clock, for deterministic projections.
func NewEngineAt(s *store.Store, clock func() time.Time) *Engine {
	return &Engine{store: s, clock: clock}
}

// TotalIncome sums all income sources. Income sources and income-type
// transactions are deliberately separate populations; they are never
// deduplicated against each other.
func (e *Engine) TotalIncome() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.totalIncome.valid && e.totalIncome.versions.Income == v.Income {
		return e.totalIncome.value
	}
	sum := decimal.Zero
	for _, i := range e.store.Income() {
		sum = sum.Add(i.Amount)
	}
	e.totalIncome = memo[decimal.Decimal]{valid: true, versions: v, value: sum}
	return sum
}

// TotalBills sums all bills, paid or not.
func (e *Engine) TotalBills() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.totalBills.valid && e.totalBills.versions.Bills == v.Bills {
		return e.totalBills.value
	}
	sum := decimal.Zero
	for _, b := range e.store.Bills() {
		sum = sum.Add(b.Amount)
	}
	e.totalBills = memo[decimal.Decimal]{valid: true, versions: v, value: sum}
	return sum
}

// TotalExpenses sums expense-type transactions.
func (e *Engine) TotalExpenses() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.totalExpenses.valid && e.totalExpenses.versions.Transactions == v.Transactions {
		return e.totalExpenses.value
	}
	sum := decimal.Zero
	for _, t := range e.store.Transactions() {
		if t.Type == core.ExpenseTransaction {
			sum = sum.Add(t.Amount)
		}
	}
	e.totalExpenses = memo[decimal.Decimal]{valid: true, versions: v, value: sum}
	return sum
}

// TotalIncomeTransactions sums income-type transactions. Not part of the
// remaining-balance identity, which counts income sources instead.
func (e *Engine) TotalIncomeTransactions() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.totalIncomeTx.valid && e.totalIncomeTx.versions.Transactions == v.Transactions {
		return e.totalIncomeTx.value
	}
	sum := decimal.Zero
	for _, t := range e.store.Transactions() {
		if t.Type == core.IncomeTransaction {
			sum = sum.Add(t.Amount)
		}
	}
	e.totalIncomeTx = memo[decimal.Decimal]{valid: true, versions: v, value: sum}
	return sum
}

// RemainingBalance is totalIncome − totalBills − totalExpenses. It may
// go negative.
func (e *Engine) RemainingBalance() decimal.Decimal {
	return e.TotalIncome().Sub(e.TotalBills()).Sub(e.TotalExpenses())
}

// SpendingByCategory groups expense transactions by their free-text
// category. The result is sorted by category name so repeated calls are
// stable; the category set is open and unknown names form their own
// bucket.
func (e *Engine) SpendingByCategory() []CategoryAmount {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.byCategory.valid && e.byCategory.versions.Transactions == v.Transactions {
		return e.byCategory.value
	}

	totals := make(map[string]decimal.Decimal)
	for _, t := range e.store.Transactions() {
		if t.Type != core.ExpenseTransaction {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryAmount{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	e.byCategory = memo[[]CategoryAmount]{valid: true, versions: v, value: out}
	return out
}

// MonthlySpending buckets expense transactions into the twelve calendar
// months by the month component of their date, ignoring the year.
func (e *Engine) MonthlySpending() MonthlySeries {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.monthly.valid && e.monthly.versions.Transactions == v.Transactions {
		return e.monthly.value
	}

	var series MonthlySeries
	for _, t := range e.store.Transactions() {
		if t.Type != core.ExpenseTransaction {
			continue
		}
		m := int(t.Date.Month()) - 1
		series[m] = series[m].Add(t.Amount)
	}

	e.monthly = memo[MonthlySeries]{valid: true, versions: v, value: series}
	return series
}

// IncomeVsBills returns one slice per bill followed by a leftover slice
// of max(0, totalIncome − totalBills). The leftover is floored at zero.
func (e *Engine) IncomeVsBills() []BreakdownSlice {
	income := e.TotalIncome()

	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.store.Versions()
	if e.incomeVsBills.valid &&
		e.incomeVsBills.versions.Bills == v.Bills &&
		e.incomeVsBills.versions.Income == v.Income {
		return e.incomeVsBills.value
	}

	bills := e.store.Bills()
	totalBills := decimal.Zero
	out := make([]BreakdownSlice, 0, len(bills)+1)
	for _, b := range bills {
		totalBills = totalBills.Add(b.Amount)
		out = append(out, BreakdownSlice{Name: b.Title, Amount: b.Amount})
	}

	leftover := income.Sub(totalBills)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}
	out = append(out, BreakdownSlice{Name: LeftoverSlice, Amount: leftover})

	e.incomeVsBills = memo[[]BreakdownSlice]{valid: true, versions: v, value: out}
	return out
}

// UpcomingBills projects every unpaid bill's next occurrence and returns
// the ones due within the next seven days inclusive, soonest first. Paid
// bills are excluded regardless of date; bills whose due date cannot be
// resolved are skipped.
func (e *Engine) UpcomingBills() []UpcomingBill {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := core.DateOf(e.clock())
	v := e.store.Versions()
	if e.upcoming.valid && e.upcoming.versions.Bills == v.Bills && e.upcomingDay.Equal(today.Time) {
		return e.upcoming.value
	}

	horizon := today.AddDays(7)
	var out []UpcomingBill
	for _, b := range e.store.Bills() {
		if b.IsPaid {
			continue
		}
		due, err := NextOccurrence(b, today)
		if err != nil {
			continue
		}
		if due.Before(today) || due.After(horizon) {
			continue
		}
		out = append(out, UpcomingBill{Bill: b, DueOn: due})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueOn.Before(out[j].DueOn) })

	e.upcoming = memo[[]UpcomingBill]{valid: true, versions: v, value: out}
	e.upcomingDay = today
	return out
}
