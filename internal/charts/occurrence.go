// Package charts computes the derived dashboard values: totals, category
// breakdowns, the monthly series and the upcoming-bill projection. Every
// selector is pure over the store's collections and memoized on their
// version counters, so render-path callers can invoke them freely.
package charts

import (
	"fmt"

	"myfi/internal/core"
)

// OccurrenceResolver is the strategy interface for projecting a bill's
// next due date. Each bill type encapsulates its own calendar rule.
type OccurrenceResolver interface {
	// NextOccurrence returns the first due date on or after today.
	NextOccurrence(b core.Bill, today core.Date) (core.Date, error)
}

// MonthlyResolver projects monthly bills from their stored day-of-month.
type MonthlyResolver struct{}

// NextOccurrence builds the due date in today's month; if that day has
// already passed it moves to the same day in the next month. A due day
// exceeding the length of the target month rolls into the following
// month through date normalization (the 31st of April becomes May 1st).
func (MonthlyResolver) NextOccurrence(b core.Bill, today core.Date) (core.Date, error) {
	day, err := b.DayOfMonth()
	if err != nil {
		return core.Date{}, err
	}
	next := core.NewDate(today.Year(), int(today.Month()), day)
	if next.Before(today) {
		next = core.NewDate(today.Year(), int(today.Month())+1, day)
	}
	return next, nil
}

// OneTimeResolver reads the literal stored date of a one-time bill.
type OneTimeResolver struct{}

func (OneTimeResolver) NextOccurrence(b core.Bill, _ core.Date) (core.Date, error) {
	return core.ParseDate(b.DueDate)
}

var occurrenceResolvers = map[core.BillType]OccurrenceResolver{
	core.BillMonthly: MonthlyResolver{},
	core.BillOneTime: OneTimeResolver{},
}

// NextOccurrence dispatches to the resolver for the bill's type.
func NextOccurrence(b core.Bill, today core.Date) (core.Date, error) {
	r, ok := occurrenceResolvers[b.Type]
	if !ok {
		return core.Date{}, fmt.Errorf("unknown bill type: %s", b.Type)
	}
	return r.NextOccurrence(b, today)
}
