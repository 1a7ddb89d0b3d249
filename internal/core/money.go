// Package core holds the domain records shared by the store, the derived
// selectors, the persistence bridge and the bank feed importer.
//
// Monetary amounts are decimal values (github.com/shopspring/decimal); the
// sign of a transaction lives in its Type, never in the amount itself.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FromMinorUnits converts a signed minor-unit integer (cents) into a
// non-negative decimal amount. The bank feed reports amounts this way;
// -550 becomes 5.50.
func FromMinorUnits(v int64) decimal.Decimal {
	return decimal.NewFromInt(v).Abs().Div(hundred)
}

// ParseAmount parses a user-entered amount string. Both dot and comma
// decimal separators are accepted; negative values are rejected because
// amounts are stored non-negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
