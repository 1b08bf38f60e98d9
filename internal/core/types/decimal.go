// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Amount represents a reported monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors on regulatory figures.
type Amount = decimal.Decimal

// NewAmountFromString creates an Amount from a string.
// This is the preferred constructor for values read from reports.
func NewAmountFromString(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

// MustAmount creates an Amount from a string, panics on error.
// Use only for constants and tests.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroAmount returns the zero Amount value.
func ZeroAmount() Amount {
	return decimal.Zero
}

// Rate represents an exchange rate. Same precision requirements as Amount;
// kept as a separate alias so signatures document intent.
type Rate = decimal.Decimal
