// Package period handles the yyyyMM integer encoding used to scope
// balances and payments to a calendar month.
package period

import "time"

// Current returns the current UTC month encoded as yyyyMM.
func Current() int {
	now := time.Now().UTC()
	return now.Year()*100 + int(now.Month())
}

// IsValid reports whether p is a well-formed yyyyMM period: six digits,
// year 2000-9999, month 01-12.
func IsValid(p int) bool {
	if p < 100000 || p > 999999 {
		return false
	}
	year := p / 100
	month := p % 100
	return year >= 2000 && year <= 9999 && month >= 1 && month <= 12
}
