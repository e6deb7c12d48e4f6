package core

import "strings"

// Canonical calendar month names, ranked 0-11. Month rows store exactly one
// of these, uppercase.
var MonthNames = [12]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

// MonthRank returns the 0-based position of a canonical month name.
// Matching is case-insensitive and ignores surrounding whitespace.
func MonthRank(name string) (int, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, m := range MonthNames {
		if m == n {
			return i, nil
		}
	}
	return 0, ErrInvalidMonthName
}

// SortKey orders months chronologically: year×100 + rank. Invalid names sort
// first within their year.
func (m Month) SortKey() int {
	rank, err := MonthRank(m.Name)
	if err != nil {
		rank = 0
	}
	return m.Year*100 + rank
}

// NextPeriod returns the canonical name and year of the month following the
// given one. December wraps to January of the next year.
func NextPeriod(name string, year int) (string, int, error) {
	rank, err := MonthRank(name)
	if err != nil {
		return "", 0, err
	}
	next := (rank + 1) % 12
	if rank == 11 {
		year++
	}
	return MonthNames[next], year, nil
}
