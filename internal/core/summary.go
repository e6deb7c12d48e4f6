package core

import "time"

// EntryKind tags rows in the recent-activity feed with their category.
type EntryKind string

const (
	KindRevenue EntryKind = "revenue"
	KindFixed   EntryKind = "fixed"
	KindPix     EntryKind = "pix"
	KindCard    EntryKind = "card"
)

// RecentEntry is one row of the cross-category activity feed. Amount carries
// the effective value (final amount for pix entries).
type RecentEntry struct {
	Kind        EntryKind
	Description string
	Amount      Money
	Date        time.Time
	CreatedAt   time.Time
}

// Occurred returns the feed ordering timestamp: creation time when recorded,
// otherwise the transaction date.
func (e RecentEntry) Occurred() time.Time {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt
	}
	return e.Date
}

// CardTotal is the statement spend of a single card within a month.
type CardTotal struct {
	CardID   int64
	CardName string
	Total    Money
}

// MonthSummary is the aggregated view of a single ledger period.
type MonthSummary struct {
	MonthID       int64
	TotalRevenue  Money
	TotalExpenses Money
	NetBalance    Money
	Recent        []RecentEntry
	PerCard       []CardTotal
}
