package core

import (
	"errors"
	"strings"
	"time"
)

// MonthStatus is the lifecycle state of a ledger period.
// "provisioning" is a first-class status: the forward planning period that
// becomes active when the preceding month is closed.
type MonthStatus string

const (
	StatusProvisioning MonthStatus = "provisioning"
	StatusActive       MonthStatus = "active"
	StatusClosed       MonthStatus = "closed"
)

// SentinelMonthID marks an in-memory-only placeholder month that could not be
// persisted. Services must reject writes against it.
const SentinelMonthID int64 = -1

type (
	Money struct {
		Cents int64
	}

	// Month is the accounting unit over which revenues, expenses and
	// installment plans are tracked.
	Month struct {
		ID           int64
		Name         string // canonical uppercase month name, JANUARY..DECEMBER
		Year         int
		Status       MonthStatus
		FinalBalance *Money // set on close, cleared on reopen
		CreatedAt    time.Time
	}

	RevenueEntry struct {
		ID          int64
		MonthID     int64
		Description string
		Amount      Money
		Date        time.Time
		CreatedAt   time.Time
	}

	FixedExpense struct {
		ID          int64
		MonthID     int64
		Description string
		Amount      Money
		Paid        bool
		Date        time.Time
		CreatedAt   time.Time
	}

	// PixCreditExpense is a purchase paid by instant transfer in place of
	// credit, attracting a percentage surcharge. FinalAmount is derived and
	// persisted redundantly; it must always equal
	// OriginalAmount × (1 + SurchargePct/100) and is recomputed on every
	// write of the original amount or the percentage.
	PixCreditExpense struct {
		ID             int64
		MonthID        int64
		Description    string
		OriginalAmount Money
		SurchargePct   Percent
		FinalAmount    Money
		Paid           bool
		Date           time.Time
		CreatedAt      time.Time
	}

	CardStatementExpense struct {
		ID          int64
		MonthID     int64
		CardID      int64
		Description string
		Amount      Money
		Paid        bool
		Date        time.Time
		CreatedAt   time.Time
	}

	// Card is a credit card. AggregateOnly cards are not itemized: each
	// month carries a small set of fixed-label statement entries whose
	// amounts are edited in bulk.
	Card struct {
		ID            int64
		Name          string
		Color         string
		AggregateOnly bool
	}

	// InstallmentPlan tracks a purchase split into fixed periodic payments.
	// Current is 1-based; the plan is settled once Current exceeds Total.
	InstallmentPlan struct {
		ID                int64
		MonthID           int64
		Description       string
		InstallmentAmount Money
		Current           int
		Total             int
		CreatedAt         time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidMonthName = errors.New("invalid month name")
	ErrInvalidStatus    = errors.New("invalid month status")
	ErrInvalidProgress  = errors.New("invalid installment progress")
	ErrEmptyCardName    = errors.New("empty card name")
	ErrNotFound         = errors.New("not found")

	ErrMonthClosed      = errors.New("month is closed")
	ErrMonthNotActive   = errors.New("month is not active")
	ErrSentinelMonth    = errors.New("month is a read-only placeholder")
	ErrNextMonthMissing = errors.New("next month not found")
	ErrCardInUse        = errors.New("card is referenced by statement expenses")
)

func (s MonthStatus) IsValid() bool {
	switch s {
	case StatusProvisioning, StatusActive, StatusClosed:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Month) Validate() error {
	if _, err := MonthRank(m.Name); err != nil {
		return err
	}
	if !m.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Sentinel reports whether the month is a non-persistent placeholder.
func (m Month) Sentinel() bool {
	return m.ID == SentinelMonthID
}

func (r RevenueEntry) Validate() error {
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	return r.Amount.Validate()
}

func (e FixedExpense) Validate() error {
	if err := validateDescription(e.Description); err != nil {
		return err
	}
	return e.Amount.Validate()
}

func (e PixCreditExpense) Validate() error {
	if err := validateDescription(e.Description); err != nil {
		return err
	}
	if err := e.OriginalAmount.Validate(); err != nil {
		return err
	}
	if e.SurchargePct.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (e CardStatementExpense) Validate() error {
	if err := validateDescription(e.Description); err != nil {
		return err
	}
	return e.Amount.Validate()
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCardName
	}
	return nil
}

func (p InstallmentPlan) Validate() error {
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	if err := p.InstallmentAmount.Validate(); err != nil {
		return err
	}
	if p.Current < 1 || p.Total < 1 {
		return ErrInvalidProgress
	}
	return nil
}

func validateDescription(s string) error {
	if len(strings.TrimSpace(s)) == 0 {
		return ErrEmptyDescription
	}
	if len(s) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
