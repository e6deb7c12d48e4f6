package core

// Installment settlement math.
//
// Current is the next unpaid installment: a plan with Current == Total still
// owes exactly one installment, and a plan whose Current has moved past Total
// is settled. The competing reading that treats Current as already paid
// differs by one installment; the definition below is the authoritative one
// and is pinned by tests.

// Settled reports whether every installment of the plan has been paid.
func (p InstallmentPlan) Settled() bool {
	return p.Current > p.Total
}

// RemainingCount returns how many installments are still unpaid, clamped at
// zero for settled plans.
func (p InstallmentPlan) RemainingCount() int {
	paid := p.Current - 1
	if paid < 0 {
		paid = 0
	}
	remaining := p.Total - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AmountOwed returns the amount still required to fully settle the plan:
// remaining installments × installment amount.
func (p InstallmentPlan) AmountOwed() Money {
	return Money{Cents: p.InstallmentAmount.Cents * int64(p.RemainingCount())}
}

// CarriesForward reports whether the plan must be rolled into the next month
// when its owning month is closed. Plans on their final installment
// (Current == Total) finish with the closing month and are not carried.
func (p InstallmentPlan) CarriesForward() bool {
	return p.Current < p.Total
}

// NextMonthPlan derives the carried-forward copy of the plan for the given
// month: same description, amount and total, progress advanced by one. The
// original row is left untouched as historical record.
func (p InstallmentPlan) NextMonthPlan(monthID int64) InstallmentPlan {
	return InstallmentPlan{
		MonthID:           monthID,
		Description:       p.Description,
		InstallmentAmount: p.InstallmentAmount,
		Current:           p.Current + 1,
		Total:             p.Total,
	}
}
