package core

import (
	"errors"
	"strings"
	"testing"
)

func TestMonthStatus_IsValid(t *testing.T) {
	for _, s := range []MonthStatus{StatusProvisioning, StatusActive, StatusClosed} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if MonthStatus("archived").IsValid() {
		t.Error("unknown status reported valid")
	}
}

func TestPixCreditExpense_Validate(t *testing.T) {
	valid := PixCreditExpense{
		Description:    "sofa",
		OriginalAmount: Money{Cents: 100000},
		SurchargePct:   PercentFromFloat(5),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	negative := valid
	negative.SurchargePct = PercentFromFloat(-5)
	if err := negative.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative surcharge error = %v, want ErrInvalidAmount", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := (RevenueEntry{Description: "\t ", Amount: Money{Cents: 1}}).Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("blank description error = %v, want ErrEmptyDescription", err)
	}

	long := RevenueEntry{Description: strings.Repeat("x", 201), Amount: Money{Cents: 1}}
	if err := long.Validate(); err == nil {
		t.Error("201-character description accepted")
	}

	atLimit := RevenueEntry{Description: strings.Repeat("x", 200), Amount: Money{Cents: 1}}
	if err := atLimit.Validate(); err != nil {
		t.Errorf("200-character description rejected: %v", err)
	}
}

func TestMonth_Sentinel(t *testing.T) {
	if (Month{ID: 1}).Sentinel() {
		t.Error("persisted month reported as sentinel")
	}
	if !(Month{ID: SentinelMonthID}).Sentinel() {
		t.Error("sentinel month not detected")
	}
}
