package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "12", 1200, false},
		{"dot decimal", "12.34", 1234, false},
		{"comma decimal", "12,34", 1234, false},
		{"single decimal digit", "12.3", 1230, false},
		{"third digit rounds up", "12.345", 1235, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"leading dot", ".50", 50, false},
		{"whitespace", "  7,25  ", 725, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"plus sign", "+1", 0, true},
		{"letters", "abc", 0, true},
		{"two separators", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplySurcharge(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		pct    string
		want   int64
	}{
		{"five percent", 100000, "5", 105000},
		{"zero percent", 100000, "0", 100000},
		{"fractional percent", 100000, "2.5", 102500},
		{"rounds half up", 1001, "5", 1051}, // 1051.05 → 1051
		{"small amount", 10, "5", 11},       // 10.5 rounds up
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, err := PercentFromString(tt.pct)
			if err != nil {
				t.Fatalf("PercentFromString(%q) error = %v", tt.pct, err)
			}
			got := ApplySurcharge(Money{Cents: tt.amount}, pct)
			if got.Cents != tt.want {
				t.Errorf("ApplySurcharge(%d, %s%%) = %d, want %d", tt.amount, tt.pct, got.Cents, tt.want)
			}
		})
	}
}

func TestPercentFromString(t *testing.T) {
	pct, err := PercentFromString("7,5")
	if err != nil {
		t.Fatalf("PercentFromString() error = %v", err)
	}
	if pct.String() != "7.5" {
		t.Errorf("comma input parsed to %s, want 7.5", pct)
	}

	if _, err := PercentFromString("abc"); err == nil {
		t.Error("PercentFromString accepted a non-numeric value")
	}
}
