package services

import (
	"context"
	"errors"
	"log/slog"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

const (
	// PixSurchargeKey is the settings row holding the percentage added to
	// pix-in-place-of-credit purchases.
	PixSurchargeKey = "pix_surcharge_percent"

	defaultPixSurcharge = "5.0"
)

// Settings reads and writes the key/value configuration table.
type Settings struct {
	store store.SettingsStore
}

func NewSettings(st store.SettingsStore) *Settings {
	return &Settings{store: st}
}

// PixSurcharge returns the configured surcharge percentage, falling back to
// the default when the row is missing or unparseable.
func (s *Settings) PixSurcharge(ctx context.Context) core.Percent {
	raw, err := s.store.GetSetting(ctx, PixSurchargeKey)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			slog.ErrorContext(ctx, "Failed to read pix surcharge setting", "error", err)
		}
		raw = defaultPixSurcharge
	}
	pct, err := core.PercentFromString(raw)
	if err != nil {
		slog.WarnContext(ctx, "Invalid pix surcharge setting, using default",
			"value", raw, "default", defaultPixSurcharge)
		pct, _ = core.PercentFromString(defaultPixSurcharge)
	}
	return pct
}

// SetPixSurcharge stores a new surcharge percentage.
func (s *Settings) SetPixSurcharge(ctx context.Context, pct core.Percent) error {
	if pct.IsNegative() {
		return core.ErrInvalidAmount
	}
	return s.store.SetSetting(ctx, PixSurchargeKey, pct.String())
}
