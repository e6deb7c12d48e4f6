package amqp

import (
	"encoding/json"
	"time"

	"mdfinancas/internal/services"
)

// MonthClosedMessage carries a closed month's identity and balance. The
// worker re-reads the month's rows from the database before exporting, so the
// payload stays small.
type MonthClosedMessage struct {
	MonthID      int64     `json:"month_id"`
	Name         string    `json:"name"`
	Year         int       `json:"year"`
	FinalBalance int64     `json:"final_balance_cents"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewMonthClosedMessage(ev services.MonthClosedEvent) *MonthClosedMessage {
	return &MonthClosedMessage{
		MonthID:      ev.MonthID,
		Name:         ev.Name,
		Year:         ev.Year,
		FinalBalance: ev.FinalBalance,
		Timestamp:    time.Now(),
	}
}

func (m *MonthClosedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MonthClosedMessageFromJSON(data []byte) (*MonthClosedMessage, error) {
	var msg MonthClosedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
