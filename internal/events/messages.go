package events

import (
	"encoding/json"
	"time"
)

// EntryLoggedMessage announces a freshly appended ledger entry.
type EntryLoggedMessage struct {
	LoggedAt  string    `json:"logged_at"` // ledger timestamp, YYYY-MM-DD HH:MM
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *EntryLoggedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportSentMessage announces a completed daily report.
type ReportSentMessage struct {
	Day       string    `json:"day"` // YYYY-MM-DD
	Total     string    `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *ReportSentMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
