package domain

import (
	"fmt"
	"time"
)

// PeriodStatus indicates the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// Period represents one accounting month. Created OPEN; the only transition
// is OPEN -> LOCKED and there is no unlock path.
type Period struct {
	PeriodID     int64        `json:"periodID"` // Primary Key (serial)
	Year         int          `json:"year"`
	Month        int          `json:"month"` // 1-12
	Status       PeriodStatus `json:"status"`
	FxRateLocked bool         `json:"fxRateLocked"`
	AuditFields
}

// Label renders the period as "{year}-{month}", e.g. "2024-7".
func (p Period) Label() string {
	return fmt.Sprintf("%d-%d", p.Year, p.Month)
}

// Window returns the [start, end) date range covered by the period.
func (p Period) Window() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether the given date falls inside the period window.
func (p Period) Contains(date time.Time) bool {
	start, end := p.Window()
	d := date.UTC()
	return !d.Before(start) && d.Before(end)
}
