package models

// PeriodStatus indicates the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// Period is the database representation of an accounting month.
// Unique on (year, month).
type Period struct {
	PeriodID     int64        `json:"periodID"`
	Year         int          `json:"year"`
	Month        int          `json:"month"`
	Status       PeriodStatus `json:"status"`
	FxRateLocked bool         `json:"fxRateLocked"`
	AuditFields
}
