package entity

import "time"

type AlertType string

const (
	AlertTypeBotFailure  AlertType = "bot_failure"
	AlertTypeSystemAlert AlertType = "system_alert"
	AlertTypeUserReport  AlertType = "user_report"
	AlertTypeMaintenance AlertType = "maintenance"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is an operator-facing record of an operational failure. Records are
// append-only; IsRead flips false -> true exactly once via MarkRead.
type Alert struct {
	ID          string         `json:"id"`
	Type        AlertType      `json:"type"`
	Severity    AlertSeverity  `json:"severity"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	SourceBotID string         `json:"source_bot_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	IsRead      bool           `json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	ReadBy      string         `json:"read_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
