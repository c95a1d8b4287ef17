package analytics

import (
	"encoding/json"
	"time"
)

// IngestInput carries one incoming event. Client-supplied timestamps are
// ignored; the server assigns its own.
type IngestInput struct {
	SessionID string          `json:"session_id" validate:"required"`
	UserID    string          `json:"user_id" validate:"required"`
	EventType string          `json:"event_type" validate:"required"`
	PagePath  string          `json:"page_path" validate:"required"`
	PageURL   *string         `json:"page_url"`
	Data      json.RawMessage `json:"data"`
}

// ListFilters narrows a read. All provided filters are combined with AND.
type ListFilters struct {
	UserID           string
	SessionID        string
	EventType        string
	PagePathContains string
	From             *time.Time
	To               *time.Time
	Limit            int
}

// EraseFilters selects rows for bulk deletion. At least one field must be
// set; BeforeDate matches strictly older rows.
type EraseFilters struct {
	UserID     string  `json:"user_id"`
	SessionID  string  `json:"session_id"`
	BeforeDate *string `json:"before_date"`
}
