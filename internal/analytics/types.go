package analytics

import (
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// EventRow mirrors the analytics_events BigQuery schema. Rows are append
// only; there is no row identity beyond the tuple itself.
type EventRow struct {
	SessionID      string             `bigquery:"session_id" json:"session_id"`
	UserID         string             `bigquery:"user_id" json:"user_id"`
	EventType      string             `bigquery:"event_type" json:"event_type"`
	PagePath       string             `bigquery:"page_path" json:"page_path"`
	PageURL        *string            `bigquery:"page_url" json:"page_url,omitempty"`
	EventTimestamp time.Time          `bigquery:"event_timestamp" json:"event_timestamp"`
	EventData      cbigquery.NullJSON `bigquery:"event_data" json:"event_data,omitempty"`
}

// TypeCount is a per-event-type tally inside a dashboard bucket.
type TypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// DailyBucket aggregates one day of events for the dashboard.
type DailyBucket struct {
	Date   string      `json:"date"`
	Total  int64       `json:"total"`
	Events []TypeCount `json:"events"`
}
