package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	cbigquery "cloud.google.com/go/bigquery"

	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
)

const defaultDashboardDays = 30

// Counters is the observability surface the service increments.
type Counters interface {
	IncEventsIngested()
	AddEventsErased(n int64)
}

// EraseResult reports how many rows matched an erase request. The count is
// taken before deletion, so concurrent inserts between the two statements
// are not reflected.
type EraseResult struct {
	Deleted int64 `json:"deleted"`
}

// Service exposes the analytics operations used by the HTTP layer.
type Service interface {
	Ingest(ctx context.Context, input IngestInput) (*EventRow, error)
	List(ctx context.Context, filters ListFilters) ([]EventRow, error)
	Erase(ctx context.Context, filters EraseFilters) (*EraseResult, error)
	Dashboard(ctx context.Context, days int) ([]DailyBucket, error)
}

type service struct {
	store    Store
	counters Counters
	nowFn    func() time.Time
}

// NewService builds the analytics service with its required dependencies.
func NewService(store Store, counters Counters) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("analytics store required")
	}
	if counters == nil {
		return nil, fmt.Errorf("analytics counters required")
	}
	return &service{store: store, counters: counters, nowFn: time.Now}, nil
}

// Ingest validates the event and appends it with a server-assigned
// second-precision timestamp. Client timestamps are never trusted.
func (s *service) Ingest(ctx context.Context, input IngestInput) (*EventRow, error) {
	if err := validateIngestInput(input); err != nil {
		return nil, err
	}

	row := EventRow{
		SessionID:      strings.TrimSpace(input.SessionID),
		UserID:         strings.TrimSpace(input.UserID),
		EventType:      strings.TrimSpace(input.EventType),
		PagePath:       strings.TrimSpace(input.PagePath),
		PageURL:        input.PageURL,
		EventTimestamp: s.nowFn().UTC().Truncate(time.Second),
	}
	if len(input.Data) > 0 {
		var payload any
		if err := json.Unmarshal(input.Data, &payload); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "data must be valid JSON")
		}
		row.EventData = cbigquery.NullJSON{JSONVal: string(input.Data), Valid: true}
	}

	if err := s.store.InsertEvent(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert event")
	}

	s.counters.IncEventsIngested()
	return &row, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]EventRow, error) {
	if filters.From != nil && filters.To != nil && filters.To.Before(*filters.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}
	rows, err := s.store.ListEvents(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return rows, nil
}

// Erase deletes every row matching the filters and reports the pre-delete
// match count. An empty filter set is rejected so the whole table can never
// be wiped by accident.
func (s *service) Erase(ctx context.Context, filters EraseFilters) (*EraseResult, error) {
	userID := strings.TrimSpace(filters.UserID)
	sessionID := strings.TrimSpace(filters.SessionID)

	var before *time.Time
	if filters.BeforeDate != nil {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*filters.BeforeDate))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "before_date must be formatted YYYY-MM-DD")
		}
		parsed = parsed.UTC()
		before = &parsed
	}

	if userID == "" && sessionID == "" && before == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one of user_id, session_id, before_date is required")
	}

	count, err := s.store.CountEvents(ctx, userID, sessionID, before)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count events")
	}
	if err := s.store.DeleteEvents(ctx, userID, sessionID, before); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete events")
	}

	s.counters.AddEventsErased(count)
	return &EraseResult{Deleted: count}, nil
}

func (s *service) Dashboard(ctx context.Context, days int) ([]DailyBucket, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	end := s.nowFn().UTC()
	start := end.AddDate(0, 0, -days)

	buckets, err := s.store.DashboardCounts(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query dashboard")
	}
	return buckets, nil
}

func validateIngestInput(input IngestInput) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(input.SessionID) == "" {
		missing = append(missing, "session_id")
	}
	if strings.TrimSpace(input.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(input.EventType) == "" {
		missing = append(missing, "event_type")
	}
	if strings.TrimSpace(input.PagePath) == "" {
		missing = append(missing, "page_path")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}
