package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	cbigquery "cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/pixelcart/pixelcart-backend/pkg/bigquery"
	"github.com/pixelcart/pixelcart-backend/pkg/pagination"
)

// Store is the persistence surface behind the analytics service.
type Store interface {
	InsertEvent(ctx context.Context, row EventRow) error
	ListEvents(ctx context.Context, filters ListFilters) ([]EventRow, error)
	CountEvents(ctx context.Context, userID, sessionID string, before *time.Time) (int64, error)
	DeleteEvents(ctx context.Context, userID, sessionID string, before *time.Time) error
	DashboardCounts(ctx context.Context, start, end time.Time) ([]DailyBucket, error)
}

type bigqueryStore struct {
	client *bigquery.Client
}

// NewStore builds a BigQuery-backed event store.
func NewStore(client *bigquery.Client) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("bigquery client required")
	}
	return &bigqueryStore{client: client}, nil
}

func (s *bigqueryStore) InsertEvent(ctx context.Context, row EventRow) error {
	return s.client.InsertRows(ctx, []any{&row})
}

func (s *bigqueryStore) ListEvents(ctx context.Context, filters ListFilters) ([]EventRow, error) {
	sql, params := buildListQuery(s.client.EventsTableRef(), filters)
	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	var rows []EventRow
	for {
		var row EventRow
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading event row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *bigqueryStore) CountEvents(ctx context.Context, userID, sessionID string, before *time.Time) (int64, error) {
	clause, params := buildEraseClause(userID, sessionID, before)
	sql := fmt.Sprintf("SELECT COUNT(*) AS value FROM %s WHERE %s", s.client.EventsTableRef(), clause)

	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	var row struct {
		Value int64 `bigquery:"value"`
	}
	if err := iter.Next(&row); err != nil {
		if err == iterator.Done {
			return 0, nil
		}
		return 0, fmt.Errorf("reading count row: %w", err)
	}
	return row.Value, nil
}

func (s *bigqueryStore) DeleteEvents(ctx context.Context, userID, sessionID string, before *time.Time) error {
	clause, params := buildEraseClause(userID, sessionID, before)
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", s.client.EventsTableRef(), clause)
	if err := s.client.Exec(ctx, sql, params); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}
	return nil
}

const dashboardSQL = `
SELECT
  FORMAT_DATE('%%F', DATE(event_timestamp)) AS day,
  event_type,
  COUNT(*) AS value
FROM %s
WHERE event_timestamp BETWEEN @start AND @end
GROUP BY day, event_type
ORDER BY day ASC, event_type ASC
`

func (s *bigqueryStore) DashboardCounts(ctx context.Context, start, end time.Time) ([]DailyBucket, error) {
	params := []cbigquery.QueryParameter{
		{Name: "start", Value: start},
		{Name: "end", Value: end},
	}
	iter, err := s.client.Query(ctx, fmt.Sprintf(dashboardSQL, s.client.EventsTableRef()), params)
	if err != nil {
		return nil, fmt.Errorf("query dashboard: %w", err)
	}

	var buckets []DailyBucket
	for {
		var row struct {
			Day       string `bigquery:"day"`
			EventType string `bigquery:"event_type"`
			Value     int64  `bigquery:"value"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading dashboard row: %w", err)
		}
		if len(buckets) == 0 || buckets[len(buckets)-1].Date != row.Day {
			buckets = append(buckets, DailyBucket{Date: row.Day})
		}
		bucket := &buckets[len(buckets)-1]
		bucket.Total += row.Value
		bucket.Events = append(bucket.Events, TypeCount{EventType: row.EventType, Count: row.Value})
	}
	return buckets, nil
}

// buildListQuery assembles the filtered read. Every user value travels as a
// bound parameter; only column names and the normalized limit are templated
// into the SQL text.
func buildListQuery(tableRef string, filters ListFilters) (string, []cbigquery.QueryParameter) {
	clauses := []string{"TRUE"}
	var params []cbigquery.QueryParameter

	if filters.UserID != "" {
		clauses = append(clauses, "user_id = @user_id")
		params = append(params, cbigquery.QueryParameter{Name: "user_id", Value: filters.UserID})
	}
	if filters.SessionID != "" {
		clauses = append(clauses, "session_id = @session_id")
		params = append(params, cbigquery.QueryParameter{Name: "session_id", Value: filters.SessionID})
	}
	if filters.EventType != "" {
		clauses = append(clauses, "event_type = @event_type")
		params = append(params, cbigquery.QueryParameter{Name: "event_type", Value: filters.EventType})
	}
	if filters.PagePathContains != "" {
		clauses = append(clauses, "STRPOS(page_path, @page_path) > 0")
		params = append(params, cbigquery.QueryParameter{Name: "page_path", Value: filters.PagePathContains})
	}
	if filters.From != nil {
		clauses = append(clauses, "event_timestamp >= @from")
		params = append(params, cbigquery.QueryParameter{Name: "from", Value: *filters.From})
	}
	if filters.To != nil {
		clauses = append(clauses, "event_timestamp <= @to")
		params = append(params, cbigquery.QueryParameter{Name: "to", Value: *filters.To})
	}

	limit := pagination.Normalize(filters.Limit, pagination.EventsDefaultLimit)
	sql := fmt.Sprintf(
		"SELECT session_id, user_id, event_type, page_path, page_url, event_timestamp, event_data FROM %s WHERE %s ORDER BY event_timestamp DESC LIMIT %d",
		tableRef,
		strings.Join(clauses, " AND "),
		limit,
	)
	return sql, params
}

func buildEraseClause(userID, sessionID string, before *time.Time) (string, []cbigquery.QueryParameter) {
	var clauses []string
	var params []cbigquery.QueryParameter

	if userID != "" {
		clauses = append(clauses, "user_id = @user_id")
		params = append(params, cbigquery.QueryParameter{Name: "user_id", Value: userID})
	}
	if sessionID != "" {
		clauses = append(clauses, "session_id = @session_id")
		params = append(params, cbigquery.QueryParameter{Name: "session_id", Value: sessionID})
	}
	if before != nil {
		clauses = append(clauses, "event_timestamp < @before")
		params = append(params, cbigquery.QueryParameter{Name: "before", Value: *before})
	}
	return strings.Join(clauses, " AND "), params
}
