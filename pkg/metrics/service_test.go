package metrics

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, svc *Service, name string) *dto.MetricFamily {
	t.Helper()
	families, err := svc.Gather().Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() == name {
			return fam
		}
	}
	return nil
}

func TestDomainCountersIncrement(t *testing.T) {
	svc := NewService("orders")

	svc.IncOrdersCreated()
	svc.IncOrdersCreated()
	svc.AddEventsErased(3)
	svc.AddEventsErased(-1) // ignored

	created := findMetric(t, svc, "orders_created_total")
	require.NotNil(t, created)
	require.Equal(t, float64(2), created.GetMetric()[0].GetCounter().GetValue())

	erased := findMetric(t, svc, "analytics_events_erased_total")
	require.NotNil(t, erased)
	require.Equal(t, float64(3), erased.GetMetric()[0].GetCounter().GetValue())
}

func TestServiceLabelApplied(t *testing.T) {
	svc := NewService("catalog")
	svc.IncGamesCreated()

	fam := findMetric(t, svc, "games_created_total")
	require.NotNil(t, fam)

	var found bool
	for _, label := range fam.GetMetric()[0].GetLabel() {
		if label.GetName() == "service" && label.GetValue() == "catalog" {
			found = true
		}
	}
	require.True(t, found, "expected service label on every metric")
}

func TestConcurrentIncrementsAreSafe(t *testing.T) {
	svc := NewService("analytics")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.IncEventsIngested()
		}()
	}
	wg.Wait()

	fam := findMetric(t, svc, "analytics_events_ingested_total")
	require.NotNil(t, fam)
	require.Equal(t, float64(50), fam.GetMetric()[0].GetCounter().GetValue())
}

func TestHandlerServesTextExposition(t *testing.T) {
	svc := NewService("orders")
	svc.IncRequest("POST", "2xx")

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "http_requests_total"), "exposition should include request counter")
}

func TestNilServiceIsInert(t *testing.T) {
	var svc *Service
	svc.IncOrdersCreated()
	svc.IncRequest("GET", "2xx")
	require.NotNil(t, svc.Handler())
}
