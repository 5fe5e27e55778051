package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveOperation("recommend", "ok", time.Millisecond)
	m.IncGatewayError("get_all_courses")
	m.SetBreakerState("catalog", 2)
	m.IncCacheLookup("courses", true)
	m.ApiInflightInc()
	m.ApiInflightDec()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("nil metrics handler: got %d", rec.Code)
	}
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.ObserveOperation("forecast", "ok", 20*time.Millisecond)
	m.ObserveOperation("forecast", "ok", 30*time.Millisecond)
	m.IncCacheLookup("courses", false)
	m.SetBreakerState("catalog", 1)

	if got := promtest.ToFloat64(m.opTotal.WithLabelValues("forecast", "ok")); got != 2 {
		t.Fatalf("operations_total: got %v", got)
	}
	if got := promtest.ToFloat64(m.cacheLookups.WithLabelValues("courses", "miss")); got != 1 {
		t.Fatalf("cache misses: got %v", got)
	}
	if got := promtest.ToFloat64(m.breakerState.WithLabelValues("catalog")); got != 1 {
		t.Fatalf("breaker state: got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "recsys_operations_total") {
		t.Fatalf("exposition missing operations counter")
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc , broken, =x, team=ml ")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "ml" {
		t.Fatalf("headers: %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("empty headers should be nil")
	}
}
