package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRPC("/tripsplit.v1.LedgerService/GetSummary", "ok", 0.01)
	m.ExpenseRecorded()
	m.ExpenseRecorded()
	m.MemberRegistered()
	m.PlanComputed(3, true)
	m.PlanComputed(0, false)

	if got := testutil.ToFloat64(m.Expenses); got != 2 {
		t.Errorf("expenses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Unbalanced); got != 1 {
		t.Errorf("unbalanced = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues("/tripsplit.v1.LedgerService/GetSummary", "ok")); got != 1 {
		t.Errorf("rpc requests = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "tripsplit_members_registered_total 1") {
		t.Errorf("exposition missing member counter:\n%s", body)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	// None of these may panic.
	m.ObserveRPC("p", "ok", 1)
	m.ExpenseRecorded()
	m.MemberRegistered()
	m.PlanComputed(1, false)
}
