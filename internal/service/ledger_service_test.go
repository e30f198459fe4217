package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (*api.LedgerServiceClient, *metrics.Metrics) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	svc := NewLedgerService(NewLedger(store, m), "INR")
	path, handler := api.NewLedgerServiceHandler(svc,
		connect.WithInterceptors(middleware.LoggingInterceptor(m)))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return api.NewLedgerServiceClient(http.DefaultClient, server.URL), m
}

func addMembers(t *testing.T, client *api.LedgerServiceClient, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := client.AddMember(context.Background(), connect.NewRequest(&api.AddMemberRequest{Name: name}))
		if err != nil {
			t.Fatalf("AddMember(%s) failed: %v", name, err)
		}
	}
}

func addExpense(t *testing.T, client *api.LedgerServiceClient, req *api.AddExpenseRequest) *api.Expense {
	t.Helper()
	resp, err := client.AddExpense(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("AddExpense(%s) failed: %v", req.Title, err)
	}
	return resp.Msg.Expense
}

func getSummary(t *testing.T, client *api.LedgerServiceClient) *api.GetSummaryResponse {
	t.Helper()
	resp, err := client.GetSummary(context.Background(), connect.NewRequest(&api.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	return resp.Msg
}

func TestAddMember(t *testing.T) {
	client, m := setupTestServer(t)
	ctx := context.Background()

	addMembers(t, client, "Alice", " Bob ")

	resp, err := client.ListMembers(ctx, connect.NewRequest(&api.ListMembersRequest{}))
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	var names []string
	for _, member := range resp.Msg.Members {
		names = append(names, member.Name)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, names); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}

	_, err = client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{Name: "Alice"}))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("expected CodeAlreadyExists for duplicate, got %v", err)
	}

	_, err = client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{Name: "  "}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument for blank name, got %v", err)
	}

	counter := m.RPCRequests.WithLabelValues(api.LedgerServiceAddMemberProcedure, "already_exists")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Errorf("already_exists calls: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.Members); got != 2 {
		t.Errorf("members metric: expected 2, got %v", got)
	}
}

func TestGetSummary_EmptyHistory(t *testing.T) {
	client, _ := setupTestServer(t)
	addMembers(t, client, "A", "B", "C")

	summary := getSummary(t, client)

	if summary.ExpenseCount != 0 {
		t.Errorf("expense count: expected 0, got %d", summary.ExpenseCount)
	}
	if len(summary.Balances) != 3 {
		t.Fatalf("balances: expected 3, got %d", len(summary.Balances))
	}
	for _, b := range summary.Balances {
		if !b.Paid.IsZero() || !b.Owed.IsZero() || !b.Balance.IsZero() {
			t.Errorf("%s: expected zero balance, got %+v", b.Member, b)
		}
	}
	if !summary.Settled {
		t.Error("expected settled summary")
	}
	if diff := cmp.Diff([]string{"All settled up ✅"}, summary.Statements); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSummary_SinglePayerEvenSplit(t *testing.T) {
	client, _ := setupTestServer(t)
	addMembers(t, client, "A", "B", "C")

	addExpense(t, client, &api.AddExpenseRequest{
		Title:       "Dinner",
		Location:    "Goa",
		Amount:      amt("30"),
		PaidBy:      models.Shares{share("A", "30")},
		SplitEvenly: true,
	})

	summary := getSummary(t, client)

	wantBalances := map[string]string{"A": "20", "B": "-10", "C": "-10"}
	for _, b := range summary.Balances {
		if !b.Balance.Equal(amt(wantBalances[b.Member])) {
			t.Errorf("%s balance: expected %s, got %s", b.Member, wantBalances[b.Member], b.Balance)
		}
	}
	want := []string{"B ➡️ ₹10.00 ➡️ A", "C ➡️ ₹10.00 ➡️ A"}
	if diff := cmp.Diff(want, summary.Statements); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
	if !summary.TotalExpense.Equal(amt("30")) {
		t.Errorf("total expense: expected 30, got %s", summary.TotalExpense)
	}
}

func TestGetSummary_MultiPayer(t *testing.T) {
	client, _ := setupTestServer(t)
	addMembers(t, client, "A", "B", "C")

	addExpense(t, client, &api.AddExpenseRequest{
		Title:        "Houseboat",
		Location:     "Alleppey",
		Amount:       amt("100"),
		PaidBy:       models.Shares{share("A", "60"), share("B", "40")},
		Distribution: models.Shares{share("A", "50"), share("B", "25"), share("C", "25")},
	})

	summary := getSummary(t, client)

	want := []*api.Transfer{
		{From: "C", To: "B", Amount: amt("15")},
		{From: "C", To: "A", Amount: amt("10")},
	}
	if diff := cmp.Diff(want, summary.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if summary.Settled {
		t.Error("expected unsettled summary")
	}
}

func TestGetSummary_ExpensesCancelOut(t *testing.T) {
	client, _ := setupTestServer(t)
	addMembers(t, client, "A", "B")

	addExpense(t, client, &api.AddExpenseRequest{
		Title: "Tickets", Location: "Station", Amount: amt("50"),
		PaidBy: models.Shares{share("A", "50")}, Distribution: models.Shares{share("B", "50")},
	})
	addExpense(t, client, &api.AddExpenseRequest{
		Title: "Lunch", Location: "Station", Amount: amt("50"),
		PaidBy: models.Shares{share("B", "50")}, Distribution: models.Shares{share("A", "50")},
	})

	summary := getSummary(t, client)
	if !summary.Settled || len(summary.Transfers) != 0 {
		t.Errorf("expected settled summary, got %+v", summary)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	_, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		Title: "Dinner", Location: "Goa", Amount: amt("30"),
		PaidBy: models.Shares{share("A", "30")}, SplitEvenly: true,
	}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected CodeFailedPrecondition without members, got %v", err)
	}

	addMembers(t, client, "A", "B")

	_, err = client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		Title: "Dinner", Location: "Goa", Amount: amt("30"),
		PaidBy:       models.Shares{share("A", "30")},
		Distribution: models.Shares{share("A", "10"), share("B", "10")},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("expected CodeInvalidArgument for mismatch, got %v", err)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Message() == "" {
		t.Errorf("expected a descriptive error message, got %v", err)
	}

	list, err := client.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 0 {
		t.Errorf("rejected expenses must not be stored, got %d", len(list.Msg.Expenses))
	}
}

func TestListExpenses(t *testing.T) {
	client, m := setupTestServer(t)
	addMembers(t, client, "A", "B")

	first := addExpense(t, client, &api.AddExpenseRequest{
		Title: "Fuel", Location: "NH66", Amount: amt("45.50"),
		PaidBy: models.Shares{share("B", "45.50")}, SplitEvenly: true,
	})
	addExpense(t, client, &api.AddExpenseRequest{
		Title: "Toll", Location: "NH66", Amount: amt("10"),
		PaidBy: models.Shares{share("A", "10")}, Distribution: models.Shares{share("B", "10")},
	})

	resp, err := client.ListExpenses(context.Background(), connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(resp.Msg.Expenses))
	}
	if diff := cmp.Diff(first, resp.Msg.Expenses[0]); diff != "" {
		t.Errorf("first expense mismatch (-added +listed):\n%s", diff)
	}
	wantSplit := models.Shares{share("A", "22.75"), share("B", "22.75")}
	if diff := cmp.Diff(wantSplit, resp.Msg.Expenses[0].Distribution); diff != "" {
		t.Errorf("even split mismatch (-want +got):\n%s", diff)
	}
	if resp.Msg.Expenses[1].Title != "Toll" {
		t.Errorf("expected Toll second, got %s", resp.Msg.Expenses[1].Title)
	}

	if got := testutil.ToFloat64(m.Expenses); got != 2 {
		t.Errorf("expenses metric: expected 2, got %v", got)
	}
}

func TestClearHistory(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()
	addMembers(t, client, "A", "B")
	addExpense(t, client, &api.AddExpenseRequest{
		Title: "Snacks", Location: "Bus", Amount: amt("20"),
		PaidBy: models.Shares{share("A", "20")}, SplitEvenly: true,
	})

	if _, err := client.ClearHistory(ctx, connect.NewRequest(&api.ClearHistoryRequest{})); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}

	summary := getSummary(t, client)
	if summary.ExpenseCount != 0 || len(summary.Balances) != 0 {
		t.Errorf("expected empty ledger after clear, got %+v", summary)
	}
	if !summary.Settled {
		t.Error("expected settled summary after clear")
	}
}
