package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/render"
	"github.com/mmynk/tripsplit/pkg/api"
)

// Ensure LedgerService implements api.LedgerServiceHandler
var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledger   *Ledger
	currency string
}

// NewLedgerService creates a new LedgerService. currency is used for the
// formatted statements in GetSummary.
func NewLedgerService(ledger *Ledger, currency string) *LedgerService {
	if currency == "" {
		currency = render.DefaultCurrency
	}
	return &LedgerService{ledger: ledger, currency: currency}
}

// connectError maps service and storage errors to Connect codes.
func connectError(err error) error {
	switch {
	case errors.Is(err, ErrMemberExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ErrNoMembers):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ErrEmptyField),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrUnknownMember),
		errors.Is(err, ErrTotalMismatch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIExpense(exp models.Expense) *api.Expense {
	return &api.Expense{
		ID:           exp.ID,
		Title:        exp.Title,
		Location:     exp.Location,
		Amount:       exp.Amount,
		PaidBy:       exp.PaidBy,
		Distribution: exp.Distribution,
		CreatedAt:    exp.CreatedAt,
	}
}

// AddMember registers a member.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	member, err := s.ledger.AddMember(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("AddMember failed", "name", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.AddMemberResponse{
		Member: &api.Member{Name: member.Name, CreatedAt: member.CreatedAt},
	}), nil
}

// ListMembers returns members in registration order.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	members, err := s.ledger.Members(ctx)
	if err != nil {
		slog.Error("ListMembers failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = &api.Member{Name: m.Name, CreatedAt: m.CreatedAt}
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: out}), nil
}

// AddExpense validates and records an expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	exp, err := s.ledger.AddExpense(ctx, ExpenseInput{
		Title:        req.Msg.Title,
		Location:     req.Msg.Location,
		Amount:       req.Msg.Amount,
		PaidBy:       req.Msg.PaidBy,
		Distribution: req.Msg.Distribution,
		SplitEvenly:  req.Msg.SplitEvenly,
	})
	if err != nil {
		slog.Error("AddExpense failed", "title", req.Msg.Title, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(exp)}), nil
}

// ListExpenses returns the history in recording order.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, exp := range expenses {
		out[i] = toAPIExpense(exp)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// GetSummary computes balances and settlements across the whole history.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		slog.Error("GetSummary failed", "error", err)
		return nil, connectError(err)
	}

	balances := make([]*api.Balance, len(summary.Balances))
	for i, b := range summary.Balances {
		balances[i] = &api.Balance{Member: b.Member, Paid: b.Paid, Owed: b.Owed, Balance: b.Balance}
	}

	transfers := make([]*api.Transfer, len(summary.Plan.Transfers))
	for i, t := range summary.Plan.Transfers {
		transfers[i] = &api.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		Currency:     s.currency,
		ExpenseCount: summary.ExpenseCount,
		TotalExpense: summary.TotalExpense,
		Balances:     balances,
		Transfers:    transfers,
		Settled:      summary.Plan.Settled,
		Statements:   render.Statements(summary.Plan, s.currency),
	}), nil
}

// ClearHistory deletes every member and expense.
func (s *LedgerService) ClearHistory(ctx context.Context, req *connect.Request[api.ClearHistoryRequest]) (*connect.Response[api.ClearHistoryResponse], error) {
	if err := s.ledger.Clear(ctx); err != nil {
		slog.Error("ClearHistory failed", "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ClearHistoryResponse{}), nil
}
