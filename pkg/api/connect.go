package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	ClearHistory(context.Context, *connect.Request[ClearHistoryRequest]) (*connect.Response[ClearHistoryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc. It returns the path
// prefix to mount the handler on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect.WithCodec(JSONCodec{}))

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddMemberProcedure,
		connect.NewUnaryHandler(LedgerServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(LedgerServiceListMembersProcedure,
		connect.NewUnaryHandler(LedgerServiceListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(LedgerServiceAddExpenseProcedure,
		connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceListExpensesProcedure,
		connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerServiceGetSummaryProcedure,
		connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(LedgerServiceClearHistoryProcedure,
		connect.NewUnaryHandler(LedgerServiceClearHistoryProcedure, svc.ClearHistory, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a client for LedgerService.
type LedgerServiceClient struct {
	addMember    *connect.Client[AddMemberRequest, AddMemberResponse]
	listMembers  *connect.Client[ListMembersRequest, ListMembersResponse]
	addExpense   *connect.Client[AddExpenseRequest, AddExpenseResponse]
	listExpenses *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getSummary   *connect.Client[GetSummaryRequest, GetSummaryResponse]
	clearHistory *connect.Client[ClearHistoryRequest, ClearHistoryResponse]
}

// NewLedgerServiceClient creates a client for the server at baseURL
// (e.g. http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = append(opts, connect.WithCodec(JSONCodec{}))
	return &LedgerServiceClient{
		addMember:    connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+LedgerServiceAddMemberProcedure, opts...),
		listMembers:  connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+LedgerServiceListMembersProcedure, opts...),
		addExpense:   connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		listExpenses: connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getSummary:   connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		clearHistory: connect.NewClient[ClearHistoryRequest, ClearHistoryResponse](httpClient, baseURL+LedgerServiceClearHistoryProcedure, opts...),
	}
}

func (c *LedgerServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ClearHistory(ctx context.Context, req *connect.Request[ClearHistoryRequest]) (*connect.Response[ClearHistoryResponse], error) {
	return c.clearHistory.CallUnary(ctx, req)
}
