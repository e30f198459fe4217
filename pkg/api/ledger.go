// Package api defines the tripsplit RPC surface: message types, the Connect
// handler constructor and a typed client. The layout follows Connect's
// generated code, with plain Go structs carried by JSONCodec.
package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "tripsplit.v1.LedgerService"

// Procedure paths of LedgerService.
const (
	LedgerServiceAddMemberProcedure    = "/tripsplit.v1.LedgerService/AddMember"
	LedgerServiceListMembersProcedure  = "/tripsplit.v1.LedgerService/ListMembers"
	LedgerServiceAddExpenseProcedure   = "/tripsplit.v1.LedgerService/AddExpense"
	LedgerServiceListExpensesProcedure = "/tripsplit.v1.LedgerService/ListExpenses"
	LedgerServiceGetSummaryProcedure   = "/tripsplit.v1.LedgerService/GetSummary"
	LedgerServiceClearHistoryProcedure = "/tripsplit.v1.LedgerService/ClearHistory"
)

type Member struct {
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

type AddMemberRequest struct {
	Name string `json:"name"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type Expense struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Location     string          `json:"location"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       models.Shares   `json:"paid_by"`
	Distribution models.Shares   `json:"distribution"`
	CreatedAt    int64           `json:"created_at"`
}

// AddExpenseRequest records a new expense. When SplitEvenly is set,
// Distribution is ignored and the amount is divided across all members.
type AddExpenseRequest struct {
	Title        string          `json:"title"`
	Location     string          `json:"location"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       models.Shares   `json:"paid_by"`
	Distribution models.Shares   `json:"distribution,omitempty"`
	SplitEvenly  bool            `json:"split_evenly,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type Balance struct {
	Member  string          `json:"member"`
	Paid    decimal.Decimal `json:"paid"`
	Owed    decimal.Decimal `json:"owed"`
	Balance decimal.Decimal `json:"balance"`
}

type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetSummaryRequest struct{}

// GetSummaryResponse carries raw results plus display strings. Statements
// are unescaped; clients rendering markup must escape them.
type GetSummaryResponse struct {
	Currency     string          `json:"currency"`
	ExpenseCount int             `json:"expense_count"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balances     []*Balance      `json:"balances"`
	Transfers    []*Transfer     `json:"transfers"`
	Settled      bool            `json:"settled"`
	Statements   []string        `json:"statements"`
}

type ClearHistoryRequest struct{}

type ClearHistoryResponse struct{}
