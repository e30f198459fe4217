// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Member: a registered participant, identified by name
//   - Expense: an immutable record of a shared cost with payer and debtor breakdowns
//   - Shares: an insertion-ordered member → amount mapping used by expenses
//   - NetBalance: derived paid/owed/balance triple per member (never persisted)
//   - Settlement: a single debtor → creditor transfer instruction (never persisted)
//
// Members are plain name strings. Names are opaque identifiers: nothing in
// this package escapes or interprets them.
//
// # Amounts
//
// Every amount is a decimal.Decimal. Arithmetic stays full precision; rounding
// to the currency's minor unit only happens when rendering.
package models
