// Package models defines the core domain types for the ledger:
// users, groups, accounting periods, transactions with their expense
// shares, and the settlements that zero a period out.
//
// All monetary values are integer cents. The only float in the package
// is the percentage weight on percentage-split shares, which is an
// input to share computation, never a stored amount.
package models
