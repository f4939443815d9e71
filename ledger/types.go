/*
Package ledger provides the core rent ledger engine.

PURPOSE:
  This package contains the pure computations behind a rent record keeper:
  splitting an arbitrary rental period into per-calendar-month charges
  (proration.go), deriving a contract's lifecycle status from its recorded
  rent payments (status.go), and computing the outstanding balance
  (balance.go). The PaymentLedger (ledger.go) holds the authoritative
  payment collection on top of an injected store.

KEY CONCEPTS IN THIS FILE (types.go):
  - Contract: a lease between a tenant and a landlord for a property
  - Payment: a single recorded payment, optionally linked to a contract
  - PaymentCategory: Rent / Utilities / Penalty / Deposit; only Rent
    counts toward paid-rent totals
  - Status: tagged lifecycle variant (Active, Completed, PaidInFull,
    Debt with an amount) - never a free-form string inside the engine

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all money, no floating point
  2. Purity: engine functions are deterministic over explicit inputs;
     the current date is always an argument, never read inside
  3. Type safety: distinct ID types for each entity kind
  4. Presentation stays out: rounding and status text rendering happen
     at the API boundary, not here

SEE ALSO:
  - proration.go: period-to-schedule calculator
  - status.go: the two status update entry points
  - balance.go: outstanding balance
  - store.go: repository interfaces
*/
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ContractID string
type PaymentID string
type TenantID string
type LandlordID string
type PropertyID string

// =============================================================================
// PAYMENT CATEGORY
// =============================================================================

type PaymentCategory string

const (
	CategoryRent      PaymentCategory = "rent"
	CategoryUtilities PaymentCategory = "utilities"
	CategoryPenalty   PaymentCategory = "penalty"
	CategoryDeposit   PaymentCategory = "deposit"
)

// ValidCategory reports whether c is one of the four known categories.
func ValidCategory(c PaymentCategory) bool {
	switch c {
	case CategoryRent, CategoryUtilities, CategoryPenalty, CategoryDeposit:
		return true
	}
	return false
}

// =============================================================================
// STATUS - Tagged lifecycle variant
// =============================================================================

type StatusCode string

const (
	StatusActive     StatusCode = "active"      // initial, set at creation
	StatusCompleted  StatusCode = "completed"   // terminal, sticky
	StatusPaidInFull StatusCode = "paid_in_full"
	StatusDebt       StatusCode = "debt"
)

// Status is the contract lifecycle state. The debt amount lives in a typed
// field instead of being encoded into display text; rendering to a
// user-facing string is a presentation concern.
type Status struct {
	Code StatusCode
	Debt decimal.Decimal // positive, meaningful only when Code == StatusDebt
}

func Active() Status     { return Status{Code: StatusActive} }
func Completed() Status  { return Status{Code: StatusCompleted} }
func PaidInFull() Status { return Status{Code: StatusPaidInFull} }

// Debt builds a debt status carrying the outstanding amount.
func Debt(amount decimal.Decimal) Status {
	return Status{Code: StatusDebt, Debt: amount}
}

// IsTerminal reports whether the status is sticky: once Completed, no
// recomputation ever leaves it.
func (s Status) IsTerminal() bool { return s.Code == StatusCompleted }

// Equal compares two statuses including the debt amount.
func (s Status) Equal(other Status) bool {
	if s.Code != other.Code {
		return false
	}
	if s.Code == StatusDebt {
		return s.Debt.Equal(other.Debt)
	}
	return true
}

func (s Status) String() string {
	if s.Code == StatusDebt {
		return fmt.Sprintf("%s:%s", s.Code, s.Debt.String())
	}
	return string(s.Code)
}

// =============================================================================
// CONTRACT
// =============================================================================

// Contract is a lease agreement. The Status field is mutated only through
// the status policy entry points (status.go); everything else is set by
// structural edits.
type Contract struct {
	ID         ContractID
	TenantID   TenantID
	LandlordID LandlordID
	PropertyID PropertyID
	StartDate  Date
	EndDate    Date
	// MonthlyRent is the full rate for one calendar month, positive.
	MonthlyRent decimal.Decimal
	Status      Status
	Notes       string
}

// =============================================================================
// PAYMENT
// =============================================================================

// Payment is a single recorded payment. ContractID may be empty: orphan
// payments are permitted and simply never show up in contract queries.
type Payment struct {
	ID         PaymentID
	ContractID ContractID
	Date       Date
	Amount     decimal.Decimal // positive
	Category   PaymentCategory
	Notes      string
}

// IsRent reports whether the payment counts toward paid-rent totals.
func (p Payment) IsRent() bool { return p.Category == CategoryRent }

// RentPaidTotal sums the amounts of Rent-category payments, all time.
// Non-rent categories never contribute.
func RentPaidTotal(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.IsRent() {
			total = total.Add(p.Amount)
		}
	}
	return total
}
