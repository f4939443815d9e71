/*
ledger.go - The payment ledger

PURPOSE:
  PaymentLedger holds the authoritative in-memory set of payments as a
  cache over an injected PaymentStore, and answers the two queries the
  rest of the engine needs:

    1. All payments for a contract, ordered by date ascending
    2. The Rent-category subtotal for a contract

  It performs no status or balance logic itself - pure storage plus
  lookup, fully synchronous. Status recomputation after a mutation is
  the caller's job (rental.PaymentService wires that up).

ORPHANS:
  Payments with an empty ContractID are stored and listed normally but
  never appear in by-contract queries or subtotals.

CONSISTENCY:
  Every mutation writes the whole collection back through the store
  before returning, so the cache and the store never diverge.
*/
package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// PaymentLedger is the in-memory payment collection backed by a store.
type PaymentLedger struct {
	store    PaymentStore
	payments []Payment
}

// OpenPaymentLedger loads the stored payments into a new ledger.
func OpenPaymentLedger(ctx context.Context, store PaymentStore) (*PaymentLedger, error) {
	payments, err := store.LoadAllPayments(ctx)
	if err != nil {
		return nil, err
	}
	return &PaymentLedger{store: store, payments: payments}, nil
}

// All returns every payment, ordered by date ascending.
func (l *PaymentLedger) All() []Payment {
	out := make([]Payment, len(l.payments))
	copy(out, l.payments)
	sortByDate(out)
	return out
}

// Get returns the payment with the given id.
func (l *PaymentLedger) Get(id PaymentID) (Payment, error) {
	for _, p := range l.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return Payment{}, &NotFoundError{Kind: "payment", ID: string(id)}
}

// ByContract returns the payments referencing the contract, ordered by
// date ascending. Orphan payments never match.
func (l *PaymentLedger) ByContract(id ContractID) []Payment {
	if id == "" {
		return nil
	}
	var out []Payment
	for _, p := range l.payments {
		if p.ContractID == id {
			out = append(out, p)
		}
	}
	sortByDate(out)
	return out
}

// RentSubtotal returns the all-time Rent-category subtotal for the contract.
func (l *PaymentLedger) RentSubtotal(id ContractID) decimal.Decimal {
	return RentPaidTotal(l.ByContract(id))
}

// Add validates and appends a payment, then persists the collection.
func (l *PaymentLedger) Add(ctx context.Context, p Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	l.payments = append(l.payments, p)
	return l.save(ctx)
}

// Update replaces the payment with p.ID.
func (l *PaymentLedger) Update(ctx context.Context, p Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	for i := range l.payments {
		if l.payments[i].ID == p.ID {
			l.payments[i] = p
			return l.save(ctx)
		}
	}
	return &NotFoundError{Kind: "payment", ID: string(p.ID)}
}

// Remove deletes the payment and returns the removed record, so the
// caller can recompute the affected contract's status.
func (l *PaymentLedger) Remove(ctx context.Context, id PaymentID) (Payment, error) {
	for i := range l.payments {
		if l.payments[i].ID == id {
			removed := l.payments[i]
			l.payments = append(l.payments[:i], l.payments[i+1:]...)
			if err := l.save(ctx); err != nil {
				return Payment{}, err
			}
			return removed, nil
		}
	}
	return Payment{}, &NotFoundError{Kind: "payment", ID: string(id)}
}

func (l *PaymentLedger) save(ctx context.Context) error {
	return l.store.SaveAllPayments(ctx, l.payments)
}

func validatePayment(p Payment) error {
	if p.Date.IsZero() {
		return NewValidationError("date", "payment date is required")
	}
	if !p.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	if !ValidCategory(p.Category) {
		return NewValidationError("category", "unknown payment category")
	}
	return nil
}

func sortByDate(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
}
