/*
store.go - Repository interfaces for contracts and payments

PURPOSE:
  The engine works on in-memory snapshots; persistence lives behind these
  interfaces. The semantics are deliberately load-all/save-all: the record
  sets are small (a landlord's book, not an exchange feed) and the whole
  collection is the unit of consistency. Implementations:

    ledger/store:  in-memory (tests, dev)
    store/sqlite:  SQLite (production)

  Callers own serialization of mutations; the stores only have to make a
  single SaveAll atomic with respect to a concurrent LoadAll.
*/
package ledger

import "context"

// PaymentStore persists the payment collection.
type PaymentStore interface {
	// LoadAllPayments returns every stored payment, order unspecified.
	LoadAllPayments(ctx context.Context) ([]Payment, error)

	// SaveAllPayments replaces the stored collection.
	SaveAllPayments(ctx context.Context, payments []Payment) error
}

// ContractStore persists the contract collection.
type ContractStore interface {
	// LoadAllContracts returns every stored contract, order unspecified.
	LoadAllContracts(ctx context.Context) ([]Contract, error)

	// SaveAllContracts replaces the stored collection.
	SaveAllContracts(ctx context.Context, contracts []Contract) error
}
