/*
Package rental provides the domain services around the ledger engine:
party records (tenants, landlords, properties), contract management, and
payment management with status write-back.

PURPOSE:
  The ledger package is pure computation; this package owns the mutable
  collections, validation, referential-integrity guards, substring
  search, and the wiring that re-runs the status policy after every
  mutation. Each service caches its collection over an injected
  load-all/save-all store.

KEY CONCEPTS IN THIS FILE (types.go):
  - Tenant / Landlord: contract participants (name, phone, email, notes)
  - Property: the rented object (title, address, area, price)
  - Party store interfaces, same load-all/save-all shape as the ledger's

REFERENTIAL INTEGRITY:
  A tenant, landlord, or property cannot be deleted while any contract
  references it. The guard lives in the party services and asks the
  contract service "is this id referenced?".

SEE ALSO:
  - contracts.go: ContractService
  - payments.go: PaymentService
  - parties.go: Tenant/Landlord/Property services
*/
package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PARTIES
// =============================================================================

// Tenant rents a property under a contract.
type Tenant struct {
	ID       ledger.TenantID
	FullName string
	Phone    string
	Email    string
	Notes    string
}

// Landlord lets a property under a contract.
type Landlord struct {
	ID       ledger.LandlordID
	FullName string
	Phone    string
	Email    string
	Notes    string
}

// Property is a rentable object.
type Property struct {
	ID      ledger.PropertyID
	Title   string
	Address string
	Area    decimal.Decimal
	Price   decimal.Decimal
	Notes   string
}

// =============================================================================
// PARTY STORES
// =============================================================================

type TenantStore interface {
	LoadAllTenants(ctx context.Context) ([]Tenant, error)
	SaveAllTenants(ctx context.Context, tenants []Tenant) error
}

type LandlordStore interface {
	LoadAllLandlords(ctx context.Context) ([]Landlord, error)
	SaveAllLandlords(ctx context.Context, landlords []Landlord) error
}

type PropertyStore interface {
	LoadAllProperties(ctx context.Context) ([]Property, error)
	SaveAllProperties(ctx context.Context, properties []Property) error
}

// newID builds a unique record id with a kind prefix.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
