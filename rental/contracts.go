/*
contracts.go - Contract management service

PURPOSE:
  Owns the contract collection. Validates structural edits, applies the
  structural-change status entry point after every create/edit, answers
  the "is this party referenced?" queries for delete guards, and exposes
  the periodic expiry sweep.

STATUS DISCIPLINE:
  The Status field is written only through the ledger status policy.
  Structural edits never carry a status in; Add sets the initial Active
  and Update preserves whatever the policy last computed. A structural
  edit therefore only ever flips status via the expiry check - a stale
  PaidInFull/Debt survives a rent edit until the next payment event.
  SetStatus exists solely for PaymentService write-back.
*/
package rental

import (
	"context"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/sirupsen/logrus"
)

// ContractService manages the contract collection over a ContractStore.
type ContractService struct {
	store     ledger.ContractStore
	contracts []ledger.Contract
	log       *logrus.Logger
}

// OpenContractService loads the stored contracts and refreshes expired
// statuses, the same sweep the daily scheduler runs.
func OpenContractService(ctx context.Context, store ledger.ContractStore, today ledger.Date, log *logrus.Logger) (*ContractService, error) {
	contracts, err := store.LoadAllContracts(ctx)
	if err != nil {
		return nil, err
	}
	s := &ContractService{store: store, contracts: contracts, log: log}
	if _, err := s.RefreshExpired(ctx, today); err != nil {
		return nil, err
	}
	log.WithField("count", len(contracts)).Info("contracts loaded")
	return s, nil
}

// All returns a copy of the contract list.
func (s *ContractService) All() []ledger.Contract {
	out := make([]ledger.Contract, len(s.contracts))
	copy(out, s.contracts)
	return out
}

// Get returns the contract with the given id.
func (s *ContractService) Get(id ledger.ContractID) (ledger.Contract, error) {
	for _, c := range s.contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return ledger.Contract{}, &ledger.NotFoundError{Kind: "contract", ID: string(id)}
}

// Add validates and stores a new contract. The status starts Active and
// immediately passes through the structural-change entry point, so a
// contract created with an already-past end date lands as Completed.
func (s *ContractService) Add(ctx context.Context, c ledger.Contract, today ledger.Date) (ledger.Contract, error) {
	if err := validateContract(c); err != nil {
		return ledger.Contract{}, err
	}
	if c.ID == "" {
		c.ID = ledger.ContractID(newID("contract"))
	}
	c.Status = ledger.OnContractChange(withActive(c), today)

	s.contracts = append(s.contracts, c)
	if err := s.save(ctx); err != nil {
		return ledger.Contract{}, err
	}
	s.log.WithField("contract_id", c.ID).Info("contract created")
	return c, nil
}

// Update replaces the structural fields of an existing contract and
// re-runs the expiry check. The stored status is preserved otherwise.
func (s *ContractService) Update(ctx context.Context, c ledger.Contract, today ledger.Date) (ledger.Contract, error) {
	if err := validateContract(c); err != nil {
		return ledger.Contract{}, err
	}
	for i := range s.contracts {
		if s.contracts[i].ID != c.ID {
			continue
		}
		c.Status = s.contracts[i].Status
		c.Status = ledger.OnContractChange(c, today)
		s.contracts[i] = c
		if err := s.save(ctx); err != nil {
			return ledger.Contract{}, err
		}
		s.log.WithField("contract_id", c.ID).Info("contract updated")
		return c, nil
	}
	return ledger.Contract{}, &ledger.NotFoundError{Kind: "contract", ID: string(c.ID)}
}

// Delete removes a contract. Payments referencing it become orphans.
func (s *ContractService) Delete(ctx context.Context, id ledger.ContractID) error {
	for i := range s.contracts {
		if s.contracts[i].ID == id {
			s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
			if err := s.save(ctx); err != nil {
				return err
			}
			s.log.WithField("contract_id", id).Info("contract deleted")
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "contract", ID: string(id)}
}

// SetStatus writes a policy-computed status back to the contract.
// Only the status policy's results belong here; see PaymentService.
func (s *ContractService) SetStatus(ctx context.Context, id ledger.ContractID, status ledger.Status) error {
	for i := range s.contracts {
		if s.contracts[i].ID == id {
			s.contracts[i].Status = status
			return s.save(ctx)
		}
	}
	return &ledger.NotFoundError{Kind: "contract", ID: string(id)}
}

// RefreshExpired runs the structural-change entry point over every
// contract and persists any flips to Completed. Returns the number of
// contracts whose status changed.
func (s *ContractService) RefreshExpired(ctx context.Context, today ledger.Date) (int, error) {
	changed := 0
	for i := range s.contracts {
		next := ledger.OnContractChange(s.contracts[i], today)
		if !next.Equal(s.contracts[i].Status) {
			s.contracts[i].Status = next
			changed++
		}
	}
	if changed > 0 {
		if err := s.save(ctx); err != nil {
			return 0, err
		}
		s.log.WithField("count", changed).Info("expired contracts completed")
	}
	return changed, nil
}

// =============================================================================
// REFERENCE QUERIES - delete guards for the party services
// =============================================================================

func (s *ContractService) ReferencesTenant(id ledger.TenantID) bool {
	for _, c := range s.contracts {
		if c.TenantID == id {
			return true
		}
	}
	return false
}

func (s *ContractService) ReferencesLandlord(id ledger.LandlordID) bool {
	for _, c := range s.contracts {
		if c.LandlordID == id {
			return true
		}
	}
	return false
}

func (s *ContractService) ReferencesProperty(id ledger.PropertyID) bool {
	for _, c := range s.contracts {
		if c.PropertyID == id {
			return true
		}
	}
	return false
}

func (s *ContractService) save(ctx context.Context) error {
	return s.store.SaveAllContracts(ctx, s.contracts)
}

func validateContract(c ledger.Contract) error {
	if c.TenantID == "" {
		return ledger.NewValidationError("tenant_id", "contract requires a tenant")
	}
	if c.LandlordID == "" {
		return ledger.NewValidationError("landlord_id", "contract requires a landlord")
	}
	if c.PropertyID == "" {
		return ledger.NewValidationError("property_id", "contract requires a property")
	}
	if c.StartDate.IsZero() {
		return ledger.NewValidationError("start_date", "start date is required")
	}
	if c.EndDate.IsZero() {
		return ledger.NewValidationError("end_date", "end date is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return ledger.NewValidationError("end_date", "end date precedes start date")
	}
	if !c.MonthlyRent.IsPositive() {
		return ledger.NewValidationError("monthly_rent", "must be greater than zero")
	}
	return nil
}

func withActive(c ledger.Contract) ledger.Contract {
	c.Status = ledger.Active()
	return c
}
