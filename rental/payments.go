/*
payments.go - Payment management service

PURPOSE:
  Wraps the PaymentLedger with the status write-back the engine itself
  deliberately does not do: every payment add/edit/delete re-runs the
  payment-triggered status entry point on the affected contract and
  persists the result. Also provides balance lookup and the substring
  search over payments and their linked contract parties.

AFFECTED CONTRACTS:
  Add and Delete touch one contract. An edit that moves a payment to a
  different contract touches two: both the old and the new contract are
  recomputed, otherwise the old one would keep a subtotal that no longer
  exists.
*/
package rental

import (
	"context"
	"strings"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PaymentService manages payments and keeps contract statuses in sync.
type PaymentService struct {
	ledger     *ledger.PaymentLedger
	contracts  *ContractService
	tenants    *TenantService
	properties *PropertyService
	log        *logrus.Logger
}

// NewPaymentService wires the payment ledger to its collaborators.
// tenants and properties are only used by Search and may be nil.
func NewPaymentService(l *ledger.PaymentLedger, contracts *ContractService, tenants *TenantService, properties *PropertyService, log *logrus.Logger) *PaymentService {
	return &PaymentService{
		ledger:     l,
		contracts:  contracts,
		tenants:    tenants,
		properties: properties,
		log:        log,
	}
}

// All returns every payment, ordered by date ascending.
func (s *PaymentService) All() []ledger.Payment {
	return s.ledger.All()
}

// Get returns a payment by id.
func (s *PaymentService) Get(id ledger.PaymentID) (ledger.Payment, error) {
	return s.ledger.Get(id)
}

// ByContract returns a contract's payments, ordered by date ascending.
func (s *PaymentService) ByContract(id ledger.ContractID) []ledger.Payment {
	return s.ledger.ByContract(id)
}

// Add records a payment and recomputes the linked contract's status.
func (s *PaymentService) Add(ctx context.Context, p ledger.Payment, today ledger.Date) (ledger.Payment, error) {
	if err := s.checkContractRef(p.ContractID); err != nil {
		return ledger.Payment{}, err
	}
	if p.ID == "" {
		p.ID = ledger.PaymentID(newID("pay"))
	}
	if err := s.ledger.Add(ctx, p); err != nil {
		return ledger.Payment{}, err
	}
	if err := s.refreshContract(ctx, p.ContractID, today); err != nil {
		return ledger.Payment{}, err
	}
	s.log.WithFields(logrus.Fields{"payment_id": p.ID, "amount": p.Amount.String()}).Info("payment added")
	return p, nil
}

// Update replaces a payment and recomputes every affected contract.
func (s *PaymentService) Update(ctx context.Context, p ledger.Payment, today ledger.Date) error {
	if err := s.checkContractRef(p.ContractID); err != nil {
		return err
	}
	old, err := s.ledger.Get(p.ID)
	if err != nil {
		return err
	}
	if err := s.ledger.Update(ctx, p); err != nil {
		return err
	}
	if old.ContractID != p.ContractID {
		if err := s.refreshContract(ctx, old.ContractID, today); err != nil {
			return err
		}
	}
	if err := s.refreshContract(ctx, p.ContractID, today); err != nil {
		return err
	}
	s.log.WithField("payment_id", p.ID).Info("payment updated")
	return nil
}

// Delete removes a payment and recomputes the contract it belonged to.
func (s *PaymentService) Delete(ctx context.Context, id ledger.PaymentID, today ledger.Date) error {
	removed, err := s.ledger.Remove(ctx, id)
	if err != nil {
		return err
	}
	if err := s.refreshContract(ctx, removed.ContractID, today); err != nil {
		return err
	}
	s.log.WithField("payment_id", id).Info("payment deleted")
	return nil
}

// Balance returns the contract's outstanding amount: all-time rent paid
// minus one month's rent.
func (s *PaymentService) Balance(id ledger.ContractID) (decimal.Decimal, error) {
	c, err := s.contracts.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.RentBalance(c, s.ledger.ByContract(id)), nil
}

// Search returns payments matching the query as a case-insensitive
// substring of the category, the notes, the linked tenant's name, or the
// linked property's title. An empty query returns everything.
func (s *PaymentService) Search(query string) []ledger.Payment {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}

	var out []ledger.Payment
	for _, p := range s.All() {
		if strings.Contains(strings.ToLower(string(p.Category)), q) ||
			strings.Contains(strings.ToLower(p.Notes), q) ||
			s.matchesContract(p.ContractID, q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *PaymentService) matchesContract(id ledger.ContractID, q string) bool {
	if id == "" {
		return false
	}
	c, err := s.contracts.Get(id)
	if err != nil {
		return false
	}
	if s.tenants != nil {
		if t, err := s.tenants.Get(c.TenantID); err == nil &&
			strings.Contains(strings.ToLower(t.FullName), q) {
			return true
		}
	}
	if s.properties != nil {
		if p, err := s.properties.Get(c.PropertyID); err == nil &&
			strings.Contains(strings.ToLower(p.Title), q) {
			return true
		}
	}
	return false
}

// refreshContract runs the payment-triggered status entry point and
// persists the result when it changed. Orphan payments (empty id) and
// payments whose contract was deleted are no-ops.
func (s *PaymentService) refreshContract(ctx context.Context, id ledger.ContractID, today ledger.Date) error {
	if id == "" {
		return nil
	}
	c, err := s.contracts.Get(id)
	if err != nil {
		return nil
	}
	next := ledger.OnPaymentChange(c, s.ledger.ByContract(id), today)
	if next.Equal(c.Status) {
		return nil
	}
	return s.contracts.SetStatus(ctx, id, next)
}

// checkContractRef rejects payments pointing at a missing contract.
// Empty is fine: orphan payments are permitted.
func (s *PaymentService) checkContractRef(id ledger.ContractID) error {
	if id == "" {
		return nil
	}
	_, err := s.contracts.Get(id)
	return err
}
