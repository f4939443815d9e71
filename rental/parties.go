/*
parties.go - Tenant, landlord, and property services

PURPOSE:
  CRUD plus substring search for the three party collections, with the
  referential-integrity delete guard: a record that any contract still
  references cannot be removed. The guard asks ContractService, which
  owns the reference queries; these services own nothing but their own
  collection.
*/
package rental

import (
	"context"
	"strings"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// TENANTS
// =============================================================================

type TenantService struct {
	store     TenantStore
	tenants   []Tenant
	contracts *ContractService
	log       *logrus.Logger
}

func OpenTenantService(ctx context.Context, store TenantStore, contracts *ContractService, log *logrus.Logger) (*TenantService, error) {
	tenants, err := store.LoadAllTenants(ctx)
	if err != nil {
		return nil, err
	}
	return &TenantService{store: store, tenants: tenants, contracts: contracts, log: log}, nil
}

func (s *TenantService) All() []Tenant {
	out := make([]Tenant, len(s.tenants))
	copy(out, s.tenants)
	return out
}

func (s *TenantService) Get(id ledger.TenantID) (Tenant, error) {
	for _, t := range s.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return Tenant{}, &ledger.NotFoundError{Kind: "tenant", ID: string(id)}
}

// Search matches a case-insensitive substring of name, phone, email, or notes.
func (s *TenantService) Search(query string) []Tenant {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}
	var out []Tenant
	for _, t := range s.tenants {
		if containsFold(q, t.FullName, t.Phone, t.Email, t.Notes) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TenantService) Add(ctx context.Context, t Tenant) (Tenant, error) {
	if strings.TrimSpace(t.FullName) == "" {
		return Tenant{}, ledger.NewValidationError("full_name", "tenant name is required")
	}
	if t.ID == "" {
		t.ID = ledger.TenantID(newID("tenant"))
	}
	s.tenants = append(s.tenants, t)
	if err := s.save(ctx); err != nil {
		return Tenant{}, err
	}
	s.log.WithField("tenant_id", t.ID).Info("tenant created")
	return t, nil
}

func (s *TenantService) Update(ctx context.Context, t Tenant) error {
	if strings.TrimSpace(t.FullName) == "" {
		return ledger.NewValidationError("full_name", "tenant name is required")
	}
	for i := range s.tenants {
		if s.tenants[i].ID == t.ID {
			s.tenants[i] = t
			return s.save(ctx)
		}
	}
	return &ledger.NotFoundError{Kind: "tenant", ID: string(t.ID)}
}

// Delete removes a tenant unless a contract references it.
func (s *TenantService) Delete(ctx context.Context, id ledger.TenantID) error {
	if s.contracts.ReferencesTenant(id) {
		return &ledger.ReferencedError{Kind: "tenant", ID: string(id)}
	}
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			s.tenants = append(s.tenants[:i], s.tenants[i+1:]...)
			if err := s.save(ctx); err != nil {
				return err
			}
			s.log.WithField("tenant_id", id).Info("tenant deleted")
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "tenant", ID: string(id)}
}

func (s *TenantService) save(ctx context.Context) error {
	return s.store.SaveAllTenants(ctx, s.tenants)
}

// =============================================================================
// LANDLORDS
// =============================================================================

type LandlordService struct {
	store     LandlordStore
	landlords []Landlord
	contracts *ContractService
	log       *logrus.Logger
}

func OpenLandlordService(ctx context.Context, store LandlordStore, contracts *ContractService, log *logrus.Logger) (*LandlordService, error) {
	landlords, err := store.LoadAllLandlords(ctx)
	if err != nil {
		return nil, err
	}
	return &LandlordService{store: store, landlords: landlords, contracts: contracts, log: log}, nil
}

func (s *LandlordService) All() []Landlord {
	out := make([]Landlord, len(s.landlords))
	copy(out, s.landlords)
	return out
}

func (s *LandlordService) Get(id ledger.LandlordID) (Landlord, error) {
	for _, l := range s.landlords {
		if l.ID == id {
			return l, nil
		}
	}
	return Landlord{}, &ledger.NotFoundError{Kind: "landlord", ID: string(id)}
}

func (s *LandlordService) Search(query string) []Landlord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}
	var out []Landlord
	for _, l := range s.landlords {
		if containsFold(q, l.FullName, l.Phone, l.Email, l.Notes) {
			out = append(out, l)
		}
	}
	return out
}

func (s *LandlordService) Add(ctx context.Context, l Landlord) (Landlord, error) {
	if strings.TrimSpace(l.FullName) == "" {
		return Landlord{}, ledger.NewValidationError("full_name", "landlord name is required")
	}
	if l.ID == "" {
		l.ID = ledger.LandlordID(newID("landlord"))
	}
	s.landlords = append(s.landlords, l)
	if err := s.save(ctx); err != nil {
		return Landlord{}, err
	}
	s.log.WithField("landlord_id", l.ID).Info("landlord created")
	return l, nil
}

func (s *LandlordService) Update(ctx context.Context, l Landlord) error {
	if strings.TrimSpace(l.FullName) == "" {
		return ledger.NewValidationError("full_name", "landlord name is required")
	}
	for i := range s.landlords {
		if s.landlords[i].ID == l.ID {
			s.landlords[i] = l
			return s.save(ctx)
		}
	}
	return &ledger.NotFoundError{Kind: "landlord", ID: string(l.ID)}
}

func (s *LandlordService) Delete(ctx context.Context, id ledger.LandlordID) error {
	if s.contracts.ReferencesLandlord(id) {
		return &ledger.ReferencedError{Kind: "landlord", ID: string(id)}
	}
	for i := range s.landlords {
		if s.landlords[i].ID == id {
			s.landlords = append(s.landlords[:i], s.landlords[i+1:]...)
			if err := s.save(ctx); err != nil {
				return err
			}
			s.log.WithField("landlord_id", id).Info("landlord deleted")
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "landlord", ID: string(id)}
}

func (s *LandlordService) save(ctx context.Context) error {
	return s.store.SaveAllLandlords(ctx, s.landlords)
}

// =============================================================================
// PROPERTIES
// =============================================================================

type PropertyService struct {
	store      PropertyStore
	properties []Property
	contracts  *ContractService
	log        *logrus.Logger
}

func OpenPropertyService(ctx context.Context, store PropertyStore, contracts *ContractService, log *logrus.Logger) (*PropertyService, error) {
	properties, err := store.LoadAllProperties(ctx)
	if err != nil {
		return nil, err
	}
	return &PropertyService{store: store, properties: properties, contracts: contracts, log: log}, nil
}

func (s *PropertyService) All() []Property {
	out := make([]Property, len(s.properties))
	copy(out, s.properties)
	return out
}

func (s *PropertyService) Get(id ledger.PropertyID) (Property, error) {
	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return Property{}, &ledger.NotFoundError{Kind: "property", ID: string(id)}
}

func (s *PropertyService) Search(query string) []Property {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}
	var out []Property
	for _, p := range s.properties {
		if containsFold(q, p.Title, p.Address, p.Notes) {
			out = append(out, p)
		}
	}
	return out
}

func (s *PropertyService) Add(ctx context.Context, p Property) (Property, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Property{}, ledger.NewValidationError("title", "property title is required")
	}
	if p.ID == "" {
		p.ID = ledger.PropertyID(newID("property"))
	}
	s.properties = append(s.properties, p)
	if err := s.save(ctx); err != nil {
		return Property{}, err
	}
	s.log.WithField("property_id", p.ID).Info("property created")
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, p Property) error {
	if strings.TrimSpace(p.Title) == "" {
		return ledger.NewValidationError("title", "property title is required")
	}
	for i := range s.properties {
		if s.properties[i].ID == p.ID {
			s.properties[i] = p
			return s.save(ctx)
		}
	}
	return &ledger.NotFoundError{Kind: "property", ID: string(p.ID)}
}

func (s *PropertyService) Delete(ctx context.Context, id ledger.PropertyID) error {
	if s.contracts.ReferencesProperty(id) {
		return &ledger.ReferencedError{Kind: "property", ID: string(id)}
	}
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			if err := s.save(ctx); err != nil {
				return err
			}
			s.log.WithField("property_id", id).Info("property deleted")
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "property", ID: string(id)}
}

func (s *PropertyService) save(ctx context.Context) error {
	return s.store.SaveAllProperties(ctx, s.properties)
}

// containsFold reports whether any field contains q, case-insensitively.
// q must already be lowercased.
func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
