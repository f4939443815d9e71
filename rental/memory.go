package rental

import (
	"context"
	"sync"
)

// PartyMemory is the in-memory implementation of the three party stores,
// used by tests and the dev server.
type PartyMemory struct {
	mu         sync.RWMutex
	tenants    []Tenant
	landlords  []Landlord
	properties []Property
}

func NewPartyMemory() *PartyMemory {
	return &PartyMemory{}
}

func (m *PartyMemory) LoadAllTenants(_ context.Context) ([]Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Tenant, len(m.tenants))
	copy(out, m.tenants)
	return out, nil
}

func (m *PartyMemory) SaveAllTenants(_ context.Context, tenants []Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants = make([]Tenant, len(tenants))
	copy(m.tenants, tenants)
	return nil
}

func (m *PartyMemory) LoadAllLandlords(_ context.Context) ([]Landlord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Landlord, len(m.landlords))
	copy(out, m.landlords)
	return out, nil
}

func (m *PartyMemory) SaveAllLandlords(_ context.Context, landlords []Landlord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.landlords = make([]Landlord, len(landlords))
	copy(m.landlords, landlords)
	return nil
}

func (m *PartyMemory) LoadAllProperties(_ context.Context) ([]Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Property, len(m.properties))
	copy(out, m.properties)
	return out, nil
}

func (m *PartyMemory) SaveAllProperties(_ context.Context, properties []Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties = make([]Property, len(properties))
	copy(m.properties, properties)
	return nil
}
