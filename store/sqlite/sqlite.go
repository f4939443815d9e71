/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements the load-all/save-all repositories (ledger.PaymentStore,
  ledger.ContractStore, and the three rental party stores) on SQLite.
  The same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

LOAD-ALL / SAVE-ALL:
  The record sets are small and the whole collection is the unit of
  consistency, so SaveAll replaces the table contents inside a single
  transaction. A failed save rolls back and leaves the previous
  collection intact.

ENCODING:
  Dates as TEXT "2006-01-02", money as TEXT decimal strings (never
  floats), status as a code column plus a debt-amount column.

WAL MODE:
  Opened with WAL so readers don't block the writer, plus a mutex to
  serialize the replace-style saves.

USAGE:
  store, err := sqlite.New("./data/rent.db")   // ":memory:" for tests
  defer store.Close()

SEE ALSO:
  - ledger/store.go: interface definitions
  - ledger/store/memory.go: in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/rental"
)

// Store implements every storage interface using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS landlords (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		address TEXT,
		area TEXT NOT NULL,
		price TEXT NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		landlord_id TEXT NOT NULL,
		property_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		monthly_rent TEXT NOT NULL,
		status_code TEXT NOT NULL,
		status_debt TEXT NOT NULL,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_tenant ON contracts(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_contracts_landlord ON contracts(landlord_id);
	CREATE INDEX IF NOT EXISTS idx_contracts_property ON contracts(property_id);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		contract_id TEXT,
		paid_at TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_payments_contract ON payments(contract_id);
	CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(paid_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// replaceAll deletes the table contents and re-inserts rows inside one
// transaction.
func (s *Store) replaceAll(ctx context.Context, table string, insert string, rows func(stmt *sql.Stmt) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()
	if err := rows(stmt); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *Store) LoadAllPayments(ctx context.Context) ([]ledger.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, contract_id, paid_at, amount, category, notes FROM payments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Payment
	for rows.Next() {
		var p ledger.Payment
		var contractID, date, amount, category, notes string
		if err := rows.Scan(&p.ID, &contractID, &date, &amount, &category, &notes); err != nil {
			return nil, err
		}
		p.ContractID = ledger.ContractID(contractID)
		if p.Date, err = ledger.ParseDate(date); err != nil {
			return nil, err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		p.Category = ledger.PaymentCategory(category)
		p.Notes = notes
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) SaveAllPayments(ctx context.Context, payments []ledger.Payment) error {
	return s.replaceAll(ctx, "payments",
		`INSERT INTO payments (id, contract_id, paid_at, amount, category, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, p := range payments {
				if _, err := stmt.ExecContext(ctx,
					string(p.ID), string(p.ContractID), p.Date.String(),
					p.Amount.String(), string(p.Category), p.Notes); err != nil {
					return err
				}
			}
			return nil
		})
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (s *Store) LoadAllContracts(ctx context.Context) ([]ledger.Contract, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, landlord_id, property_id, start_date, end_date,
		        monthly_rent, status_code, status_debt, notes
		 FROM contracts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Contract
	for rows.Next() {
		var c ledger.Contract
		var start, end, rent, statusCode, statusDebt string
		if err := rows.Scan(&c.ID, &c.TenantID, &c.LandlordID, &c.PropertyID,
			&start, &end, &rent, &statusCode, &statusDebt, &c.Notes); err != nil {
			return nil, err
		}
		if c.StartDate, err = ledger.ParseDate(start); err != nil {
			return nil, err
		}
		if c.EndDate, err = ledger.ParseDate(end); err != nil {
			return nil, err
		}
		if c.MonthlyRent, err = decimal.NewFromString(rent); err != nil {
			return nil, err
		}
		debt, err := decimal.NewFromString(statusDebt)
		if err != nil {
			return nil, err
		}
		c.Status = ledger.Status{Code: ledger.StatusCode(statusCode), Debt: debt}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) SaveAllContracts(ctx context.Context, contracts []ledger.Contract) error {
	return s.replaceAll(ctx, "contracts",
		`INSERT INTO contracts (id, tenant_id, landlord_id, property_id, start_date,
		                        end_date, monthly_rent, status_code, status_debt, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, c := range contracts {
				if _, err := stmt.ExecContext(ctx,
					string(c.ID), string(c.TenantID), string(c.LandlordID), string(c.PropertyID),
					c.StartDate.String(), c.EndDate.String(), c.MonthlyRent.String(),
					string(c.Status.Code), c.Status.Debt.String(), c.Notes); err != nil {
					return err
				}
			}
			return nil
		})
}

// =============================================================================
// PARTIES
// =============================================================================

func (s *Store) LoadAllTenants(ctx context.Context) ([]rental.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, phone, email, notes FROM tenants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rental.Tenant
	for rows.Next() {
		var t rental.Tenant
		if err := rows.Scan(&t.ID, &t.FullName, &t.Phone, &t.Email, &t.Notes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SaveAllTenants(ctx context.Context, tenants []rental.Tenant) error {
	return s.replaceAll(ctx, "tenants",
		`INSERT INTO tenants (id, full_name, phone, email, notes) VALUES (?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, t := range tenants {
				if _, err := stmt.ExecContext(ctx,
					string(t.ID), t.FullName, t.Phone, t.Email, t.Notes); err != nil {
					return err
				}
			}
			return nil
		})
}

func (s *Store) LoadAllLandlords(ctx context.Context) ([]rental.Landlord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, phone, email, notes FROM landlords`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rental.Landlord
	for rows.Next() {
		var l rental.Landlord
		if err := rows.Scan(&l.ID, &l.FullName, &l.Phone, &l.Email, &l.Notes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) SaveAllLandlords(ctx context.Context, landlords []rental.Landlord) error {
	return s.replaceAll(ctx, "landlords",
		`INSERT INTO landlords (id, full_name, phone, email, notes) VALUES (?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, l := range landlords {
				if _, err := stmt.ExecContext(ctx,
					string(l.ID), l.FullName, l.Phone, l.Email, l.Notes); err != nil {
					return err
				}
			}
			return nil
		})
}

func (s *Store) LoadAllProperties(ctx context.Context) ([]rental.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, address, area, price, notes FROM properties`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rental.Property
	for rows.Next() {
		var p rental.Property
		var area, price string
		if err := rows.Scan(&p.ID, &p.Title, &p.Address, &area, &price, &p.Notes); err != nil {
			return nil, err
		}
		if p.Area, err = decimal.NewFromString(area); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) SaveAllProperties(ctx context.Context, properties []rental.Property) error {
	return s.replaceAll(ctx, "properties",
		`INSERT INTO properties (id, title, address, area, price, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, p := range properties {
				if _, err := stmt.ExecContext(ctx,
					string(p.ID), p.Title, p.Address, p.Area.String(), p.Price.String(), p.Notes); err != nil {
					return err
				}
			}
			return nil
		})
}
