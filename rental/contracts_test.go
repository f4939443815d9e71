/*
contracts_test.go - ContractService tests

Covers structural validation (including the end-before-start guard),
status behavior on create/edit, the expiry sweep, and the reference
queries backing the party delete guards.
*/
package rental_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/ledger/store"
	"github.com/rentfold/ledger-engine/rental"
)

// =============================================================================
// FIXTURES
// =============================================================================

var today = ledger.NewDate(2025, time.June, 15)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newContractService(t *testing.T) (*rental.ContractService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s, err := rental.OpenContractService(context.Background(), mem, today, quietLogger())
	require.NoError(t, err)
	return s, mem
}

func draftContract() ledger.Contract {
	return ledger.Contract{
		TenantID:    "tenant-1",
		LandlordID:  "landlord-1",
		PropertyID:  "property-1",
		StartDate:   ledger.NewDate(2025, time.January, 1),
		EndDate:     ledger.NewDate(2025, time.December, 31),
		MonthlyRent: dec("50000"),
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestContractService_Add_Validation(t *testing.T) {
	s, _ := newContractService(t)
	ctx := context.Background()
	var verr *ledger.ValidationError

	c := draftContract()
	c.TenantID = ""
	_, err := s.Add(ctx, c, today)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tenant_id", verr.Field)

	c = draftContract()
	c.MonthlyRent = decimal.Zero
	_, err = s.Add(ctx, c, today)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "monthly_rent", verr.Field)

	assert.Empty(t, s.All())
}

func TestContractService_Add_EndBeforeStart_Rejected(t *testing.T) {
	// GIVEN: A contract whose end date precedes its start date
	// WHEN: Creating it
	// THEN: Rejected at creation time, so the calculator's range check
	//       is not the only place this is ever caught

	s, _ := newContractService(t)
	c := draftContract()
	c.StartDate = ledger.NewDate(2025, time.May, 10)
	c.EndDate = ledger.NewDate(2025, time.May, 9)

	_, err := s.Add(context.Background(), c, today)
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Field)
}

// =============================================================================
// STATUS ON CREATE / EDIT
// =============================================================================

func TestContractService_Add_StartsActive(t *testing.T) {
	s, _ := newContractService(t)

	created, err := s.Add(context.Background(), draftContract(), today)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusActive, created.Status.Code)
	assert.NotEmpty(t, created.ID)
}

func TestContractService_Add_PastEndDate_ImmediatelyCompleted(t *testing.T) {
	// GIVEN: A contract created with an end date already in the past
	// WHEN: Adding it
	// THEN: The structural-change entry point lands it as Completed

	s, _ := newContractService(t)
	c := draftContract()
	c.StartDate = ledger.NewDate(2024, time.January, 1)
	c.EndDate = ledger.NewDate(2024, time.December, 31)

	created, err := s.Add(context.Background(), c, today)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, created.Status.Code)
}

func TestContractService_Update_PreservesPolicyStatus(t *testing.T) {
	// GIVEN: A contract whose status the payment policy set to Debt
	// WHEN: A structural edit changes the rent
	// THEN: The Debt status survives - structural edits only run the
	//       expiry check, never the paid/debt evaluation

	s, _ := newContractService(t)
	ctx := context.Background()

	created, err := s.Add(ctx, draftContract(), today)
	require.NoError(t, err)
	require.NoError(t, s.SetStatus(ctx, created.ID, ledger.Debt(dec("30000"))))

	edit := created
	edit.MonthlyRent = dec("60000")
	updated, err := s.Update(ctx, edit, today)
	require.NoError(t, err)

	assert.Equal(t, ledger.StatusDebt, updated.Status.Code)
	assert.True(t, updated.Status.Debt.Equal(dec("30000")), "stale debt amount preserved")
}

func TestContractService_Update_ExpiredEndDate_Completes(t *testing.T) {
	s, _ := newContractService(t)
	ctx := context.Background()

	created, err := s.Add(ctx, draftContract(), today)
	require.NoError(t, err)

	edit := created
	edit.EndDate = today.AddDays(-1)
	updated, err := s.Update(ctx, edit, today)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, updated.Status.Code)
}

// =============================================================================
// EXPIRY SWEEP
// =============================================================================

func TestContractService_RefreshExpired_SweepsAndPersists(t *testing.T) {
	// GIVEN: An active contract whose end date passes
	// WHEN: The daily sweep runs with a later "today"
	// THEN: The contract completes and the change is persisted

	s, mem := newContractService(t)
	ctx := context.Background()

	created, err := s.Add(ctx, draftContract(), today)
	require.NoError(t, err)

	later := created.EndDate.AddDays(1)
	changed, err := s.RefreshExpired(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	persisted, err := mem.LoadAllContracts(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, ledger.StatusCompleted, persisted[0].Status.Code)

	// Second sweep is a no-op
	changed, err = s.RefreshExpired(ctx, later.AddDays(30))
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

// =============================================================================
// REFERENCE QUERIES
// =============================================================================

func TestContractService_ReferenceQueries(t *testing.T) {
	s, _ := newContractService(t)

	_, err := s.Add(context.Background(), draftContract(), today)
	require.NoError(t, err)

	assert.True(t, s.ReferencesTenant("tenant-1"))
	assert.True(t, s.ReferencesLandlord("landlord-1"))
	assert.True(t, s.ReferencesProperty("property-1"))
	assert.False(t, s.ReferencesTenant("tenant-2"))
	assert.False(t, s.ReferencesProperty("property-9"))
}

func TestContractService_Delete(t *testing.T) {
	s, _ := newContractService(t)
	ctx := context.Background()

	created, err := s.Add(ctx, draftContract(), today)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Empty(t, s.All())

	err = s.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
