/*
payments_test.go - PaymentService tests

Exercises the payment-to-status write-back: every payment mutation
recomputes the linked contract through the payment-triggered rules and
persists the result. Also covers balance lookup, orphan payments, and
the cross-entity substring search.
*/
package rental_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/ledger/store"
	"github.com/rentfold/ledger-engine/rental"
)

func d(year int, month time.Month, day int) ledger.Date {
	return ledger.NewDate(year, month, day)
}

type paymentFixture struct {
	payments  *rental.PaymentService
	contracts *rental.ContractService
	mem       *store.Memory
	contract  ledger.Contract
}

// newPaymentFixture wires the full service graph over in-memory stores
// with one active 50000/month contract already in place.
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	ctx := context.Background()
	log := quietLogger()

	mem := store.NewMemory()
	parties := rental.NewPartyMemory()

	contracts, err := rental.OpenContractService(ctx, mem, today, log)
	require.NoError(t, err)
	tenants, err := rental.OpenTenantService(ctx, parties, contracts, log)
	require.NoError(t, err)
	properties, err := rental.OpenPropertyService(ctx, parties, contracts, log)
	require.NoError(t, err)

	tenant, err := tenants.Add(ctx, rental.Tenant{ID: "tenant-1", FullName: "Anna Petrova"})
	require.NoError(t, err)
	prop, err := properties.Add(ctx, rental.Property{ID: "property-1", Title: "Riverside Loft", Price: dec("50000")})
	require.NoError(t, err)

	c := draftContract()
	c.TenantID = tenant.ID
	c.PropertyID = prop.ID
	created, err := contracts.Add(ctx, c, today)
	require.NoError(t, err)

	l, err := ledger.OpenPaymentLedger(ctx, mem)
	require.NoError(t, err)

	return &paymentFixture{
		payments:  rental.NewPaymentService(l, contracts, tenants, properties, log),
		contracts: contracts,
		mem:       mem,
		contract:  created,
	}
}

func (f *paymentFixture) status(t *testing.T) ledger.Status {
	t.Helper()
	c, err := f.contracts.Get(f.contract.ID)
	require.NoError(t, err)
	return c.Status
}

func (f *paymentFixture) addRent(t *testing.T, amount string, day ledger.Date) ledger.Payment {
	t.Helper()
	p, err := f.payments.Add(context.Background(), ledger.Payment{
		ContractID: f.contract.ID,
		Date:       day,
		Amount:     dec(amount),
		Category:   ledger.CategoryRent,
	}, today)
	require.NoError(t, err)
	return p
}

// =============================================================================
// STATUS WRITE-BACK
// =============================================================================

func TestPaymentService_Add_DrivesContractStatus(t *testing.T) {
	// GIVEN: An active contract with 50000 monthly rent
	// WHEN: A partial rent payment lands, then the remainder
	// THEN: Debt(30000), then PaidInFull, each persisted

	f := newPaymentFixture(t)
	ctx := context.Background()

	f.addRent(t, "20000", d(2025, time.June, 1))
	st := f.status(t)
	assert.Equal(t, ledger.StatusDebt, st.Code)
	assert.True(t, st.Debt.Equal(dec("30000")))

	f.addRent(t, "30000", d(2025, time.June, 10))
	assert.Equal(t, ledger.StatusPaidInFull, f.status(t).Code)

	persisted, err := f.mem.LoadAllContracts(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, ledger.StatusPaidInFull, persisted[0].Status.Code)
}

func TestPaymentService_NonRentPayment_LeavesStatusDebt(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.payments.Add(context.Background(), ledger.Payment{
		ContractID: f.contract.ID,
		Date:       d(2025, time.June, 1),
		Amount:     dec("999999"),
		Category:   ledger.CategoryUtilities,
	}, today)
	require.NoError(t, err)

	st := f.status(t)
	assert.Equal(t, ledger.StatusDebt, st.Code)
	assert.True(t, st.Debt.Equal(dec("50000")), "full rent still owed")
}

func TestPaymentService_Delete_RecomputesStatus(t *testing.T) {
	// GIVEN: A contract paid in full
	// WHEN: The payment is deleted
	// THEN: The contract falls back to full debt

	f := newPaymentFixture(t)
	p := f.addRent(t, "50000", d(2025, time.June, 1))
	require.Equal(t, ledger.StatusPaidInFull, f.status(t).Code)

	require.NoError(t, f.payments.Delete(context.Background(), p.ID, today))

	st := f.status(t)
	assert.Equal(t, ledger.StatusDebt, st.Code)
	assert.True(t, st.Debt.Equal(dec("50000")))
}

func TestPaymentService_Update_MoveToOtherContract_RefreshesBoth(t *testing.T) {
	// GIVEN: Two contracts, the first paid in full by one payment
	// WHEN: That payment is reassigned to the second contract
	// THEN: The first falls back to debt and the second becomes paid

	f := newPaymentFixture(t)
	ctx := context.Background()

	second := draftContract()
	second.TenantID = "tenant-2"
	other, err := f.contracts.Add(ctx, second, today)
	require.NoError(t, err)

	p := f.addRent(t, "50000", d(2025, time.June, 1))
	require.Equal(t, ledger.StatusPaidInFull, f.status(t).Code)

	p.ContractID = other.ID
	require.NoError(t, f.payments.Update(ctx, p, today))

	assert.Equal(t, ledger.StatusDebt, f.status(t).Code)
	moved, err := f.contracts.Get(other.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPaidInFull, moved.Status.Code)
}

func TestPaymentService_CompletedContract_StatusSticky(t *testing.T) {
	// GIVEN: A contract the sweep marked Completed
	// WHEN: A full rent payment arrives afterwards
	// THEN: The status stays Completed

	f := newPaymentFixture(t)
	ctx := context.Background()
	require.NoError(t, f.contracts.SetStatus(ctx, f.contract.ID, ledger.Completed()))

	f.addRent(t, "50000", d(2025, time.June, 1))
	assert.Equal(t, ledger.StatusCompleted, f.status(t).Code)
}

// =============================================================================
// REFERENCES AND ORPHANS
// =============================================================================

func TestPaymentService_Add_MissingContract_NotFound(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.payments.Add(context.Background(), ledger.Payment{
		ContractID: "contract-nope",
		Date:       d(2025, time.June, 1),
		Amount:     dec("100"),
		Category:   ledger.CategoryRent,
	}, today)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestPaymentService_OrphanPayment_NoStatusEffect(t *testing.T) {
	// GIVEN: A payment with no contract reference
	// WHEN: It is added and later deleted
	// THEN: Both succeed and no contract status moves

	f := newPaymentFixture(t)
	ctx := context.Background()
	before := f.status(t)

	p, err := f.payments.Add(ctx, ledger.Payment{
		Date:     d(2025, time.June, 1),
		Amount:   dec("5000"),
		Category: ledger.CategoryDeposit,
	}, today)
	require.NoError(t, err)
	assert.Equal(t, before, f.status(t))

	require.NoError(t, f.payments.Delete(ctx, p.ID, today))
	assert.Equal(t, before, f.status(t))
}

// =============================================================================
// BALANCE AND SEARCH
// =============================================================================

func TestPaymentService_Balance(t *testing.T) {
	f := newPaymentFixture(t)

	f.addRent(t, "20000", d(2025, time.June, 1))
	got, err := f.payments.Balance(f.contract.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-30000")), "got %s", got)

	_, err = f.payments.Balance("contract-nope")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestPaymentService_Search(t *testing.T) {
	// GIVEN: A rent payment on a contract linked to Anna Petrova and the
	//        Riverside Loft, plus an orphan deposit
	// WHEN: Searching by category, notes, tenant name, and property title
	// THEN: Substring match, case-insensitive, across all four

	f := newPaymentFixture(t)
	ctx := context.Background()

	f.addRent(t, "20000", d(2025, time.June, 1))
	_, err := f.payments.Add(ctx, ledger.Payment{
		Date:     d(2025, time.June, 2),
		Amount:   dec("5000"),
		Category: ledger.CategoryDeposit,
		Notes:    "key handover",
	}, today)
	require.NoError(t, err)

	assert.Len(t, f.payments.Search("rent"), 1)
	assert.Len(t, f.payments.Search("handover"), 1)
	assert.Len(t, f.payments.Search("PETROVA"), 1)
	assert.Len(t, f.payments.Search("riverside"), 1)
	assert.Len(t, f.payments.Search(""), 2)
	assert.Empty(t, f.payments.Search("no such thing"))
}
