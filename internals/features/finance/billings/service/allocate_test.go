package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	userModel "github.com/nlekkerman/roomie/internals/features/users/user/model"
)

func TestAllocateBillingSplitsBetweenCurrentTenants(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedActiveTenancy(t, db, propertyID, alice)
	seedActiveTenancy(t, db, propertyID, bob)

	billing := seedBilling(t, db, propertyID, "1000.00")

	result, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TenantCount)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 2)
	for _, share := range shares {
		assert.True(t, share.TenantBillingAmount.Equal(mustDecimal(t, "500.00")))
		assert.Equal(t, billingModel.BillingPending, share.TenantBillingStatus)
		assert.Equal(t, billingModel.CategoryElectricity, share.TenantBillingCategory)
		require.NotNil(t, share.TenantBillingDeadline)
	}

	// Each share carries exactly one cash-flow entry pointing back at it.
	for _, tenantID := range []uuid.UUID{alice, bob} {
		flows := loadCashFlows(t, db, tenantID)
		require.Len(t, flows, 1)
		require.NotNil(t, flows[0].UserCashFlowTenantBillingID)
		assert.True(t, flows[0].UserCashFlowAmount.Equal(mustDecimal(t, "500.00")))
	}

	// The split snapshot lands on the billing row.
	var reloaded billingModel.PropertyBillingModel
	require.NoError(t, db.First(&reloaded, "property_billing_id = ?", billing.PropertyBillingID).Error)
	assert.NotEmpty(t, reloaded.PropertyBillingSplitSnapshot)
}

func TestAllocateBillingIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billing := seedBilling(t, db, propertyID, "300.00")

	first, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	assert.Len(t, shares, 1)
	assert.Len(t, loadCashFlows(t, db, alice), 1)
}

func TestAllocateBillingRerunSplitsOnlyTheRemainder(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	// Bob's residency exists but his user row does not yet, so the first
	// run covers only alice and leaves half the total unassigned.
	alice := seedUser(t, db, "alice")
	bobID := uuid.New()
	seedActiveTenancy(t, db, propertyID, alice)
	seedActiveTenancy(t, db, propertyID, bobID)

	billing := seedBilling(t, db, propertyID, "600.00")

	first, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 1, first.Failed)

	bob := userModel.UserModel{
		ID:       bobID,
		UserName: "bob",
		Email:    "bob@example.com",
		Password: "secret-password",
		Role:     "tenant",
		IsActive: true,
	}
	require.NoError(t, db.Create(&bob).Error)

	second, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Created) // bob
	assert.Equal(t, 1, second.Skipped) // alice

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 2)
	assertSharesWithinTotal(t, billing.PropertyBillingAmount, shares)
	// Bob gets the unassigned half, not a fresh per-head cut of the total.
	assert.True(t, shares[0].TenantBillingAmount.Equal(mustDecimal(t, "300.00")))
	assert.True(t, shares[1].TenantBillingAmount.Equal(mustDecimal(t, "300.00")))
}

func TestAllocateBillingRerunNeverExceedsTotal(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	// First run hands the whole total to the sole tenant.
	billing := seedBilling(t, db, propertyID, "600.00")
	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	// Bob moves in afterwards. There is nothing left of this billing to
	// hand out, so he gets no share and the sum stays at the total.
	bob := seedUser(t, db, "bob")
	seedActiveTenancy(t, db, propertyID, bob)

	result, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Skipped)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 1)
	assertSharesWithinTotal(t, billing.PropertyBillingAmount, shares)
	assert.True(t, shares[0].TenantBillingAmount.Equal(mustDecimal(t, "600.00")))
	assert.Empty(t, loadCashFlows(t, db, bob))
}

func TestAllocateBillingWithNoTenantsIsANoOp(t *testing.T) {
	db := openTestDB(t)
	billing := seedBilling(t, db, uuid.New(), "450.00")

	result, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TenantCount)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, loadTenantBillings(t, db, billing.PropertyBillingID))
}

func TestAllocateBillingSkipsNonPendingBilling(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billing := seedBilling(t, db, propertyID, "200.00")
	require.NoError(t, db.Model(billing).
		Update("property_billing_status", billingModel.BillingPaid).Error)
	billing.PropertyBillingStatus = billingModel.BillingPaid

	result, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, loadTenantBillings(t, db, billing.PropertyBillingID))
}

func TestAllocateBillingContinuesPastMissingTenant(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)
	// Residency record for a user that no longer exists.
	seedActiveTenancy(t, db, propertyID, uuid.New())

	billing := seedBilling(t, db, propertyID, "500.00")

	result, err := AllocateBilling(db, billing)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TenantCount)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 1)
	assert.Equal(t, alice, shares[0].TenantBillingTenantID)
	assert.True(t, shares[0].TenantBillingAmount.Equal(mustDecimal(t, "250.00")))
}

func TestAllocateBillingDeadlineFallsBackToThirtyDays(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billing := seedBilling(t, db, propertyID, "100.00")
	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 1)
	require.NotNil(t, shares[0].TenantBillingDeadline)

	want := billing.PropertyBillingDate.AddDate(0, 0, 30)
	assert.WithinDuration(t, want, *shares[0].TenantBillingDeadline, time.Hour)
}

func TestAllocateBillingHonorsExplicitDueDate(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	due := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	billing := seedBilling(t, db, propertyID, "100.00")
	require.NoError(t, db.Model(billing).Update("property_billing_due_date", due).Error)
	billing.PropertyBillingDueDate = &due

	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	shares := loadTenantBillings(t, db, billing.PropertyBillingID)
	require.Len(t, shares, 1)
	require.NotNil(t, shares[0].TenantBillingDeadline)
	assert.WithinDuration(t, due, *shares[0].TenantBillingDeadline, time.Second)
}
