package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	cashflowModel "github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
)

func markPaid(t *testing.T, db *gorm.DB, cf *cashflowModel.UserCashFlowModel) {
	t.Helper()
	now := time.Now().UTC()
	cf.UserCashFlowStatus = cashflowModel.CashFlowPaid
	cf.UserCashFlowPaidAt = &now
	require.NoError(t, db.Model(cf).Updates(map[string]interface{}{
		"user_cash_flow_status":  cashflowModel.CashFlowPaid,
		"user_cash_flow_paid_at": now,
	}).Error)
	require.NoError(t, PropagateCashflowStatus(db, cf))
}

func billingStatus(t *testing.T, db *gorm.DB, billingID uuid.UUID) billingModel.BillingStatus {
	t.Helper()
	var billing billingModel.PropertyBillingModel
	require.NoError(t, db.First(&billing, "property_billing_id = ?", billingID).Error)
	return billing.PropertyBillingStatus
}

func TestPropagationMarksBillingPaidWhenAllSharesSettle(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedActiveTenancy(t, db, propertyID, alice)
	seedActiveTenancy(t, db, propertyID, bob)

	billing := seedBilling(t, db, propertyID, "800.00")
	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	aliceFlows := loadCashFlows(t, db, alice)
	bobFlows := loadCashFlows(t, db, bob)
	require.Len(t, aliceFlows, 1)
	require.Len(t, bobFlows, 1)

	// First payment: the billing stays pending.
	markPaid(t, db, &aliceFlows[0])
	assert.Equal(t, billingModel.BillingPending, billingStatus(t, db, billing.PropertyBillingID))

	var share billingModel.TenantBillingModel
	require.NoError(t, db.First(&share, "tenant_billing_id = ?", *aliceFlows[0].UserCashFlowTenantBillingID).Error)
	assert.Equal(t, billingModel.BillingPaid, share.TenantBillingStatus)
	assert.NotNil(t, share.TenantBillingPaidAt)

	// Second payment: now every share is settled, the billing flips.
	markPaid(t, db, &bobFlows[0])
	assert.Equal(t, billingModel.BillingPaid, billingStatus(t, db, billing.PropertyBillingID))
}

func TestPropagationScopesToOneBilling(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billingA := seedBilling(t, db, propertyID, "100.00")
	billingB := seedBilling(t, db, propertyID, "200.00")
	_, err := AllocateBilling(db, billingA)
	require.NoError(t, err)
	_, err = AllocateBilling(db, billingB)
	require.NoError(t, err)

	flows := loadCashFlows(t, db, alice)
	require.Len(t, flows, 2)

	// Pay only billing A's entry.
	sharesA := loadTenantBillings(t, db, billingA.PropertyBillingID)
	require.Len(t, sharesA, 1)
	for i := range flows {
		if *flows[i].UserCashFlowTenantBillingID == sharesA[0].TenantBillingID {
			markPaid(t, db, &flows[i])
		}
	}

	// Paying A settles A; B's own pending share never enters A's count,
	// and A's paid share never settles B.
	assert.Equal(t, billingModel.BillingPaid, billingStatus(t, db, billingA.PropertyBillingID))
	assert.Equal(t, billingModel.BillingPending, billingStatus(t, db, billingB.PropertyBillingID))
}

func TestPropagationIgnoresUnlinkedEntries(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	cf := cashflowModel.UserCashFlowModel{
		UserCashFlowUserID:   alice,
		UserCashFlowAmount:   mustDecimal(t, "25.00"),
		UserCashFlowDate:     time.Now().UTC(),
		UserCashFlowCategory: "groceries",
		UserCashFlowStatus:   cashflowModel.CashFlowPaid,
	}
	require.NoError(t, db.Create(&cf).Error)

	assert.NoError(t, PropagateCashflowStatus(db, &cf))
}

func TestPropagationToleratesDanglingLink(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	missing := uuid.New()
	cf := cashflowModel.UserCashFlowModel{
		UserCashFlowUserID:          alice,
		UserCashFlowTenantBillingID: &missing,
		UserCashFlowAmount:          mustDecimal(t, "40.00"),
		UserCashFlowDate:            time.Now().UTC(),
		UserCashFlowCategory:        "rent",
		UserCashFlowStatus:          cashflowModel.CashFlowPaid,
	}
	require.NoError(t, db.Create(&cf).Error)

	assert.NoError(t, PropagateCashflowStatus(db, &cf))
}

func TestPropagationRevertsBillingWhenPaymentIsUndone(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billing := seedBilling(t, db, propertyID, "150.00")
	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	flows := loadCashFlows(t, db, alice)
	require.Len(t, flows, 1)

	markPaid(t, db, &flows[0])
	require.Equal(t, billingModel.BillingPaid, billingStatus(t, db, billing.PropertyBillingID))

	// Undo the payment; recomputation drops the billing back to pending.
	flows[0].UserCashFlowStatus = cashflowModel.CashFlowPending
	flows[0].UserCashFlowPaidAt = nil
	require.NoError(t, db.Model(&flows[0]).Updates(map[string]interface{}{
		"user_cash_flow_status":  cashflowModel.CashFlowPending,
		"user_cash_flow_paid_at": nil,
	}).Error)
	require.NoError(t, PropagateCashflowStatus(db, &flows[0]))

	assert.Equal(t, billingModel.BillingPending, billingStatus(t, db, billing.PropertyBillingID))

	var share billingModel.TenantBillingModel
	require.NoError(t, db.First(&share, "tenant_billing_id = ?", *flows[0].UserCashFlowTenantBillingID).Error)
	assert.Equal(t, billingModel.BillingPending, share.TenantBillingStatus)
	assert.Nil(t, share.TenantBillingPaidAt)
}

func TestPropagationIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()

	alice := seedUser(t, db, "alice")
	seedActiveTenancy(t, db, propertyID, alice)

	billing := seedBilling(t, db, propertyID, "90.00")
	_, err := AllocateBilling(db, billing)
	require.NoError(t, err)

	flows := loadCashFlows(t, db, alice)
	require.Len(t, flows, 1)

	markPaid(t, db, &flows[0])
	require.NoError(t, PropagateCashflowStatus(db, &flows[0]))
	require.NoError(t, PropagateCashflowStatus(db, &flows[0]))

	assert.Equal(t, billingModel.BillingPaid, billingStatus(t, db, billing.PropertyBillingID))
}
