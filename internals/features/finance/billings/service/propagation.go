package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	cashflowModel "github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
)

// PropagateCashflowStatus pushes a cash-flow status change up the chain:
// cash flow -> tenant billing -> property billing. The parent billing is
// recomputed from scratch on every call, so the function is safe to invoke
// again after a payment is reverted. Ad-hoc entries (no tenant-billing link)
// are left alone.
func PropagateCashflowStatus(db *gorm.DB, cf *cashflowModel.UserCashFlowModel) error {
	if !cf.IsLinked() {
		return nil
	}

	var tb billingModel.TenantBillingModel
	err := db.First(&tb, "tenant_billing_id = ?", *cf.UserCashFlowTenantBillingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The share was removed after the cash flow was created. Nothing
		// upstream to update; keep the payable usable on its own.
		log.Printf("[PROPAGATE] cash flow %s points at missing tenant billing %s",
			cf.UserCashFlowID, *cf.UserCashFlowTenantBillingID)
		return nil
	}
	if err != nil {
		return err
	}

	if err := syncTenantBilling(db, &tb, cf); err != nil {
		return err
	}
	return recomputeBillingStatus(db, tb.TenantBillingBillingID)
}

// syncTenantBilling mirrors the cash-flow status onto its tenant billing.
// Writes are skipped when the row already matches, so repeat calls are cheap.
func syncTenantBilling(db *gorm.DB, tb *billingModel.TenantBillingModel, cf *cashflowModel.UserCashFlowModel) error {
	switch cf.UserCashFlowStatus {
	case cashflowModel.CashFlowPaid:
		if tb.TenantBillingStatus == billingModel.BillingPaid {
			return nil
		}
		now := time.Now().UTC()
		tb.TenantBillingStatus = billingModel.BillingPaid
		tb.TenantBillingPaidAt = &now
		return db.Model(tb).Updates(map[string]interface{}{
			"tenant_billing_status":  billingModel.BillingPaid,
			"tenant_billing_paid_at": now,
		}).Error
	default:
		if tb.TenantBillingStatus == billingModel.BillingPending {
			return nil
		}
		tb.TenantBillingStatus = billingModel.BillingPending
		tb.TenantBillingPaidAt = nil
		return db.Model(tb).Updates(map[string]interface{}{
			"tenant_billing_status":  billingModel.BillingPending,
			"tenant_billing_paid_at": nil,
		}).Error
	}
}

// recomputeBillingStatus derives the property billing's status from its own
// tenant billings only. Shares belonging to other billings of the same
// property never enter the count.
func recomputeBillingStatus(db *gorm.DB, billingID uuid.UUID) error {
	var pending int64
	err := db.Model(&billingModel.TenantBillingModel{}).
		Where("tenant_billing_billing_id = ? AND tenant_billing_status <> ?",
			billingID, billingModel.BillingPaid).
		Count(&pending).Error
	if err != nil {
		return err
	}

	var total int64
	err = db.Model(&billingModel.TenantBillingModel{}).
		Where("tenant_billing_billing_id = ?", billingID).
		Count(&total).Error
	if err != nil {
		return err
	}

	status := billingModel.BillingPending
	if total > 0 && pending == 0 {
		status = billingModel.BillingPaid
	}

	return db.Model(&billingModel.PropertyBillingModel{}).
		Where("property_billing_id = ?", billingID).
		Update("property_billing_status", status).Error
}
