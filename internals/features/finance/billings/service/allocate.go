package service

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	cashflowModel "github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
	tenancyService "github.com/nlekkerman/roomie/internals/features/properties/tenancy/service"
	userModel "github.com/nlekkerman/roomie/internals/features/users/user/model"
)

// deadlineGraceDays is how long a tenant has to settle a share when the
// billing carries no explicit due date.
const deadlineGraceDays = 30

// AllocationResult summarizes one allocation run over a property billing.
type AllocationResult struct {
	TenantCount int             `json:"tenant_count"`
	Created     int             `json:"created"`
	Skipped     int             `json:"skipped"`
	Failed      int             `json:"failed"`
	Share       decimal.Decimal `json:"share"`
}

// splitSnapshot is what gets persisted on the billing after an allocation
// run, so the split stays auditable even after tenants move out.
type splitSnapshot struct {
	AllocatedAt time.Time   `json:"allocated_at"`
	TenantIDs   []uuid.UUID `json:"tenant_ids"`
	Share       string      `json:"share"`
}

// AllocateBilling fans a pending property billing out into one tenant billing
// plus one linked cash-flow entry per current tenant. The run is idempotent:
// tenants that already hold a share for this billing are skipped, and the
// composite unique index on (billing, tenant) absorbs concurrent duplicates.
// On a re-run only the amount not yet handed out gets split, between the
// tenants without a share, so the sum of shares can never exceed the billing
// total. A failure on one tenant never aborts the others.
func AllocateBilling(db *gorm.DB, billing *billingModel.PropertyBillingModel) (AllocationResult, error) {
	var result AllocationResult

	if billing.PropertyBillingStatus != billingModel.BillingPending {
		log.Printf("[ALLOCATE] billing %s is %s, nothing to allocate",
			billing.PropertyBillingID, billing.PropertyBillingStatus)
		return result, nil
	}

	records, err := tenancyService.CurrentTenantRecords(db, billing.PropertyBillingPropertyID)
	if err != nil {
		return result, err
	}
	result.TenantCount = len(records)

	if len(records) == 0 {
		log.Printf("[ALLOCATE] billing %s: property has no current tenants", billing.PropertyBillingID)
		return result, nil
	}

	allocated, covered, err := existingShares(db, billing.PropertyBillingID)
	if err != nil {
		return result, err
	}

	tenantIDs := make([]uuid.UUID, 0, len(records))
	uncovered := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		tenantIDs = append(tenantIDs, rec.PropertyTenantRecordTenantID)
		if covered[rec.PropertyTenantRecordTenantID] {
			result.Skipped++
			continue
		}
		uncovered = append(uncovered, rec.PropertyTenantRecordTenantID)
	}
	if len(uncovered) == 0 {
		return result, nil
	}

	remainder := billing.PropertyBillingAmount.Sub(allocated)
	if !remainder.IsPositive() {
		log.Printf("[ALLOCATE] billing %s: total already handed out, nothing left for %d new tenant(s)",
			billing.PropertyBillingID, len(uncovered))
		result.Skipped += len(uncovered)
		return result, nil
	}

	shares, err := SplitEvenly(remainder, len(uncovered))
	if err != nil {
		return result, err
	}
	if shares[0].IsZero() {
		// Remainder is pure rounding dust, below one cent per tenant.
		result.Skipped += len(uncovered)
		return result, nil
	}
	result.Share = shares[0]

	deadline := allocationDeadline(billing)

	for i, tenantID := range uncovered {
		if err := allocateShare(db, billing, tenantID, shares[i], deadline); err != nil {
			if errors.Is(err, errShareExists) {
				result.Skipped++
				continue
			}
			log.Printf("[ALLOCATE] billing %s tenant %s: %v",
				billing.PropertyBillingID, tenantID, err)
			result.Failed++
			continue
		}
		result.Created++
	}

	if err := writeSplitSnapshot(db, billing, tenantIDs, result.Share); err != nil {
		log.Printf("[ALLOCATE] billing %s: snapshot not saved: %v", billing.PropertyBillingID, err)
	}

	return result, nil
}

// existingShares sums what earlier runs already assigned for this billing and
// reports which tenants hold a share.
func existingShares(db *gorm.DB, billingID uuid.UUID) (decimal.Decimal, map[uuid.UUID]bool, error) {
	var rows []billingModel.TenantBillingModel
	err := db.
		Select("tenant_billing_tenant_id", "tenant_billing_amount").
		Where("tenant_billing_billing_id = ?", billingID).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, nil, err
	}

	allocated := decimal.Zero
	covered := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		allocated = allocated.Add(row.TenantBillingAmount)
		covered[row.TenantBillingTenantID] = true
	}
	return allocated, covered, nil
}

// errShareExists marks an allocation that was already done in a prior run.
var errShareExists = errors.New("tenant already billed")

// allocateShare writes one tenant's share atomically: the tenant billing row
// and the cash-flow entry that points back at it commit or roll back together.
func allocateShare(db *gorm.DB, billing *billingModel.PropertyBillingModel, tenantID uuid.UUID, share decimal.Decimal, deadline time.Time) error {
	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", tenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("tenant user not found")
	}

	if err := db.Model(&billingModel.TenantBillingModel{}).
		Where("tenant_billing_billing_id = ? AND tenant_billing_tenant_id = ?",
			billing.PropertyBillingID, tenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errShareExists
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		tb := billingModel.TenantBillingModel{
			TenantBillingBillingID: billing.PropertyBillingID,
			TenantBillingTenantID:  tenantID,
			TenantBillingAmount:    share,
			TenantBillingCategory:  billing.PropertyBillingCategory,
			TenantBillingStatus:    billingModel.BillingPending,
			TenantBillingDeadline:  &deadline,
		}
		if err := tx.Create(&tb).Error; err != nil {
			return err
		}

		cf := cashflowModel.UserCashFlowModel{
			UserCashFlowUserID:          tenantID,
			UserCashFlowTenantBillingID: &tb.TenantBillingID,
			UserCashFlowAmount:          share,
			UserCashFlowDate:            billing.PropertyBillingDate,
			UserCashFlowDescription:     billing.PropertyBillingDescription,
			UserCashFlowCategory:        string(billing.PropertyBillingCategory),
			UserCashFlowStatus:          cashflowModel.CashFlowPending,
			UserCashFlowDeadline:        &deadline,
		}
		return tx.Create(&cf).Error
	})
	if err != nil {
		// A concurrent run can win the race between our existence check and
		// the insert; the unique index turns that into a duplicate error.
		if isUniqueViolation(err) {
			return errShareExists
		}
		return err
	}
	return nil
}

// allocationDeadline picks the billing's due date, or date + 30 days when the
// owner left the due date blank.
func allocationDeadline(billing *billingModel.PropertyBillingModel) time.Time {
	if billing.PropertyBillingDueDate != nil {
		return *billing.PropertyBillingDueDate
	}
	return billing.PropertyBillingDate.AddDate(0, 0, deadlineGraceDays)
}

func writeSplitSnapshot(db *gorm.DB, billing *billingModel.PropertyBillingModel, tenantIDs []uuid.UUID, share decimal.Decimal) error {
	raw, err := json.Marshal(splitSnapshot{
		AllocatedAt: time.Now().UTC(),
		TenantIDs:   tenantIDs,
		Share:       share.StringFixed(2),
	})
	if err != nil {
		return err
	}
	billing.PropertyBillingSplitSnapshot = datatypes.JSON(raw)
	return db.Model(billing).
		Update("property_billing_split_snapshot", billing.PropertyBillingSplitSnapshot).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
