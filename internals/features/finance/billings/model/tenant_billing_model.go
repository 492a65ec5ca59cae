package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TenantBillingModel represents the tenant_billings table: one tenant's share
// of a property billing. The composite unique index on (billing_id, tenant_id)
// is the storage-level guard that makes allocation idempotent — duplicates can
// not be created even by racing requests.
type TenantBillingModel struct {
	TenantBillingID uuid.UUID `gorm:"column:tenant_billing_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenant_billing_id"`

	// FK to the property billing header (NOT NULL, CASCADE)
	TenantBillingBillingID uuid.UUID `gorm:"column:tenant_billing_billing_id;type:uuid;not null;index:idx_tenant_billings_billing;uniqueIndex:uq_tenant_billings_billing_tenant" json:"tenant_billing_billing_id"`

	// FK to users
	TenantBillingTenantID uuid.UUID `gorm:"column:tenant_billing_tenant_id;type:uuid;not null;index:idx_tenant_billings_tenant;uniqueIndex:uq_tenant_billings_billing_tenant" json:"tenant_billing_tenant_id"`

	TenantBillingAmount   decimal.Decimal `gorm:"column:tenant_billing_amount;type:numeric(10,2);not null" json:"tenant_billing_amount"`
	TenantBillingCategory BillingCategory `gorm:"column:tenant_billing_category;type:varchar(20);not null" json:"tenant_billing_category"`
	TenantBillingStatus   BillingStatus   `gorm:"column:tenant_billing_status;type:varchar(20);not null;default:'pending'" json:"tenant_billing_status"`
	TenantBillingDeadline *time.Time      `gorm:"column:tenant_billing_deadline;type:date" json:"tenant_billing_deadline,omitempty"`
	TenantBillingPaidAt   *time.Time      `gorm:"column:tenant_billing_paid_at" json:"tenant_billing_paid_at,omitempty"`

	TenantBillingCreatedAt time.Time  `gorm:"column:tenant_billing_created_at;autoCreateTime" json:"tenant_billing_created_at"`
	TenantBillingUpdatedAt *time.Time `gorm:"column:tenant_billing_updated_at;autoUpdateTime" json:"tenant_billing_updated_at,omitempty"`
}

func (TenantBillingModel) TableName() string { return "tenant_billings" }

func (t *TenantBillingModel) BeforeCreate(tx *gorm.DB) error {
	if t.TenantBillingID == uuid.Nil {
		t.TenantBillingID = uuid.New()
	}
	if t.TenantBillingStatus == "" {
		t.TenantBillingStatus = BillingPending
	}
	return nil
}
