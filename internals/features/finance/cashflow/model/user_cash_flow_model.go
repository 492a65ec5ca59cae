package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashFlowStatus string

const (
	CashFlowPending CashFlowStatus = "pending"
	CashFlowPaid    CashFlowStatus = "paid"
)

// UserCashFlowModel represents the user_cash_flows table: the tenant-facing
// ledger line the tenant actually marks paid. A row either links back to
// exactly one tenant_billing (then marking it paid propagates upward) or has
// no link at all (ad-hoc personal entry, never propagates).
type UserCashFlowModel struct {
	UserCashFlowID uuid.UUID `gorm:"column:user_cash_flow_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_cash_flow_id"`

	UserCashFlowUserID uuid.UUID `gorm:"column:user_cash_flow_user_id;type:uuid;not null;index:idx_user_cash_flows_user" json:"user_cash_flow_user_id"`

	// Upward link: NULL for ad-hoc entries. One payable per tenant billing.
	UserCashFlowTenantBillingID *uuid.UUID `gorm:"column:user_cash_flow_tenant_billing_id;type:uuid;uniqueIndex:uq_user_cash_flows_tenant_billing" json:"user_cash_flow_tenant_billing_id,omitempty"`

	UserCashFlowAmount      decimal.Decimal `gorm:"column:user_cash_flow_amount;type:numeric(10,2);not null" json:"user_cash_flow_amount"`
	UserCashFlowDate        time.Time       `gorm:"column:user_cash_flow_date;type:date;not null" json:"user_cash_flow_date"`
	UserCashFlowDescription string          `gorm:"column:user_cash_flow_description;size:255" json:"user_cash_flow_description"`
	UserCashFlowCategory    string          `gorm:"column:user_cash_flow_category;type:varchar(20);not null" json:"user_cash_flow_category"`
	UserCashFlowStatus      CashFlowStatus  `gorm:"column:user_cash_flow_status;type:varchar(20);not null;default:'pending'" json:"user_cash_flow_status"`
	UserCashFlowDeadline    *time.Time      `gorm:"column:user_cash_flow_deadline;type:date" json:"user_cash_flow_deadline,omitempty"`
	UserCashFlowPaidAt      *time.Time      `gorm:"column:user_cash_flow_paid_at" json:"user_cash_flow_paid_at,omitempty"`

	UserCashFlowCreatedAt time.Time  `gorm:"column:user_cash_flow_created_at;autoCreateTime" json:"user_cash_flow_created_at"`
	UserCashFlowUpdatedAt *time.Time `gorm:"column:user_cash_flow_updated_at;autoUpdateTime" json:"user_cash_flow_updated_at,omitempty"`
}

func (UserCashFlowModel) TableName() string { return "user_cash_flows" }

func (f *UserCashFlowModel) BeforeCreate(tx *gorm.DB) error {
	if f.UserCashFlowID == uuid.Nil {
		f.UserCashFlowID = uuid.New()
	}
	if f.UserCashFlowStatus == "" {
		f.UserCashFlowStatus = CashFlowPending
	}
	if f.UserCashFlowDate.IsZero() {
		f.UserCashFlowDate = time.Now().UTC()
	}
	return nil
}

// IsLinked reports whether this entry propagates to a tenant billing.
func (f *UserCashFlowModel) IsLinked() bool {
	return f.UserCashFlowTenantBillingID != nil
}
