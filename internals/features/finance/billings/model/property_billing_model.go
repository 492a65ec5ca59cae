package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Billing categories (rent plus the utility categories of the old cash_flow app)
type BillingCategory string

const (
	CategoryRent        BillingCategory = "rent"
	CategoryElectricity BillingCategory = "electricity"
	CategoryGarbage     BillingCategory = "garbage"
	CategoryInternet    BillingCategory = "internet"
	CategoryHeating     BillingCategory = "heating"
)

// Billing status: pending → paid, paid is terminal
type BillingStatus string

const (
	BillingPending BillingStatus = "pending"
	BillingPaid    BillingStatus = "paid"
)

// PropertyBillingModel represents the property_billings table: one
// property-level charge (a rent cycle or a utility posting). Its status is
// derived from the tenant_billings under it once the charge is split; it is
// never set directly by a user for split charges.
type PropertyBillingModel struct {
	PropertyBillingID uuid.UUID `gorm:"column:property_billing_id;type:uuid;default:gen_random_uuid();primaryKey" json:"property_billing_id"`

	PropertyBillingPropertyID uuid.UUID `gorm:"column:property_billing_property_id;type:uuid;not null;index:idx_property_billings_property" json:"property_billing_property_id"`

	PropertyBillingCategory    BillingCategory `gorm:"column:property_billing_category;type:varchar(20);not null" json:"property_billing_category"`
	PropertyBillingAmount      decimal.Decimal `gorm:"column:property_billing_amount;type:numeric(10,2);not null" json:"property_billing_amount"`
	PropertyBillingDate        time.Time       `gorm:"column:property_billing_date;type:date;not null" json:"property_billing_date"`
	PropertyBillingDescription string          `gorm:"column:property_billing_description;size:255" json:"property_billing_description"`
	PropertyBillingStatus      BillingStatus   `gorm:"column:property_billing_status;type:varchar(20);not null;default:'pending'" json:"property_billing_status"`
	PropertyBillingDueDate     *time.Time      `gorm:"column:property_billing_due_date;type:date" json:"property_billing_due_date,omitempty"`

	// Split snapshot: who was billed and for how much, written once at
	// allocation time (jsonb).
	PropertyBillingSplitSnapshot datatypes.JSON `gorm:"column:property_billing_split_snapshot;type:jsonb" json:"property_billing_split_snapshot,omitempty"`

	PropertyBillingCreatedAt time.Time      `gorm:"column:property_billing_created_at;autoCreateTime" json:"property_billing_created_at"`
	PropertyBillingUpdatedAt *time.Time     `gorm:"column:property_billing_updated_at;autoUpdateTime" json:"property_billing_updated_at,omitempty"`
	PropertyBillingDeletedAt gorm.DeletedAt `gorm:"column:property_billing_deleted_at;index" json:"property_billing_deleted_at,omitempty"`
}

func (PropertyBillingModel) TableName() string { return "property_billings" }

func (b *PropertyBillingModel) BeforeCreate(tx *gorm.DB) error {
	if b.PropertyBillingID == uuid.Nil {
		b.PropertyBillingID = uuid.New()
	}
	if b.PropertyBillingStatus == "" {
		b.PropertyBillingStatus = BillingPending
	}
	if b.PropertyBillingDate.IsZero() {
		b.PropertyBillingDate = time.Now().UTC()
	}
	return nil
}

// ValidCategory reports whether c is one of the known billing categories.
func ValidCategory(c BillingCategory) bool {
	switch c {
	case CategoryRent, CategoryElectricity, CategoryGarbage, CategoryInternet, CategoryHeating:
		return true
	}
	return false
}
