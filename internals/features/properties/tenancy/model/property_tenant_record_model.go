package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyTenantRecordModel represents the property_tenant_records table:
// one residency interval per tenant per property. A NULL end date means the
// tenant currently lives there.
type PropertyTenantRecordModel struct {
	PropertyTenantRecordID uuid.UUID `gorm:"column:property_tenant_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"property_tenant_record_id"`

	PropertyTenantRecordPropertyID uuid.UUID `gorm:"column:property_tenant_record_property_id;type:uuid;not null;index:idx_property_tenant_records_property" json:"property_tenant_record_property_id"`
	PropertyTenantRecordTenantID   uuid.UUID `gorm:"column:property_tenant_record_tenant_id;type:uuid;not null;index:idx_property_tenant_records_tenant" json:"property_tenant_record_tenant_id"`

	PropertyTenantRecordStartDate time.Time  `gorm:"column:property_tenant_record_start_date;type:date;not null" json:"property_tenant_record_start_date"`
	PropertyTenantRecordEndDate   *time.Time `gorm:"column:property_tenant_record_end_date;type:date" json:"property_tenant_record_end_date,omitempty"`

	PropertyTenantRecordCreatedAt time.Time  `gorm:"column:property_tenant_record_created_at;autoCreateTime" json:"property_tenant_record_created_at"`
	PropertyTenantRecordUpdatedAt *time.Time `gorm:"column:property_tenant_record_updated_at;autoUpdateTime" json:"property_tenant_record_updated_at,omitempty"`
}

func (PropertyTenantRecordModel) TableName() string { return "property_tenant_records" }

func (r *PropertyTenantRecordModel) BeforeCreate(tx *gorm.DB) error {
	if r.PropertyTenantRecordID == uuid.Nil {
		r.PropertyTenantRecordID = uuid.New()
	}
	if r.PropertyTenantRecordStartDate.IsZero() {
		r.PropertyTenantRecordStartDate = time.Now().UTC()
	}
	return nil
}

// IsActive reports whether this record is the tenant's current residency.
func (r *PropertyTenantRecordModel) IsActive() bool {
	return r.PropertyTenantRecordEndDate == nil
}
