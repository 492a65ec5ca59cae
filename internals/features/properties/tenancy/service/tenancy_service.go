package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
)

// CurrentTenantRecords returns the active residency records of a property
// (end date IS NULL). Always read fresh — approvals and move-outs must be
// visible immediately, so there is no caching here.
func CurrentTenantRecords(db *gorm.DB, propertyID uuid.UUID) ([]model.PropertyTenantRecordModel, error) {
	var records []model.PropertyTenantRecordModel
	err := db.
		Where("property_tenant_record_property_id = ? AND property_tenant_record_end_date IS NULL", propertyID).
		Order("property_tenant_record_start_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CurrentTenantIDs returns just the tenant IDs of the active records.
func CurrentTenantIDs(db *gorm.DB, propertyID uuid.UUID) ([]uuid.UUID, error) {
	records, err := CurrentTenantRecords(db, propertyID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.PropertyTenantRecordTenantID)
	}
	return ids, nil
}

// OpenTenancy opens a new residency interval for the tenant on the property.
// Any still-open interval of the same tenant on the same property is closed
// first, so a tenant never has two active intervals on one property.
func OpenTenancy(db *gorm.DB, propertyID, tenantID uuid.UUID, start time.Time) (*model.PropertyTenantRecordModel, error) {
	if start.IsZero() {
		start = time.Now().UTC()
	}

	if _, err := CloseTenancy(db, propertyID, tenantID, start); err != nil {
		return nil, err
	}

	record := &model.PropertyTenantRecordModel{
		PropertyTenantRecordPropertyID: propertyID,
		PropertyTenantRecordTenantID:   tenantID,
		PropertyTenantRecordStartDate:  start,
	}
	if err := db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CloseTenancy sets the end date on the tenant's active interval for the
// property. Returns the number of closed records (0 when the tenant was not
// an active resident).
func CloseTenancy(db *gorm.DB, propertyID, tenantID uuid.UUID, end time.Time) (int64, error) {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	res := db.Model(&model.PropertyTenantRecordModel{}).
		Where("property_tenant_record_property_id = ? AND property_tenant_record_tenant_id = ? AND property_tenant_record_end_date IS NULL",
			propertyID, tenantID).
		Update("property_tenant_record_end_date", end)
	return res.RowsAffected, res.Error
}
