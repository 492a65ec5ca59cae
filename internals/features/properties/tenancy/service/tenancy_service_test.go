package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE property_tenant_records (
		property_tenant_record_id TEXT PRIMARY KEY,
		property_tenant_record_property_id TEXT NOT NULL,
		property_tenant_record_tenant_id TEXT NOT NULL,
		property_tenant_record_start_date DATETIME NOT NULL,
		property_tenant_record_end_date DATETIME,
		property_tenant_record_created_at DATETIME,
		property_tenant_record_updated_at DATETIME
	)`).Error)
	return db
}

func TestCurrentTenantRecordsReturnsOnlyActive(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()
	active := uuid.New()
	former := uuid.New()

	_, err := OpenTenancy(db, propertyID, active, time.Now().UTC().AddDate(0, -2, 0))
	require.NoError(t, err)

	_, err = OpenTenancy(db, propertyID, former, time.Now().UTC().AddDate(-1, 0, 0))
	require.NoError(t, err)
	_, err = CloseTenancy(db, propertyID, former, time.Now().UTC().AddDate(0, -1, 0))
	require.NoError(t, err)

	records, err := CurrentTenantRecords(db, propertyID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, active, records[0].PropertyTenantRecordTenantID)

	ids, err := CurrentTenantIDs(db, propertyID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{active}, ids)
}

func TestCurrentTenantRecordsScopesToProperty(t *testing.T) {
	db := openTestDB(t)
	propertyA := uuid.New()
	propertyB := uuid.New()
	tenant := uuid.New()

	_, err := OpenTenancy(db, propertyA, tenant, time.Now().UTC())
	require.NoError(t, err)

	records, err := CurrentTenantRecords(db, propertyB)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenTenancyClosesPriorInterval(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()
	tenant := uuid.New()

	first, err := OpenTenancy(db, propertyID, tenant, time.Now().UTC().AddDate(-1, 0, 0))
	require.NoError(t, err)

	second, err := OpenTenancy(db, propertyID, tenant, time.Now().UTC())
	require.NoError(t, err)
	require.NotEqual(t, first.PropertyTenantRecordID, second.PropertyTenantRecordID)

	// Only the new interval stays open.
	records, err := CurrentTenantRecords(db, propertyID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, second.PropertyTenantRecordID, records[0].PropertyTenantRecordID)

	var old model.PropertyTenantRecordModel
	require.NoError(t, db.First(&old, "property_tenant_record_id = ?", first.PropertyTenantRecordID).Error)
	assert.NotNil(t, old.PropertyTenantRecordEndDate)
	assert.False(t, old.IsActive())
}

func TestCloseTenancyReportsMissingResidency(t *testing.T) {
	db := openTestDB(t)

	closed, err := CloseTenancy(db, uuid.New(), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, closed)
}

func TestCloseTenancyLeavesOtherTenantsAlone(t *testing.T) {
	db := openTestDB(t)
	propertyID := uuid.New()
	leaving := uuid.New()
	staying := uuid.New()

	_, err := OpenTenancy(db, propertyID, leaving, time.Now().UTC())
	require.NoError(t, err)
	_, err = OpenTenancy(db, propertyID, staying, time.Now().UTC())
	require.NoError(t, err)

	closed, err := CloseTenancy(db, propertyID, leaving, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, closed)

	records, err := CurrentTenantRecords(db, propertyID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, staying, records[0].PropertyTenantRecordTenantID)
}
