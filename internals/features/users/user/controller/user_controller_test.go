package controller

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

	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
	tenancyModel "github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE properties (
			property_id TEXT PRIMARY KEY,
			property_owner_id TEXT NOT NULL,
			property_supervisor_id TEXT,
			property_street TEXT NOT NULL,
			property_house_number TEXT NOT NULL,
			property_town TEXT NOT NULL,
			property_county TEXT NOT NULL,
			property_country TEXT NOT NULL,
			property_description TEXT,
			property_rating NUMERIC NOT NULL DEFAULT 5.0,
			property_room_capacity INTEGER NOT NULL DEFAULT 1,
			property_people_capacity INTEGER NOT NULL DEFAULT 1,
			property_rent_amount NUMERIC,
			property_deposit_amount NUMERIC,
			property_image_urls TEXT,
			property_created_at DATETIME,
			property_updated_at DATETIME,
			property_deleted_at DATETIME
		)`,
		`CREATE TABLE property_tenant_records (
			property_tenant_record_id TEXT PRIMARY KEY,
			property_tenant_record_property_id TEXT NOT NULL,
			property_tenant_record_tenant_id TEXT NOT NULL,
			property_tenant_record_start_date DATETIME NOT NULL,
			property_tenant_record_end_date DATETIME,
			property_tenant_record_created_at DATETIME,
			property_tenant_record_updated_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, street string) *propertyModel.PropertyModel {
	t.Helper()
	p := &propertyModel.PropertyModel{
		PropertyOwnerID:        uuid.New(),
		PropertyStreet:         street,
		PropertyHouseNumber:    "12",
		PropertyTown:           "Tralee",
		PropertyCounty:         "Kerry",
		PropertyCountry:        "Ireland",
		PropertyRoomCapacity:   3,
		PropertyPeopleCapacity: 4,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedResidency(t *testing.T, db *gorm.DB, propertyID, tenantID uuid.UUID, start time.Time, end *time.Time) {
	t.Helper()
	record := tenancyModel.PropertyTenantRecordModel{
		PropertyTenantRecordPropertyID: propertyID,
		PropertyTenantRecordTenantID:   tenantID,
		PropertyTenantRecordStartDate:  start,
		PropertyTenantRecordEndDate:    end,
	}
	require.NoError(t, db.Create(&record).Error)
}

func TestResidencyOverviewSplitsCurrentFromHistory(t *testing.T) {
	db := openTestDB(t)
	tenant := uuid.New()

	home := seedProperty(t, db, "Oak Road")
	old := seedProperty(t, db, "Elm Street")

	now := time.Now().UTC()
	movedOut := now.AddDate(0, -6, 0)
	seedResidency(t, db, old.PropertyID, tenant, now.AddDate(-2, 0, 0), &movedOut)
	seedResidency(t, db, home.PropertyID, tenant, now.AddDate(0, -6, 0), nil)

	current, history, err := residencyOverview(db, tenant)
	require.NoError(t, err)

	require.NotNil(t, current)
	assert.Equal(t, home.PropertyID, current.PropertyID)
	assert.Equal(t, home.FullAddress(), current.Address)
	assert.Nil(t, current.EndDate)

	require.Len(t, history, 1)
	assert.Equal(t, old.PropertyID, history[0].PropertyID)
	assert.Equal(t, old.FullAddress(), history[0].Address)
	assert.NotNil(t, history[0].EndDate)
}

func TestResidencyOverviewWithNoRecords(t *testing.T) {
	db := openTestDB(t)

	current, history, err := residencyOverview(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Empty(t, history)
	assert.NotNil(t, history) // serializes as [], not null
}

func TestResidencyOverviewIgnoresOtherTenants(t *testing.T) {
	db := openTestDB(t)
	tenant := uuid.New()
	other := uuid.New()

	home := seedProperty(t, db, "Oak Road")
	seedResidency(t, db, home.PropertyID, other, time.Now().UTC(), nil)

	current, history, err := residencyOverview(db, tenant)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.Empty(t, history)
}
