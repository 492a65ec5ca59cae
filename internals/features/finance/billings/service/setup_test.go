package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	cashflowModel "github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
	tenancyModel "github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
	userModel "github.com/nlekkerman/roomie/internals/features/users/user/model"
)

// openTestDB spins up an in-memory SQLite database with hand-written DDL.
// The Postgres schema uses gen_random_uuid() defaults that SQLite cannot
// evaluate; the BeforeCreate hooks on the models cover ID generation instead.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			user_name TEXT NOT NULL UNIQUE,
			first_name TEXT,
			last_name TEXT,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			google_id TEXT,
			role TEXT NOT NULL DEFAULT 'tenant',
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
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
		`CREATE TABLE property_billings (
			property_billing_id TEXT PRIMARY KEY,
			property_billing_property_id TEXT NOT NULL,
			property_billing_category TEXT NOT NULL,
			property_billing_amount NUMERIC NOT NULL,
			property_billing_date DATETIME NOT NULL,
			property_billing_description TEXT,
			property_billing_status TEXT NOT NULL DEFAULT 'pending',
			property_billing_due_date DATETIME,
			property_billing_split_snapshot TEXT,
			property_billing_created_at DATETIME,
			property_billing_updated_at DATETIME,
			property_billing_deleted_at DATETIME
		)`,
		`CREATE TABLE tenant_billings (
			tenant_billing_id TEXT PRIMARY KEY,
			tenant_billing_billing_id TEXT NOT NULL,
			tenant_billing_tenant_id TEXT NOT NULL,
			tenant_billing_amount NUMERIC NOT NULL,
			tenant_billing_category TEXT NOT NULL,
			tenant_billing_status TEXT NOT NULL DEFAULT 'pending',
			tenant_billing_deadline DATETIME,
			tenant_billing_paid_at DATETIME,
			tenant_billing_created_at DATETIME,
			tenant_billing_updated_at DATETIME,
			UNIQUE (tenant_billing_billing_id, tenant_billing_tenant_id)
		)`,
		`CREATE TABLE user_cash_flows (
			user_cash_flow_id TEXT PRIMARY KEY,
			user_cash_flow_user_id TEXT NOT NULL,
			user_cash_flow_tenant_billing_id TEXT UNIQUE,
			user_cash_flow_amount NUMERIC NOT NULL,
			user_cash_flow_date DATETIME NOT NULL,
			user_cash_flow_description TEXT,
			user_cash_flow_category TEXT NOT NULL,
			user_cash_flow_status TEXT NOT NULL DEFAULT 'pending',
			user_cash_flow_deadline DATETIME,
			user_cash_flow_paid_at DATETIME,
			user_cash_flow_created_at DATETIME,
			user_cash_flow_updated_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := userModel.UserModel{
		UserName: name,
		Email:    name + "@example.com",
		Password: "secret-password",
		Role:     "tenant",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedActiveTenancy(t *testing.T, db *gorm.DB, propertyID, tenantID uuid.UUID) {
	t.Helper()
	record := tenancyModel.PropertyTenantRecordModel{
		PropertyTenantRecordPropertyID: propertyID,
		PropertyTenantRecordTenantID:   tenantID,
		PropertyTenantRecordStartDate:  time.Now().UTC().AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&record).Error)
}

func seedBilling(t *testing.T, db *gorm.DB, propertyID uuid.UUID, amount string) *billingModel.PropertyBillingModel {
	t.Helper()
	billing := billingModel.PropertyBillingModel{
		PropertyBillingPropertyID:  propertyID,
		PropertyBillingCategory:    billingModel.CategoryElectricity,
		PropertyBillingAmount:      mustDecimal(t, amount),
		PropertyBillingDate:        time.Now().UTC(),
		PropertyBillingDescription: "test billing",
	}
	require.NoError(t, db.Create(&billing).Error)
	return &billing
}

func loadTenantBillings(t *testing.T, db *gorm.DB, billingID uuid.UUID) []billingModel.TenantBillingModel {
	t.Helper()
	var rows []billingModel.TenantBillingModel
	require.NoError(t, db.
		Where("tenant_billing_billing_id = ?", billingID).
		Order("tenant_billing_created_at ASC").
		Find(&rows).Error)
	return rows
}

// assertSharesWithinTotal checks the split invariant: shares sum to at most
// the billing total, short by less than one cent per share.
func assertSharesWithinTotal(t *testing.T, total decimal.Decimal, shares []billingModel.TenantBillingModel) {
	t.Helper()
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.TenantBillingAmount)
	}
	require.True(t, sum.LessThanOrEqual(total), "sum(shares) %s exceeds total %s", sum, total)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func loadCashFlows(t *testing.T, db *gorm.DB, userID uuid.UUID) []cashflowModel.UserCashFlowModel {
	t.Helper()
	var rows []cashflowModel.UserCashFlowModel
	require.NoError(t, db.
		Where("user_cash_flow_user_id = ?", userID).
		Find(&rows).Error)
	return rows
}
