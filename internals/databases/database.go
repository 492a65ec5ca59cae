package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/configs"
	billingModel "github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	cashflowModel "github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
	tenancyModel "github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
	blacklistModel "github.com/nlekkerman/roomie/internals/features/users/auth/model"
	userModel "github.com/nlekkerman/roomie/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=roomie&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // safe with PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateDB keeps the schema in sync. The composite unique index on
// (tenant_billing_billing_id, tenant_billing_tenant_id) is created here via
// the model tags; it is the storage-level guard against duplicate allocation.
func MigrateDB() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.UserProfileModel{},
		&blacklistModel.TokenBlacklistModel{},
		&propertyModel.PropertyModel{},
		&tenancyModel.TenancyRequestModel{},
		&tenancyModel.PropertyTenantRecordModel{},
		&billingModel.PropertyBillingModel{},
		&billingModel.TenantBillingModel{},
		&cashflowModel.UserCashFlowModel{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migration finished.")
}

func WarmUpQueries() {
	// fire a lightweight ping so the pool is warm when the first request lands
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
