package db

import (
	"Gin_postgres_redis_asset_tracker/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.TicketPurchase{},
		&models.TicketAssignment{},
		&models.MaintenanceContract{},
		&models.MaintenanceAssignment{},
		&models.RecloneProgress{},
		&models.LoanRequest{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// 同一资产最多一条 open 票券分配
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_asset
	  ON %s (asset_id)
	  WHERE open = TRUE;
	`, models.TicketAssignmentTable, models.TicketAssignmentTable)).Error; err != nil {
		return err
	}

	// 同一资产最多一条 active 维保分配
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_asset
	  ON %s (asset_id)
	  WHERE active = TRUE;
	`, models.MaintenanceAssignmentTable, models.MaintenanceAssignmentTable)).Error; err != nil {
		return err
	}

	// 同一资产最多一条 pending 借用申请
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_pending_per_asset
	  ON %s (asset_id)
	  WHERE status = 'pending';
	`, models.LoanRequestTable, models.LoanRequestTable)).Error; err != nil {
		return err
	}

	return nil
}
