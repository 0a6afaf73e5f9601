package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// noOverlapDDL guards the schedule at the storage level: two active
// appointments of the same barber can never intersect, whatever the
// application does.
const noOverlapDDL = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				barber_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			)
			WHERE (status <> 'cancelled');
	END IF;
END
$$;
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.LogMode == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Customer{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(noOverlapDDL).Error; err != nil {
		return fmt.Errorf("appointments_no_overlap: %w", err)
	}

	return nil
}
