package db

import (
	"fmt"
	"log"

	"github.com/meinhoongagan/taskr/models"
)

func tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ProfessionalProfile{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.SupportTicket{},
	}
}

// Migrate creates or updates the snapshot tables.
func (d *DB) Migrate() error {
	if err := d.gdb.AutoMigrate(tables()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied successfully!")
	return nil
}
