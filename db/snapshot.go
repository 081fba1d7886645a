package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
)

const batchSize = 200

// SaveSnapshot replaces every stored row with the contents of snap in a
// single transaction. Row positions are written into snap's slices.
func (d *DB) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	numberRows(&snap)
	return d.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range tables() {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		var services []models.Service
		for _, p := range snap.Professionals {
			services = append(services, p.Services...)
		}
		if err := insert(tx, snap.Users); err != nil {
			return err
		}
		if err := insert(tx.Omit("Services"), snap.Professionals); err != nil {
			return err
		}
		if err := insert(tx, services); err != nil {
			return err
		}
		if err := insert(tx, snap.Bookings); err != nil {
			return err
		}
		if err := insert(tx, snap.Reviews); err != nil {
			return err
		}
		return insert(tx, snap.Tickets)
	})
}

// LoadSnapshot reads every collection back in its saved order.
func (d *DB) LoadSnapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	tx := d.gdb.WithContext(ctx)
	if err := tx.Order("position").Find(&snap.Users).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load users: %w", err)
	}
	err := tx.Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("position").Find(&snap.Professionals).Error
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load professionals: %w", err)
	}
	if err := tx.Order("position").Find(&snap.Bookings).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load bookings: %w", err)
	}
	if err := tx.Order("position").Find(&snap.Reviews).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load reviews: %w", err)
	}
	if err := tx.Order("position").Find(&snap.Tickets).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load tickets: %w", err)
	}
	return snap, nil
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		var zero T
		return fmt.Errorf("insert %T: %w", zero, err)
	}
	return nil
}

// numberRows records each row's index so loading preserves insertion order.
func numberRows(snap *store.Snapshot) {
	for i := range snap.Users {
		snap.Users[i].Position = i
	}
	for i := range snap.Professionals {
		p := &snap.Professionals[i]
		p.Position = i
		for j := range p.Services {
			p.Services[j].Position = j
			p.Services[j].ProfessionalID = p.ID
		}
	}
	for i := range snap.Bookings {
		snap.Bookings[i].Position = i
	}
	for i := range snap.Reviews {
		snap.Reviews[i].Position = i
	}
	for i := range snap.Tickets {
		snap.Tickets[i].Position = i
	}
}
