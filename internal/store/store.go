// Package store is the gateway's local persistence substrate: checklist
// drafts, saved snapshots of local-only tasks, and the maintenance-task tree.
// It plays the role browser local storage played for earlier clients and
// keeps the same key scheme.
package store

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	log.Println("Local store opened")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&DraftEntry{},
		&SnapshotEntry{},
		&MaintenanceTaskRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate local store: %w", err)
	}
	return nil
}
