package service

import (
	"path/filepath"
	"testing"

	"tutor_backend/internal/model"
	"tutor_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite database with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createParent(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	parent := &model.User{
		Email:    email,
		Password: "x",
		Role:     model.Parent,
		IsActive: true,
	}
	if err := db.Create(parent).Error; err != nil {
		t.Fatalf("create parent: %v", err)
	}
	return parent
}
