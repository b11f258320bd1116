// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"rentalconnect/internal/database"
	"rentalconnect/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := database.Connect(dsn, database.Options{Silent: true})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a random name and email and the given role.
// The password hash is a placeholder; tests that log in hash their own.
func CreateUser(t *testing.T, db *gorm.DB, role domain.UserRole) *domain.User {
	t.Helper()

	u := &domain.User{
		Name:         gofakeit.Name(),
		Email:        strings.ToLower(gofakeit.Email()),
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateProperty inserts an Available property owned by landlordID.
func CreateProperty(t *testing.T, db *gorm.DB, landlordID int64, rent float64) *domain.Property {
	t.Helper()

	p := &domain.Property{
		LandlordID:    landlordID,
		Title:         gofakeit.Sentence(3),
		Description:   gofakeit.Paragraph(1, 2, 8, " "),
		Address:       gofakeit.Street() + ", " + gofakeit.City(),
		Rent:          rent,
		Bedrooms:      2,
		Bathrooms:     1,
		AvailableFrom: time.Now().UTC(),
		Status:        domain.PropertyAvailable,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}
