package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// in-memory sqlite lives per connection
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCollege(t *testing.T, db *gorm.DB, name, subdomain string) *models.College {
	t.Helper()

	c := &models.College{ID: uuid.NewString(), Name: name, Subdomain: subdomain}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed college: %v", err)
	}
	return c
}

func seedUser(t *testing.T, db *gorm.DB, collegeID *string, username, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	email := username + "@example.edu"
	u := &models.User{
		ID:           uuid.NewString(),
		CollegeID:    collegeID,
		Email:        &email,
		Username:     username,
		Role:         role,
		PasswordHash: hash,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProfile(t *testing.T, db *gorm.DB, userID, fullName string) *models.Profile {
	t.Helper()

	p := &models.Profile{UserID: userID, FullName: fullName}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func testCtx() context.Context { return context.Background() }

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected an error with status %d, got nil", status)
	}
	if got := utils.HTTPStatus(err); got != status {
		t.Fatalf("status = %d, want %d (err: %v)", got, status, err)
	}
}
