package session

import (
	"errors"
	"testing"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&AdminUser{}, &AdminSession{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) *AdminUser {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &AdminUser{Email: email, PasswordHash: hash, Name: "Test Admin"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return u
}

func TestLoginAndValidate(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	seedAdmin(t, db, "admin@example.com", "s3cret")

	token, err := repo.Login(db, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login returned empty token")
	}

	user, err := repo.Validate(db, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("user = %q, want admin@example.com", user.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	seedAdmin(t, db, "admin@example.com", "s3cret")

	if _, err := repo.Login(db, "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := repo.Login(db, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

// A token that never existed and a token that expired must be
// indistinguishable to the caller.
func TestValidateMissingAndExpiredAlike(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	u := seedAdmin(t, db, "admin@example.com", "s3cret")

	expired := AdminSession{
		UserID:    u.ID,
		Token:     "deadbeef",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("seed expired session: %v", err)
	}

	_, errMissing := repo.Validate(db, "no-such-token")
	_, errExpired := repo.Validate(db, "deadbeef")

	if !errors.Is(errMissing, ErrNoSession) {
		t.Errorf("missing token: err = %v, want ErrNoSession", errMissing)
	}
	if !errors.Is(errExpired, ErrNoSession) {
		t.Errorf("expired token: err = %v, want ErrNoSession", errExpired)
	}
	if errMissing != errExpired {
		t.Error("missing and expired tokens must yield the identical error")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	seedAdmin(t, db, "admin@example.com", "s3cret")

	token, err := repo.Login(db, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := repo.Logout(db, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := repo.Validate(db, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("validate after logout: err = %v, want ErrNoSession", err)
	}
	if err := repo.Logout(db, token); err != nil {
		t.Errorf("second logout: err = %v, want nil", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	u := seedAdmin(t, db, "admin@example.com", "s3cret")

	if err := repo.ChangePassword(db, u.ID, "wrong", "newpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong current password: err = %v, want ErrInvalidCredentials", err)
	}
	if err := repo.ChangePassword(db, u.ID, "s3cret", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := repo.Login(db, "admin@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password must stop working")
	}
	if _, err := repo.Login(db, "admin@example.com", "newpass"); err != nil {
		t.Errorf("new password: %v", err)
	}
}
