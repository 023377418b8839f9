package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession covers missing and expired tokens alike; callers must not
	// distinguish the two.
	ErrNoSession = errors.New("no session")
)

type Repository interface {
	Login(db *gorm.DB, email, password string) (string, error)
	Validate(db *gorm.DB, token string) (*AdminUser, error)
	Logout(db *gorm.DB, token string) error
	ChangePassword(db *gorm.DB, userID uint, current, next string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login verifies the credentials and issues a fresh session token valid for
// SessionTTL. Expired sessions of the same user are swept on the way in.
func (r *repositoryImpl) Login(db *gorm.DB, email, password string) (string, error) {
	var user AdminUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	db.Where("user_id = ? AND expires_at < ?", user.ID, time.Now()).Delete(&AdminSession{})

	s := AdminSession{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := db.Create(&s).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its admin user. It fails closed: a missing row
// and an expired row both come back as ErrNoSession.
func (r *repositoryImpl) Validate(db *gorm.DB, token string) (*AdminUser, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	var s AdminSession
	err := db.Preload("User").Where("token = ?", token).First(&s).Error
	if err != nil {
		return nil, ErrNoSession
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, ErrNoSession
	}
	return &s.User, nil
}

// Logout deletes the backing session row. Deleting a token that is already
// gone is not an error.
func (r *repositoryImpl) Logout(db *gorm.DB, token string) error {
	if token == "" {
		return nil
	}
	return db.Where("token = ?", token).Delete(&AdminSession{}).Error
}

func (r *repositoryImpl) ChangePassword(db *gorm.DB, userID uint, current, next string) error {
	var user AdminUser
	if err := db.First(&user, userID).Error; err != nil {
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password_hash", hash).Error
}
