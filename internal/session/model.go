package session

import "time"

// AdminUser is a back-office operator. Rows are created by the seed command;
// password changes happen through ChangePassword, never through listing CRUD.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminSession is one issued bearer token. A token maps to at most one
// non-expired session; expired rows are ignored by lookups and swept
// opportunistically on login.
type AdminSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`

	User AdminUser `gorm:"foreignKey:UserID" json:"-"`
}

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "admin_session"

// SessionTTL is the fixed lifetime of a session.
const SessionTTL = 7 * 24 * time.Hour
