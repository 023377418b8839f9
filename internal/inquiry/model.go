package inquiry

import (
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// Inquiry statuses follow the lead through the booking funnel.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Inquiry is one lead-capture submission. PropertySlug and PropertyName are
// denormalized snapshots: the listing may be renamed or deleted later, the
// inquiry keeps what the guest actually saw. Rows are never auto-deleted.
type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PropertySlug string `gorm:"index" json:"propertySlug"`
	PropertyName string `json:"propertyName"`

	CheckIn  *utils.Date `gorm:"type:date" json:"checkIn"`
	CheckOut *utils.Date `gorm:"type:date" json:"checkOut"`
	Guests   int         `json:"guests"`

	FullName string `json:"fullName"`
	Email    string `gorm:"not null;index" json:"email"`
	Phone    string `json:"phone"`
	Message  string `gorm:"type:text" json:"message"`

	Status string `gorm:"size:20;default:'new'" json:"status"`
}

func validStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQuoted, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
