package crm

import (
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// Customer is one CRM contact, keyed by email for the inquiry upsert.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name   string `json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Phone  string `json:"phone"`
	Notes  string `gorm:"type:text" json:"notes"`
	Source string `gorm:"size:50" json:"source"`
	Status string `gorm:"size:50;default:'lead'" json:"status"`
	Tags   string `json:"tags"` // comma separated
}

// Pipeline stages, in order. won and lost are terminal.
const (
	StageLead       = "lead"
	StageInterested = "interested"
	StageQualified  = "qualified"
	StageDemo       = "demo"
	StageProposal   = "proposal"
	StageWon        = "won"
	StageLost       = "lost"
)

// Deal is one sales opportunity. ClosedAt is stamped when the stage moves
// into won/lost; a deal reopened afterwards keeps the historical timestamp
// until it closes again.
type Deal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title             string      `gorm:"not null" json:"title"`
	Value             float64     `json:"value"`
	Stage             string      `gorm:"size:30;default:'lead'" json:"stage"`
	CustomerID        *uint       `gorm:"index" json:"customerId"`
	Probability       int         `json:"probability"`
	ExpectedCloseDate *utils.Date `gorm:"type:date" json:"expectedCloseDate"`
	Owner             string      `json:"owner"`
	ClosedAt          *time.Time  `json:"closedAt"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
}

func validStage(s string) bool {
	switch s {
	case StageLead, StageInterested, StageQualified, StageDemo, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

func terminalStage(s string) bool {
	return s == StageWon || s == StageLost
}
