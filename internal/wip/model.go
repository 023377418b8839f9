package wip

import "time"

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// WipTask is one internal work item on the team board. Completion toggling
// is the only state transition; reassignment pings the new owner.
type WipTask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string     `gorm:"not null" json:"title"`
	TitleDe     string     `json:"titleDe"`
	NextStep    string     `json:"nextStep"`
	Priority    string     `gorm:"size:20;default:'medium'" json:"priority"`
	AssignedTo  string     `json:"assignedTo"`
	IsComplete  bool       `json:"isComplete"`
	CompletedAt *time.Time `json:"completedAt"`
	Status      string     `gorm:"size:30" json:"status"`
}

func validPriority(p string) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
