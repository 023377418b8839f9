package sheetimport

import (
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// Cell statuses, decided by ClassifyStatus.
const (
	StatusAvailable = "available"
	StatusOnRequest = "on_request"
	StatusOwner     = "owner"
	StatusBooked    = "booked"
	StatusUnknown   = "unknown"
)

// SheetAvailability is one staging row per (region, week, property) cell of
// the planning workbook. The composite unique index is the natural key that
// makes re-imports idempotent: same cell, same row, refreshed in place.
type SheetAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Region    string `gorm:"size:100;not null;uniqueIndex:idx_sheet_cell" json:"region"`
	WeekLabel string `gorm:"size:50;not null;uniqueIndex:idx_sheet_cell" json:"weekLabel"`

	// Week bounds stay null when the label does not parse; the row is kept
	// anyway so staff can see what the sheet author wrote.
	WeekStart *utils.Date `gorm:"type:date" json:"weekStart"`
	WeekEnd   *utils.Date `gorm:"type:date" json:"weekEnd"`

	PropertyName     string `gorm:"size:200;not null;uniqueIndex:idx_sheet_cell" json:"propertyName"`
	PropertyCapacity *int   `json:"propertyCapacity"`

	Status   string `gorm:"size:20;not null" json:"status"`
	RawValue string `json:"rawValue"`

	ImportedAt time.Time `json:"importedAt"`
}
