package property

import (
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// Property is a villa listing. German text lives in the *De columns; the
// public site picks the column from the request locale.
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name   string `gorm:"not null" json:"name"`
	Slug   string `gorm:"uniqueIndex;not null" json:"slug"`
	Region string `json:"region"`

	ShortDescription   string `json:"shortDescription"`
	ShortDescriptionDe string `json:"shortDescriptionDe"`
	Description        string `gorm:"type:text" json:"description"`
	DescriptionDe      string `gorm:"type:text" json:"descriptionDe"`

	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
	MaxGuests int `json:"maxGuests"`

	HasPool      bool `json:"hasPool"`
	HasSeaView   bool `json:"hasSeaView"`
	HasWifi      bool `json:"hasWifi"`
	HasAircon    bool `json:"hasAircon"`
	PetsAllowed  bool `json:"petsAllowed"`
	BeachfrontMn int  `json:"beachfrontMin"` // walking minutes to the nearest beach

	PricePerDayLow   float64 `json:"pricePerDayLow"`
	PricePerDayHigh  float64 `json:"pricePerDayHigh"`
	PricePerWeekLow  float64 `json:"pricePerWeekLow"`
	PricePerWeekHigh float64 `json:"pricePerWeekHigh"`

	// No column default: a zero value next to a default tag is dropped from
	// the INSERT and the default wins over an explicit false. The create
	// handler supplies true when the request omits it.
	IsActive bool `json:"isActive"`
	// IsFeatured marks the listing for the featured strip; IsHeroFeatured is
	// the homepage banner and is true for at most one property system-wide.
	IsFeatured     bool   `json:"isFeatured"`
	IsHeroFeatured bool   `json:"isHeroFeatured"`
	FeaturedImage  string `json:"featuredImage"`

	Images       []PropertyImage        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Availability []PropertyAvailability `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"availability,omitempty"`
	YachtOptions []PropertyYachtOption  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"yachtOptions,omitempty"`
}

// PropertyImage is one gallery entry. At most one image per property carries
// IsFeatured; SetFeaturedImage maintains that and mirrors the URL onto the
// parent's FeaturedImage column.
type PropertyImage struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"not null;index" json:"propertyId"`

	ImageURL      string `gorm:"not null" json:"imageUrl"`
	StorageBucket string `json:"storageBucket"`
	StoragePath   string `json:"storagePath"`
	Caption       string `json:"caption"`
	CaptionDe     string `json:"captionDe"`
	DisplayOrder  int    `json:"displayOrder"`
	IsFeatured    bool   `json:"isFeatured"`
	ImageType     string `json:"imageType"` // gallery, floorplan, drone...

	CreatedAt time.Time `json:"createdAt"`
}

// Availability window statuses.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBooked      = "booked"
	AvailabilityBlocked     = "blocked"
	AvailabilityMaintenance = "maintenance"
)

// PropertyAvailability is one admin-maintained date window. The public
// endpoint only serves windows whose EndDate has not passed.
type PropertyAvailability struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"not null;index" json:"propertyId"`

	StartDate      utils.Date `gorm:"type:date;not null" json:"startDate"`
	EndDate        utils.Date `gorm:"type:date;not null" json:"endDate"`
	PricePerPeriod float64    `json:"pricePerPeriod"`
	// No column default for the same reason as Property.IsActive: an explicit
	// 0 must survive the INSERT. Omitted values default to 7 in the handler.
	MinStay int    `json:"minStay"`
	Status  string `gorm:"size:20;default:'available'" json:"status"`
	Notes   string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PropertyYachtOption pairs a villa with a yacht offered alongside it.
// The set for one side is always replaced whole, never patched.
type PropertyYachtOption struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"not null;index;uniqueIndex:idx_property_yacht" json:"propertyId"`
	YachtID    uint `gorm:"not null;index;uniqueIndex:idx_property_yacht" json:"yachtId"`

	IsRecommended bool    `json:"isRecommended"`
	SpecialRate   float64 `json:"specialRate"`
}

func validAvailabilityStatus(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityBooked, AvailabilityBlocked, AvailabilityMaintenance:
		return true
	}
	return false
}
