package yacht

import (
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// Yacht is a charter listing, the sibling entity of a Property. It has no
// hero flag; only villas occupy the homepage banner.
type Yacht struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	HomePort string `json:"homePort"`
	Region   string `json:"region"`

	ShortDescription   string `json:"shortDescription"`
	ShortDescriptionDe string `json:"shortDescriptionDe"`
	Description        string `gorm:"type:text" json:"description"`
	DescriptionDe      string `gorm:"type:text" json:"descriptionDe"`

	LengthMeters float64 `json:"lengthMeters"`
	Cabins       int     `json:"cabins"`
	MaxGuests    int     `json:"maxGuests"`
	CrewSize     int     `json:"crewSize"`
	BuildYear    int     `json:"buildYear"`

	WithSkipper  bool `json:"withSkipper"`
	HasFlybridge bool `json:"hasFlybridge"`
	HasJetski    bool `json:"hasJetski"`
	HasDinghy    bool `json:"hasDinghy"`

	PricePerDayLow   float64 `json:"pricePerDayLow"`
	PricePerDayHigh  float64 `json:"pricePerDayHigh"`
	PricePerWeekLow  float64 `json:"pricePerWeekLow"`
	PricePerWeekHigh float64 `json:"pricePerWeekHigh"`

	// No column default, matching Property.IsActive: a zero value next to a
	// default tag is dropped from the INSERT and the default wins.
	IsActive      bool   `json:"isActive"`
	IsFeatured    bool   `json:"isFeatured"`
	FeaturedImage string `json:"featuredImage"`

	Images       []YachtImage        `gorm:"foreignKey:YachtID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Availability []YachtAvailability `gorm:"foreignKey:YachtID;constraint:OnDelete:CASCADE" json:"availability,omitempty"`
}

// YachtImage mirrors PropertyImage; at most one per yacht is featured.
type YachtImage struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	YachtID uint `gorm:"not null;index" json:"yachtId"`

	ImageURL      string `gorm:"not null" json:"imageUrl"`
	StorageBucket string `json:"storageBucket"`
	StoragePath   string `json:"storagePath"`
	Caption       string `json:"caption"`
	CaptionDe     string `json:"captionDe"`
	DisplayOrder  int    `json:"displayOrder"`
	IsFeatured    bool   `json:"isFeatured"`
	ImageType     string `json:"imageType"`

	CreatedAt time.Time `json:"createdAt"`
}

type YachtAvailability struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	YachtID uint `gorm:"not null;index" json:"yachtId"`

	StartDate      utils.Date `gorm:"type:date;not null" json:"startDate"`
	EndDate        utils.Date `gorm:"type:date;not null" json:"endDate"`
	PricePerPeriod float64    `json:"pricePerPeriod"`
	// No column default; omitted values default to 7 in the handler so an
	// explicit 0 survives the INSERT.
	MinStay int    `json:"minStay"`
	Status  string `gorm:"size:20;default:'available'" json:"status"`
	Notes   string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
