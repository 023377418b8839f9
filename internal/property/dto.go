package property

import "encoding/json"

// updatableColumns maps JSON field names to their columns. Anything not
// listed here is silently ignored by partial updates; relations and the
// singleton flags have their own operations.
var updatableColumns = map[string]string{
	"name":               "name",
	"slug":               "slug",
	"region":             "region",
	"shortDescription":   "short_description",
	"shortDescriptionDe": "short_description_de",
	"description":        "description",
	"descriptionDe":      "description_de",
	"bedrooms":           "bedrooms",
	"bathrooms":          "bathrooms",
	"maxGuests":          "max_guests",
	"hasPool":            "has_pool",
	"hasSeaView":         "has_sea_view",
	"hasWifi":            "has_wifi",
	"hasAircon":          "has_aircon",
	"petsAllowed":        "pets_allowed",
	"beachfrontMin":      "beachfront_mn",
	"pricePerDayLow":     "price_per_day_low",
	"pricePerDayHigh":    "price_per_day_high",
	"pricePerWeekLow":    "price_per_week_low",
	"pricePerWeekHigh":   "price_per_week_high",
	"isActive":           "is_active",
	"isFeatured":         "is_featured",
	"featuredImage":      "featured_image",
}

// UpdatePayload carries a partial update keyed by column name. A key that is
// present with a nil value writes SQL NULL; a key that was absent from the
// request body is not written at all. This is the absent-vs-null contract.
type UpdatePayload map[string]interface{}

func (p *UpdatePayload) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := UpdatePayload{}
	for field, value := range raw {
		if col, ok := updatableColumns[field]; ok {
			out[col] = value
		}
	}
	*p = out
	return nil
}

// createRequest is the admin create payload. Optional numerics/booleans
// default server-side via the model's zero values and column defaults.
type createRequest struct {
	Name               string  `json:"name" validate:"required"`
	Slug               string  `json:"slug"`
	Region             string  `json:"region"`
	ShortDescription   string  `json:"shortDescription"`
	ShortDescriptionDe string  `json:"shortDescriptionDe"`
	Description        string  `json:"description"`
	DescriptionDe      string  `json:"descriptionDe"`
	Bedrooms           int     `json:"bedrooms" validate:"min=0"`
	Bathrooms          int     `json:"bathrooms" validate:"min=0"`
	MaxGuests          int     `json:"maxGuests" validate:"min=0"`
	HasPool            bool    `json:"hasPool"`
	HasSeaView         bool    `json:"hasSeaView"`
	HasWifi            bool    `json:"hasWifi"`
	HasAircon          bool    `json:"hasAircon"`
	PetsAllowed        bool    `json:"petsAllowed"`
	BeachfrontMin      int     `json:"beachfrontMin" validate:"min=0"`
	PricePerDayLow     float64 `json:"pricePerDayLow" validate:"min=0"`
	PricePerDayHigh    float64 `json:"pricePerDayHigh" validate:"min=0"`
	PricePerWeekLow    float64 `json:"pricePerWeekLow" validate:"min=0"`
	PricePerWeekHigh   float64 `json:"pricePerWeekHigh" validate:"min=0"`
	IsActive           *bool   `json:"isActive"`
	IsFeatured         bool    `json:"isFeatured"`
	FeaturedImage      string  `json:"featuredImage"`
}

type imageRequest struct {
	ImageURL      string `json:"imageUrl" validate:"required"`
	StorageBucket string `json:"storageBucket"`
	StoragePath   string `json:"storagePath"`
	Caption       string `json:"caption"`
	CaptionDe     string `json:"captionDe"`
	DisplayOrder  int    `json:"displayOrder"`
	ImageType     string `json:"imageType"`
}

type reorderRequest struct {
	ImageIDs []uint `json:"imageIds" validate:"required,min=1"`
}

type availabilityRequest struct {
	StartDate      string  `json:"startDate" validate:"required"`
	EndDate        string  `json:"endDate" validate:"required"`
	PricePerPeriod float64 `json:"pricePerPeriod" validate:"min=0"`
	// Pointer so an omitted minStay (default 7) and an explicit 0 differ.
	MinStay *int   `json:"minStay" validate:"omitempty,min=0"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// YachtLink is one entry of the full desired cross-sell set for a property.
type YachtLink struct {
	YachtID       uint    `json:"yachtId" validate:"required"`
	IsRecommended bool    `json:"isRecommended"`
	SpecialRate   float64 `json:"specialRate"`
}

type linkYachtsRequest struct {
	Yachts []YachtLink `json:"yachts"`
}
