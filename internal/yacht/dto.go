package yacht

import "encoding/json"

var updatableColumns = map[string]string{
	"name":               "name",
	"slug":               "slug",
	"homePort":           "home_port",
	"region":             "region",
	"shortDescription":   "short_description",
	"shortDescriptionDe": "short_description_de",
	"description":        "description",
	"descriptionDe":      "description_de",
	"lengthMeters":       "length_meters",
	"cabins":             "cabins",
	"maxGuests":          "max_guests",
	"crewSize":           "crew_size",
	"buildYear":          "build_year",
	"withSkipper":        "with_skipper",
	"hasFlybridge":       "has_flybridge",
	"hasJetski":          "has_jetski",
	"hasDinghy":          "has_dinghy",
	"pricePerDayLow":     "price_per_day_low",
	"pricePerDayHigh":    "price_per_day_high",
	"pricePerWeekLow":    "price_per_week_low",
	"pricePerWeekHigh":   "price_per_week_high",
	"isActive":           "is_active",
	"isFeatured":         "is_featured",
	"featuredImage":      "featured_image",
}

// UpdatePayload keys present write (nil included, as NULL); absent keys skip.
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

type createRequest struct {
	Name               string  `json:"name" validate:"required"`
	Slug               string  `json:"slug"`
	HomePort           string  `json:"homePort"`
	Region             string  `json:"region"`
	ShortDescription   string  `json:"shortDescription"`
	ShortDescriptionDe string  `json:"shortDescriptionDe"`
	Description        string  `json:"description"`
	DescriptionDe      string  `json:"descriptionDe"`
	LengthMeters       float64 `json:"lengthMeters" validate:"min=0"`
	Cabins             int     `json:"cabins" validate:"min=0"`
	MaxGuests          int     `json:"maxGuests" validate:"min=0"`
	CrewSize           int     `json:"crewSize" validate:"min=0"`
	BuildYear          int     `json:"buildYear" validate:"min=0"`
	WithSkipper        bool    `json:"withSkipper"`
	HasFlybridge       bool    `json:"hasFlybridge"`
	HasJetski          bool    `json:"hasJetski"`
	HasDinghy          bool    `json:"hasDinghy"`
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

type availabilityRequest struct {
	StartDate      string  `json:"startDate" validate:"required"`
	EndDate        string  `json:"endDate" validate:"required"`
	PricePerPeriod float64 `json:"pricePerPeriod" validate:"min=0"`
	// Pointer so an omitted minStay (default 7) and an explicit 0 differ.
	MinStay *int   `json:"minStay" validate:"omitempty,min=0"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// PropertyLink is one entry of the full desired villa set for a yacht.
type PropertyLink struct {
	PropertyID    uint    `json:"propertyId" validate:"required"`
	IsRecommended bool    `json:"isRecommended"`
	SpecialRate   float64 `json:"specialRate"`
}

type linkPropertiesRequest struct {
	Properties []PropertyLink `json:"properties"`
}
