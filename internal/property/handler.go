package property

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AdriaticEscapes/api-backoffice/internal/media"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler wraps the villa endpoints, admin and public.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Validate   *validator.Validate
	Media      media.Storage
}

func NewHandler(db *gorm.DB, store media.Storage) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Validate:   validator.New(),
		Media:      store,
	}
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// respondRepoError maps the typed repository failures onto HTTP statuses.
// Admin responses carry the underlying message; the audience is staff.
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, ErrInvalidReference):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Create registers a new villa listing.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slug == "" {
		req.Slug = utils.Slugify(req.Name)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := Property{
		Name:               req.Name,
		Slug:               req.Slug,
		Region:             req.Region,
		ShortDescription:   req.ShortDescription,
		ShortDescriptionDe: req.ShortDescriptionDe,
		Description:        req.Description,
		DescriptionDe:      req.DescriptionDe,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		MaxGuests:          req.MaxGuests,
		HasPool:            req.HasPool,
		HasSeaView:         req.HasSeaView,
		HasWifi:            req.HasWifi,
		HasAircon:          req.HasAircon,
		PetsAllowed:        req.PetsAllowed,
		BeachfrontMn:       req.BeachfrontMin,
		PricePerDayLow:     req.PricePerDayLow,
		PricePerDayHigh:    req.PricePerDayHigh,
		PricePerWeekLow:    req.PricePerWeekLow,
		PricePerWeekHigh:   req.PricePerWeekHigh,
		IsActive:           active,
		IsFeatured:         req.IsFeatured,
		FeaturedImage:      req.FeaturedImage,
	}
	if err := h.Repository.Create(h.DB, &p); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// ListAdmin returns every listing including retired ones.
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB, false)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// ListPublic returns active listings only.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB, true)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "could not load properties")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// GetBySlug is the public detail endpoint; inactive listings 404.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	p, err := h.Repository.GetBySlug(h.DB, slug, true)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// Update applies a partial update; fields absent from the body are untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var fields UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Repository.Update(h.DB, id, fields); err != nil {
		respondRepoError(w, err)
		return
	}
	p, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// Delete hard-deletes a listing. Retiring via isActive=false is the normal flow.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	img := PropertyImage{
		PropertyID:    id,
		ImageURL:      req.ImageURL,
		StorageBucket: req.StorageBucket,
		StoragePath:   req.StoragePath,
		Caption:       req.Caption,
		CaptionDe:     req.CaptionDe,
		DisplayOrder:  req.DisplayOrder,
		ImageType:     req.ImageType,
	}
	if err := h.Repository.AddImage(h.DB, &img); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, img)
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cols := UpdatePayload{}
	for field, col := range map[string]string{
		"imageUrl": "image_url", "caption": "caption", "captionDe": "caption_de",
		"displayOrder": "display_order", "imageType": "image_type",
	} {
		if v, ok := fields[field]; ok {
			cols[col] = v
		}
	}
	if err := h.Repository.UpdateImage(h.DB, id, imageID, cols); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteImage removes the row, then best-effort deletes the object from
// storage. A storage failure is logged, never surfaced: the row is gone.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	img, err := h.Repository.DeleteImage(h.DB, id, imageID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if h.Media != nil && h.Media.Enabled() && img.StoragePath != "" {
		if err := h.Media.Delete(context.Background(), img.StoragePath); err != nil {
			log.Printf("property image %d: storage delete failed: %v", imageID, err)
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) SetFeaturedImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	if err := h.Repository.SetFeaturedImage(h.DB, id, imageID); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) SetHeroFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repository.SetHeroFeatured(h.DB, id); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ReorderImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.ReorderImages(h.DB, id, req.ImageIDs); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListAvailabilityPublic serves upcoming windows for a slug, dates as YYYY-MM-DD.
func (h *Handler) ListAvailabilityPublic(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	p, err := h.Repository.GetBySlug(h.DB, slug, true)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	list, err := h.Repository.ListAvailability(h.DB, p.ID, true)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "could not load availability")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) ListAvailabilityAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	list, err := h.Repository.ListAvailability(h.DB, id, false)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) availabilityFromRequest(r *http.Request, propertyID uint) (*PropertyAvailability, error) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return nil, err
	}
	var start, end utils.Date
	if err := start.UnmarshalJSON([]byte(`"` + req.StartDate + `"`)); err != nil {
		return nil, errors.New("invalid startDate")
	}
	if err := end.UnmarshalJSON([]byte(`"` + req.EndDate + `"`)); err != nil {
		return nil, errors.New("invalid endDate")
	}
	if end.Before(start.Time) {
		return nil, errors.New("endDate must not be before startDate")
	}
	status := req.Status
	if status == "" {
		status = AvailabilityAvailable
	}
	if !validAvailabilityStatus(status) {
		return nil, errors.New("invalid status")
	}
	minStay := 7
	if req.MinStay != nil {
		minStay = *req.MinStay
	}
	return &PropertyAvailability{
		PropertyID:     propertyID,
		StartDate:      start,
		EndDate:        end,
		PricePerPeriod: req.PricePerPeriod,
		MinStay:        minStay,
		Status:         status,
		Notes:          req.Notes,
	}, nil
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	a, err := h.availabilityFromRequest(r, id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.CreateAvailability(h.DB, a); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	availabilityID, err := pathID(r, "availabilityId")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid availability id")
		return
	}
	a, err := h.availabilityFromRequest(r, id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.UpdateAvailability(h.DB, id, availabilityID, a); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	availabilityID, err := pathID(r, "availabilityId")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid availability id")
		return
	}
	if err := h.Repository.DeleteAvailability(h.DB, id, availabilityID); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// LinkYachts replaces the listing's cross-sell set; send the whole set.
func (h *Handler) LinkYachts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req linkYachtsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Repository.LinkYachts(h.DB, id, req.Yachts); err != nil {
		respondRepoError(w, err)
		return
	}
	links, err := h.Repository.ListYachtLinks(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, links)
}

func (h *Handler) ListYachtLinks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	links, err := h.Repository.ListYachtLinks(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, links)
}
