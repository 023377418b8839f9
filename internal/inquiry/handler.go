package inquiry

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AdriaticEscapes/api-backoffice/internal/crm"
	"github.com/AdriaticEscapes/api-backoffice/internal/notifier"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type createRequest struct {
	PropertySlug string `json:"propertySlug"`
	PropertyName string `json:"propertyName"`
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Guests       int    `json:"guests" validate:"min=0"`
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	CRM        crm.Repository
	Notifier   notifier.Notifier
	Validate   *validator.Validate
}

func NewHandler(db *gorm.DB, n notifier.Notifier) *Handler {
	if n == nil {
		n = notifier.Noop{}
	}
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		CRM:        crm.NewRepository(),
		Notifier:   n,
		Validate:   validator.New(),
	}
}

// Create is the public lead-capture endpoint. The inquiry row is the system
// of record: once it is written the response is a success, whatever happens
// to the CRM upsert or the notification email afterwards.
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

	inq := Inquiry{
		PropertySlug: req.PropertySlug,
		PropertyName: req.PropertyName,
		Guests:       req.Guests,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		Status:       StatusNew,
	}
	if req.CheckIn != "" {
		var d utils.Date
		if err := d.UnmarshalJSON([]byte(`"` + req.CheckIn + `"`)); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid checkIn date")
			return
		}
		inq.CheckIn = &d
	}
	if req.CheckOut != "" {
		var d utils.Date
		if err := d.UnmarshalJSON([]byte(`"` + req.CheckOut + `"`)); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid checkOut date")
			return
		}
		inq.CheckOut = &d
	}

	if err := h.Repository.Create(h.DB, &inq); err != nil {
		log.Printf("inquiry create failed: %v", err)
		// Public audience: generic, retryable message only.
		utils.RespondError(w, http.StatusInternalServerError, "could not save your inquiry, please try again")
		return
	}

	// Best-effort CRM upsert, decoupled from the inquiry write.
	if _, err := h.CRM.UpsertCustomerByEmail(h.DB, inq.Email, crm.CustomerFields{
		Name:  inq.FullName,
		Phone: inq.Phone,
	}); err != nil {
		log.Printf("inquiry %d: customer upsert failed: %v", inq.ID, err)
	}

	// Fire-and-forget staff notification.
	go func(n notifier.InquiryNotification) {
		if err := h.Notifier.InquiryReceived(n); err != nil {
			log.Printf("inquiry %d: notification failed: %v", n.InquiryID, err)
		}
	}(notificationFor(inq))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      inq.ID,
	})
}

func notificationFor(inq Inquiry) notifier.InquiryNotification {
	n := notifier.InquiryNotification{
		InquiryID:    inq.ID,
		FullName:     inq.FullName,
		Email:        inq.Email,
		Phone:        inq.Phone,
		PropertyName: inq.PropertyName,
		PropertySlug: inq.PropertySlug,
		Guests:       inq.Guests,
		Message:      inq.Message,
	}
	if inq.CheckIn != nil {
		n.CheckIn = inq.CheckIn.Format("2006-01-02")
	}
	if inq.CheckOut != nil {
		n.CheckOut = inq.CheckOut.Format("2006-01-02")
	}
	return n
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB, r.URL.Query().Get("status"))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	inq, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, inq)
}

// UpdateStatus moves an inquiry through the funnel.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.UpdateStatus(h.DB, uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidStatus):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
