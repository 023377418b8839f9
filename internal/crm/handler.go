package crm

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type customerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone"`
	Notes  string `json:"notes"`
	Source string `json:"source"`
	Status string `json:"status"`
	Tags   string `json:"tags"`
}

type dealRequest struct {
	Title             string  `json:"title" validate:"required"`
	Value             float64 `json:"value" validate:"min=0"`
	Stage             string  `json:"stage"`
	CustomerID        *uint   `json:"customerId"`
	Probability       int     `json:"probability" validate:"min=0,max=100"`
	ExpectedCloseDate string  `json:"expectedCloseDate"`
	Owner             string  `json:"owner"`
}

type stageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Validate   *validator.Validate
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Validate:   validator.New(),
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrInvalidStage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) customerFromRequest(r *http.Request) (*Customer, error) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = StageLead
	}
	return &Customer{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
		Source: req.Source,
		Status: status,
		Tags:   req.Tags,
	}, nil
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customerFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.CreateCustomer(h.DB, c); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListCustomers(h.DB)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.Repository.GetCustomer(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.customerFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.UpdateCustomer(h.DB, id, c); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repository.DeleteCustomer(h.DB, id); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) dealFromRequest(r *http.Request) (*Deal, error) {
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return nil, err
	}
	d := Deal{
		Title:       req.Title,
		Value:       req.Value,
		Stage:       req.Stage,
		CustomerID:  req.CustomerID,
		Probability: req.Probability,
		Owner:       req.Owner,
	}
	if req.ExpectedCloseDate != "" {
		var date utils.Date
		if err := date.UnmarshalJSON([]byte(`"` + req.ExpectedCloseDate + `"`)); err != nil {
			return nil, errors.New("invalid expectedCloseDate")
		}
		d.ExpectedCloseDate = &date
	}
	return &d, nil
}

func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	d, err := h.dealFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.CreateDeal(h.DB, d); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, d)
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListDeals(h.DB)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.Repository.GetDeal(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.dealFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.UpdateDeal(h.DB, id, d); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// UpdateDealStage is the pipeline transition endpoint.
func (h *Handler) UpdateDealStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req stageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.Repository.UpdateDealStage(h.DB, id, req.Stage)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repository.DeleteDeal(h.DB, id); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
