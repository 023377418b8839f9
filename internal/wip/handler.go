package wip

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AdriaticEscapes/api-backoffice/internal/notifier"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type taskRequest struct {
	Title      string `json:"title" validate:"required"`
	TitleDe    string `json:"titleDe"`
	NextStep   string `json:"nextStep"`
	Priority   string `json:"priority"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
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
		Notifier:   n,
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
	case errors.Is(err, ErrInvalidPriority):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) taskFromRequest(r *http.Request) (*WipTask, error) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return nil, err
	}
	return &WipTask{
		Title:      req.Title,
		TitleDe:    req.TitleDe,
		NextStep:   req.NextStep,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
		Status:     req.Status,
	}, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	t, err := h.taskFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Repository.Create(h.DB, t); err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, t)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeComplete := r.URL.Query().Get("all") == "true"
	list, err := h.Repository.List(h.DB, includeComplete)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, t)
}

// Update edits a task; handing it to a new owner notifies them, best-effort.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.taskFromRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	reassigned, out, err := h.Repository.Update(h.DB, id, t)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if reassigned {
		go func(n notifier.TaskNotification) {
			if err := h.Notifier.TaskReassigned(n); err != nil {
				log.Printf("task %d: reassignment notification failed: %v", n.TaskID, err)
			}
		}(notifier.TaskNotification{
			TaskID:     out.ID,
			Title:      out.Title,
			NextStep:   out.NextStep,
			Priority:   out.Priority,
			AssignedTo: out.AssignedTo,
		})
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.Repository.ToggleComplete(h.DB, id)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
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
