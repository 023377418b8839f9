package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Handler wraps the session endpoints.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login verifies credentials and sets the admin_session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.Repository.Login(h.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Logout clears the cookie and deletes the backing row. Safe to call twice.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(CookieName); err == nil {
		token = c.Value
	}
	if err := h.Repository.Logout(h.DB, token); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Me returns the logged-in admin user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// ChangePassword updates the logged-in admin's credential.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.NewPassword == "" {
		utils.RespondError(w, http.StatusBadRequest, "newPassword is required")
		return
	}
	if err := h.Repository.ChangePassword(h.DB, user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "password change failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
