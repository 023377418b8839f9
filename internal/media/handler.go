package media

import (
	"net/http"
	"path"
	"strings"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/google/uuid"
)

const maxUploadBytes = 15 << 20

// Handler serves the admin image upload endpoint.
type Handler struct {
	Storage Storage
}

func NewHandler(store Storage) *Handler {
	return &Handler{Storage: store}
}

// Upload accepts a multipart image and stores it under a fresh UUID key.
// Upload is the one operation whose entire purpose is the storage dependency,
// so a storage failure surfaces as a 500 instead of being swallowed.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil || !h.Storage.Enabled() {
		utils.RespondError(w, http.StatusServiceUnavailable, "media storage not configured")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.RespondError(w, http.StatusBadRequest, "only image uploads are accepted")
		return
	}

	key := "listings/" + uuid.NewString() + strings.ToLower(path.Ext(header.Filename))
	url, err := h.Storage.Upload(r.Context(), key, contentType, file)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"url":    url,
		"bucket": h.Storage.Bucket(),
		"key":    key,
	})
}
