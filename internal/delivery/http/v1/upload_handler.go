package v1

import (
	"net/http"

	"prosalon-backend/pkg/storage"
	"prosalon-backend/pkg/utils"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadHandler accepts product imagery, normalizes it to web-friendly
// dimensions and format, and stores it on R2.
type UploadHandler struct {
	storage *storage.R2Storage
}

func NewUploadHandler(s *storage.R2Storage) *UploadHandler {
	return &UploadHandler{storage: s}
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, contentType, err := utils.ProcessImage(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "unsupported or corrupt image")
		return
	}

	url, err := h.storage.UploadBuffer(r.Context(), data, contentType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}
