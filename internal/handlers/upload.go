package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/uploads"
)

// ==========================
// Upload Handler
// ==========================
type UploadHandler struct {
	Store    *uploads.Store
	MaxFiles int
	// MaxMemory is the part of a multipart body kept in memory; the rest spills to temp files.
	MaxMemory int64
}

type uploadByLinkRequest struct {
	Link string `json:"link" validate:"required"`
}

// ByLink downloads a photo from a URL and returns the stored file name.
func (h *UploadHandler) ByLink(w http.ResponseWriter, r *http.Request) error {
	var in uploadByLinkRequest
	if err := decode(r, &in); err != nil {
		return err
	}
	name, err := h.Store.SaveFromLink(r.Context(), in.Link)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, name)
	return nil
}

// FromDevice stores the files of the multipart "photos" field and returns their names.
func (h *UploadHandler) FromDevice(w http.ResponseWriter, r *http.Request) error {
	maxMemory := h.MaxMemory
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.TooLarge("request body too large")
		}
		return apperr.Validation("invalid multipart form", map[string]string{"photos": err.Error()})
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		return apperr.Validation("validation failed", map[string]string{"photos": "is required"})
	}
	if h.MaxFiles > 0 && len(files) > h.MaxFiles {
		return apperr.Validation("validation failed", map[string]string{
			"photos": fmt.Sprintf("at most %d files", h.MaxFiles),
		})
	}
	names, err := h.Store.SaveMultipart(files)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, names)
	return nil
}
