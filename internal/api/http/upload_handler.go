package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/storage"
)

// UploadHandler handles equipment image uploads and serves stored images.
type UploadHandler struct {
	images      *storage.ImageStore
	maxFileSize int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(images *storage.ImageStore, maxFileSize int64) *UploadHandler {
	return &UploadHandler{images: images, maxFileSize: maxFileSize}
}

// HandleUpload accepts a multipart image upload and returns the public
// URL of the stored file.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	url, err := h.images.Save(header.Filename, file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			writeMessage(w, http.StatusBadRequest, "unsupported image type")
			return
		}
		logger.Error("failed to store image", "filename", header.Filename, "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"imageUrl": url})
}

// HandleDownload streams a stored image.
func (h *UploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file"]
	file, err := h.images.Open(name)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

// RegisterUploadRoutes registers the protected upload route and the
// public image serving route.
func RegisterUploadRoutes(public, admin *mux.Router, images *storage.ImageStore, maxFileSize int64) {
	handler := NewUploadHandler(images, maxFileSize)
	admin.HandleFunc("/api/upload-image", handler.HandleUpload).Methods("POST")
	public.HandleFunc("/uploads/{file}", handler.HandleDownload).Methods("GET")
}
