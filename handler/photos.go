package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/media"
	"github.com/ininahazwe/mfwa-memorial/metrics"
)

type PhotoHandler struct {
	photos media.Store
}

func NewPhotoHandler(photos media.Store) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload validates the file before touching the blob store: an
// oversized or non-image file is rejected without any upload attempt.
func (h *PhotoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[ERROR] Failed to open uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		log.Printf("[ERROR] Failed to read uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	if err := media.ValidatePhoto(fileHeader.Size, head[:n]); err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rest, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[ERROR] Failed to read uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	data := append(head[:n], rest...)

	url, err := h.photos.SavePhoto(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("error").Inc()
		log.Printf("[ERROR] Photo upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please try again"})
		return
	}

	metrics.PhotoUploadsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// Serve streams a stored photo back. Public, no session required; the
// memorial site embeds these URLs directly.
func (h *PhotoHandler) Serve(c *gin.Context) {
	stream, err := h.photos.OpenPhoto(c.Request.Context(), c.Param("name"))
	if errors.Is(err, media.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}
	if err != nil {
		log.Printf("[ERROR] Photo read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error, please try again"})
		return
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		log.Printf("[ERROR] Photo read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error, please try again"})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
