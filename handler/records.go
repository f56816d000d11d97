package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/store"
)

// RecordHandler serves the CRUD surface over both collections.
type RecordHandler struct {
	store *store.Store
}

func NewRecordHandler(s *store.Store) *RecordHandler {
	return &RecordHandler{store: s}
}

// listOptions reads the pagination/sort/filter query params passed
// through opaquely from the admin UI's tables.
func listOptions(c *gin.Context) store.ListOptions {
	opts := store.ListOptions{
		Sort:      c.Query("sort"),
		Order:     c.DefaultQuery("order", "desc"),
		CountryID: c.Query("countryId"),
	}

	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.ParseInt(c.Query("offset"), 10, 64); err == nil {
		opts.Offset = v
	}
	if v, err := strconv.ParseBool(c.Query("published")); err == nil {
		opts.Published = &v
	}

	return opts
}

// writeStoreError maps facade errors onto the response taxonomy:
// validation 400, not-found 404, everything else a retryable 500.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		log.Printf("[ERROR] Store operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error, please try again"})
	}
}
