package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/model"
)

func (h *RecordHandler) ListCountries(c *gin.Context) {
	countries, total, err := h.store.ListCountries(c.Request.Context(), listOptions(c))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": countries, "total": total})
}

func (h *RecordHandler) GetCountry(c *gin.Context) {
	country, err := h.store.GetCountry(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *RecordHandler) CreateCountry(c *gin.Context) {
	var in model.CountryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := h.store.CreateCountry(c.Request.Context(), in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, country)
}

func (h *RecordHandler) UpdateCountry(c *gin.Context) {
	var in model.CountryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := h.store.UpdateCountry(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountry never cascades; it reports how many journalists still
// reference the deleted country so the UI can say so.
func (h *RecordHandler) DeleteCountry(c *gin.Context) {
	referencing, err := h.store.DeleteCountry(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "referencingJournalists": referencing})
}
