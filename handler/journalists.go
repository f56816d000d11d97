package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/model"
)

func (h *RecordHandler) ListJournalists(c *gin.Context) {
	journalists, total, err := h.store.ListJournalists(c.Request.Context(), listOptions(c))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": journalists, "total": total})
}

func (h *RecordHandler) GetJournalist(c *gin.Context) {
	journalist, err := h.store.GetJournalist(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, journalist)
}

func (h *RecordHandler) CreateJournalist(c *gin.Context) {
	var in model.JournalistInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journalist, err := h.store.CreateJournalist(c.Request.Context(), in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journalist)
}

func (h *RecordHandler) UpdateJournalist(c *gin.Context) {
	var in model.JournalistInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journalist, err := h.store.UpdateJournalist(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, journalist)
}

func (h *RecordHandler) DeleteJournalist(c *gin.Context) {
	if err := h.store.DeleteJournalist(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
