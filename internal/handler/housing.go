package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) createListing(c *gin.Context) {
	var req model.HousingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := h.repo.CreateListing(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("listing creation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to create listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) listListings(c *gin.Context) {
	availableOnly, _ := strconv.ParseBool(c.DefaultQuery("available_only", "false"))

	listings, err := h.repo.ListListings(c.Request.Context(), availableOnly)
	if err != nil {
		h.log.Error("listing list failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to list housing")
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) getListing(c *gin.Context) {
	listing, err := h.repo.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "listing not found")
			return
		}
		h.log.Error("listing lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) updateListing(c *gin.Context) {
	id := c.Param("id")

	var upd model.HousingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := upd.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.UpdateListing(c.Request.Context(), id, &upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "listing not found")
			return
		}
		h.log.Error("listing update failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to update listing")
		return
	}

	listing, err := h.repo.GetListingByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("listing lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) deleteListing(c *gin.Context) {
	if err := h.repo.DeleteListing(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "listing not found")
			return
		}
		h.log.Error("listing delete failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to delete listing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}
