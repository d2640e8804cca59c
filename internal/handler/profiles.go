package handler

import (
	"errors"
	"net/http"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) createProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req model.ProfileCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to create profile")
		return
	}
	if user.ProfileID != nil && *user.ProfileID != "" {
		errorJSON(c, http.StatusBadRequest, "user already has a profile")
		return
	}

	profile, err := h.repo.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("profile creation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to create profile")
		return
	}

	// Link is a separate write; a failure leaves an orphan profile
	if err := h.repo.AssignProfile(c.Request.Context(), claims.UserID, profile.ID); err != nil {
		h.log.Warn("profile link failed", zap.String("profile_id", profile.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.repo.ListProfiles(c.Request.Context())
	if err != nil {
		h.log.Error("profile list failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.repo.GetProfileByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "profile not found")
			return
		}
		h.log.Error("profile lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) updateProfile(c *gin.Context) {
	id := c.Param("id")

	var upd model.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := upd.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.UpdateProfile(c.Request.Context(), id, &upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "profile not found")
			return
		}
		h.log.Error("profile update failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	profile, err := h.repo.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("profile lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) deleteProfile(c *gin.Context) {
	if err := h.repo.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "profile not found")
			return
		}
		h.log.Error("profile delete failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
