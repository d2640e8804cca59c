package handler

import (
	"errors"
	"net/http"

	"github.com/flatwalay/backend/internal/auth"
	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func currentClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func (h *Handler) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if _, err := h.repo.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		errorJSON(c, http.StatusBadRequest, "username already taken")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("username lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("password hashing failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.Username, hashed, req.Email, req.ProfileID, req.ListingID)
	if err != nil {
		h.log.Error("user creation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user.PublicView())
}

func (h *Handler) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.repo.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		h.log.Error("user lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	if !h.hasher.Verify(user.Password, req.Password) {
		errorJSON(c, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Username, user.Email, user.ListingID, user.ProfileID, user.IsVerified)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := h.repo.SetUserToken(c.Request.Context(), user.ID, token); err != nil {
		h.log.Error("token store failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.SetCookie(h.cfg.Auth.CookieName, token, h.cfg.Auth.CookieMaxAgeSec, "/", "", h.cfg.Auth.SecureCookie, true)
	c.JSON(http.StatusOK, model.LoginResponse{
		ID:        user.ID,
		Username:  user.Username,
		Token:     token,
		ProfileID: user.ProfileID,
		ListingID: user.ListingID,
	})
}

func (h *Handler) logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.repo.ClearUserToken(c.Request.Context(), claims.UserID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("token clear failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to log out")
		return
	}

	c.SetCookie(h.cfg.Auth.CookieName, "", -1, "/", "", h.cfg.Auth.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) currentUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error("user lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user.PublicView())
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("user list failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	views := make([]model.UserResponse, 0, len(users))
	for i := range users {
		views = append(views, users[i].PublicView())
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")

	var upd model.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if upd.Password != nil {
		hashed, err := h.hasher.Hash(*upd.Password)
		if err != nil {
			h.log.Error("password hashing failed", zap.Error(err))
			errorJSON(c, http.StatusInternalServerError, "failed to update user")
			return
		}
		upd.Password = &hashed
	}

	if err := h.repo.UpdateUser(c.Request.Context(), id, &upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error("user update failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to update user")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user.PublicView())
}

func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error("user delete failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
