package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthRequired validates the session token from the access_token cookie or
// the Authorization header and stores the claims on the context
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(h.cfg.Auth.CookieName); err == nil && cookie != "" {
			token = cookie
		} else if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			errorJSON(c, http.StatusUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		claims, err := h.jwt.Validate(token)
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}
