package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the authenticated user, set by the gateway in front
// of this service.
const UserIDHeader = "X-User-ID"

func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing "+UserIDHeader+" header")
		return "", false
	}
	return userID, true
}
