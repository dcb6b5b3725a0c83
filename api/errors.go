package api

import (
	"errors"
	"net/http"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps service failures onto the API's error contract:
// missing rows are 404, bad input and booking conflicts are 400, and
// anything else is an internal failure the client did not cause.
// The body shape is always {"error": "<message>"}.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsValidation(err), errors.Is(err, domain.ErrRoomUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
