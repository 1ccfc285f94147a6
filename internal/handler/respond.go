package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/domain"
)

// respondError writes the shared {error, message} envelope.
func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}

// parseAsOf resolves the planning date for the request: the as_of query
// when present, otherwise the server clock. A malformed value responds 400
// and returns ok=false.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	asOfStr := c.Query("as_of")
	if asOfStr == "" {
		return time.Now(), true
	}

	parsed, err := domain.ParseDayKey(asOfStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid as_of date format, expected YYYY-MM-DD")
		return time.Time{}, false
	}

	return parsed, true
}
