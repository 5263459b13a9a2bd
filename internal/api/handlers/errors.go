package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// writeError maps domain errors onto HTTP status codes. Validation failures
// are 400, missing resources 404, and state clashes 409; anything unmapped
// is logged and reported as 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientStockError

	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrInvalidRecipe):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
			"requested": insufficient.Requested,
			"unit":      insufficient.Unit,
		})
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAdjustmentBatched),
		errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
