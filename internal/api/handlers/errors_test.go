package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

func performWriteError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	writeError(c, err)
	return w
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"invalid reason", domain.ErrInvalidReason, http.StatusBadRequest},
		{"invalid recipe", domain.ErrInvalidRecipe, http.StatusBadRequest},
		{"concurrent write", domain.ErrConflict, http.StatusConflict},
		{"batched adjustment", domain.ErrAdjustmentBatched, http.StatusConflict},
		{"bad transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"unknown error", errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWriteError(tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestWriteErrorInsufficientStockPayload(t *testing.T) {
	w := performWriteError(&domain.InsufficientStockError{
		ItemID: "flour", Available: 150, Requested: 151, Unit: "kg",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"available":150`)
	assert.Contains(t, w.Body.String(), `"requested":151`)
	assert.Contains(t, w.Body.String(), `"unit":"kg"`)
}

func TestWriteErrorHidesInternals(t *testing.T) {
	w := performWriteError(errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.Contains(t, w.Body.String(), "internal server error")
}
