package handlers

import (
	"errors"
	"log"
	"net/http"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/mailer"

	"github.com/gin-gonic/gin"
)

var dispatcher *mailer.Dispatcher

// Init wires the process-wide notification dispatcher into the handlers.
func Init(d *mailer.Dispatcher) {
	dispatcher = d
}

// Dispatcher returns the configured notification dispatcher.
func Dispatcher() *mailer.Dispatcher {
	return dispatcher
}

// RespondError maps error kinds to HTTP statuses. Every rejected operation
// carries a structured reason string the UI can surface directly.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrFailedPrecondition):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
