package admin

import (
	"net/http"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
)

// ListVouches returns vouches awaiting moderation, or those in ?status=.
func ListVouches(c *gin.Context) {
	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	status := c.DefaultQuery("status", models.VouchPending)
	vouches, err := store.NewVouches(session).ListByStatus(c.Request.Context(), status)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouches": vouches,
		"count":   len(vouches),
	})
}

// ModerateVouch approves or rejects a pending vouch. Only moderated-approved
// vouches reach the public listing.
func ModerateVouch(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	if req.Status != models.VouchApproved && req.Status != models.VouchRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}

	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := store.NewVouches(session).UpdateStatus(c.Request.Context(), c.Param("number"), req.Status); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vouch " + req.Status,
	})
}

// DeleteVouch removes a vouch entirely.
func DeleteVouch(c *gin.Context) {
	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := store.NewVouches(session).Delete(c.Request.Context(), c.Param("number")); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vouch deleted",
	})
}
