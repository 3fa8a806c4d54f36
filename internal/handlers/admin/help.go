package admin

import (
	"net/http"
	"time"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ListHelpRequests returns every support thread.
func ListHelpRequests(c *gin.Context) {
	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	requests, err := store.NewHelpRequests(session).ListAll(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// ReplyToHelpRequest appends a support reply to a thread.
func ReplyToHelpRequest(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}
	helpStore := store.NewHelpRequests(session)

	if _, err := helpStore.GetByID(c.Request.Context(), id); err != nil {
		handlers.RespondError(c, err)
		return
	}

	reply := models.HelpReply{
		From:    "support",
		Message: req.Message,
		SentAt:  time.Now().UTC(),
	}
	if err := helpStore.AppendReply(c.Request.Context(), id, reply); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reply added",
	})
}

// ResolveHelpRequest closes a support thread.
func ResolveHelpRequest(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := store.NewHelpRequests(session).SetStatus(c.Request.Context(), id, "resolved"); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Help request resolved",
	})
}
