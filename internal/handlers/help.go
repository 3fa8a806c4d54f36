package handlers

import (
	"net/http"
	"time"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateHelpRequest opens a support thread.
func CreateHelpRequest(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	now := time.Now().UTC()
	h := &models.HelpRequest{
		ID:        gocql.TimeUUID(),
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    "open",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := store.NewHelpRequests(session).Create(c.Request.Context(), h); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Help request received",
		"request": h,
	})
}

// MyHelpRequests lists a customer's support threads, newest first.
func MyHelpRequests(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	requests, err := store.NewHelpRequests(session).ListByEmail(c.Request.Context(), email)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}
