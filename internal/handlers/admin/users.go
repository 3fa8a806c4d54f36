package admin

import (
	"errors"
	"log"
	"net/http"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/cache"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/store"
	"turkish_shop_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateUser provisions a back-office account. Customers never need one
// (guest checkout), so every record created here is staff.
func CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}
	users := store.NewUsers(session)

	if _, err := users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		handlers.RespondError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "support"
	}

	u := &models.User{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(c.Request.Context(), u); err != nil {
		handlers.RespondError(c, err)
		return
	}

	log.Printf("✅ User %s created (role: %s)", u.Email, u.Role)
	c.JSON(http.StatusCreated, gin.H{
		"user_id": u.UserID,
		"email":   u.Email,
		"name":    u.Name,
		"role":    u.Role,
	})
}

// SetUserRole changes a user's role and drops the cached role so the change
// takes effect on the next request, not at cache expiry.
func SetUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	userID := c.Param("id")
	if err := store.NewUsers(session).SetRole(c.Request.Context(), userID, req.Role); err != nil {
		handlers.RespondError(c, err)
		return
	}
	cache.InvalidateRole(c.Request.Context(), userID)

	log.Printf("🔄 Role for user %s set to %s", userID, req.Role)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated",
	})
}
