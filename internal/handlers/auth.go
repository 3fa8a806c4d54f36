package handlers

import (
	"errors"
	"net/http"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/store"
	"turkish_shop_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Login verifies credentials and mints a JWT. Customers do not need an
// account to own orders (guest checkout); this exists for the back-office.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
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

	user, err := store.NewUsers(session).GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		RespondError(c, err)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.UserID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"user_id": user.UserID,
			"email":   user.Email,
			"name":    user.Name,
			"role":    user.Role,
		},
	})
}
