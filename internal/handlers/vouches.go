package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/services"
	"turkish_shop_backend/internal/store"
	"turkish_shop_backend/internal/vouch"

	"github.com/gin-gonic/gin"
)

func newGuard(c *gin.Context) (*vouch.Guard, bool) {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return nil, false
	}
	vouchesSession, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return nil, false
	}
	return vouch.NewGuard(store.NewOrders(ordersSession), store.NewVouches(vouchesSession)), true
}

// CheckVouchEligibility answers whether a vouch may be submitted for an
// order. Advisory only — SubmitVouch re-runs the same checks server-side.
func CheckVouchEligibility(c *gin.Context) {
	number := c.Query("number")
	email := c.Query("email")
	if number == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number and email are required"})
		return
	}

	guard, ok := newGuard(c)
	if !ok {
		return
	}

	elig, err := guard.CanSubmit(c.Request.Context(), number, email)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, elig)
}

// SubmitVouch creates a review for a delivered order. Accepts JSON or
// multipart form; the multipart path takes an optional profile picture
// uploaded to the blob store before the vouch is persisted.
func SubmitVouch(c *gin.Context) {
	var in vouch.SubmitInput

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in.OrderNumber = c.PostForm("orderNumber")
		in.Email = c.PostForm("email")
		in.Name = c.PostForm("name")
		in.Message = c.PostForm("message")
		in.Rating, _ = strconv.Atoi(c.PostForm("rating"))

		if file, err := c.FormFile("profilePicture"); err == nil {
			url, err := services.UploadFile(c.Request.Context(), "vouch-pictures", file)
			if err != nil {
				log.Printf("⚠️ Profile picture upload failed: %v", err)
			} else {
				in.ProfilePictureURL = url
			}
		}
	} else {
		var req struct {
			OrderNumber string `json:"orderNumber" binding:"required"`
			Email       string `json:"email" binding:"required,email"`
			Name        string `json:"name" binding:"required"`
			Message     string `json:"message" binding:"required"`
			Rating      int    `json:"rating" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
		in = vouch.SubmitInput{
			OrderNumber: req.OrderNumber,
			Email:       req.Email,
			Name:        req.Name,
			Message:     req.Message,
			Rating:      req.Rating,
		}
	}

	guard, ok := newGuard(c)
	if !ok {
		return
	}

	v, err := guard.Submit(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted, pending moderation",
		"vouch":   v,
	})
}

// ListApprovedVouches returns the publicly visible reviews. Only approved
// vouches ever reach this surface.
func ListApprovedVouches(c *gin.Context) {
	session, err := database.GetVouchesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	vouches, err := store.NewVouches(session).ListByStatus(c.Request.Context(), models.VouchApproved)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouches": vouches,
		"count":   len(vouches),
	})
}
