package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// customerView strips admin-only fields before an order leaves the customer
// surface.
func customerView(o models.Order) gin.H {
	o.AdminNotes = ""
	o.EmailLog = nil
	return gin.H{
		"order":    o,
		"progress": models.ProgressPercent(o.Status),
	}
}

// newOrderNumber builds the human-facing order number printed on receipts.
func newOrderNumber() string {
	return "TS-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// CreateOrder takes a guest checkout order. Payment happens upstream; the
// order lands here already paid, in pending until an admin verifies it.
func CreateOrder(c *gin.Context) {
	var req struct {
		Email        string             `json:"email" binding:"required,email"`
		Product      string             `json:"product" binding:"required"`
		Price        string             `json:"price" binding:"required"`
		Currency     string             `json:"currency"`
		Items        []models.OrderItem `json:"items"`
		Platform     string             `json:"platform"`
		DeliveryType string             `json:"deliveryType"`
		IsExpress    bool               `json:"isExpress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderKey:     gocql.TimeUUID(),
		OrderID:      newOrderNumber(),
		BuyerEmail:   req.Email,
		Product:      req.Product,
		Price:        req.Price,
		Currency:     currency,
		Items:        req.Items,
		Platform:     req.Platform,
		DeliveryType: req.DeliveryType,
		Status:       models.StatusPending,
		IsExpress:    req.IsExpress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.NewOrders(session).Create(c.Request.Context(), order); err != nil {
		RespondError(c, fmt.Errorf("order creation failed: %w", err))
		return
	}

	log.Printf("🛒 Order %s created for %s (%s %s)", order.OrderID, order.BuyerEmail, order.Price, order.Currency)
	c.JSON(http.StatusCreated, customerView(*order))
}

// TrackOrder returns one order looked up by its human number, gated on the
// buyer email matching case-insensitively. A wrong email reads as not found
// so order numbers cannot be probed.
func TrackOrder(c *gin.Context) {
	number := c.Query("number")
	email := c.Query("email")
	if number == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number and email are required"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	order, err := store.NewOrders(session).GetByNumber(c.Request.Context(), number)
	if err != nil {
		RespondError(c, err)
		return
	}

	if !strings.EqualFold(order.BuyerEmail, email) {
		RespondError(c, apperr.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, customerView(*order))
}

// MyOrders lists a customer's orders, newest first. Email is the sole
// correlation key — guest checkout means no login is required to own orders.
func MyOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	orders, err := store.NewOrders(session).ListByEmail(c.Request.Context(), email)
	if err != nil {
		RespondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		views = append(views, customerView(o))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": views,
		"count":  len(views),
	})
}
