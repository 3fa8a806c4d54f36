package admin

import (
	"net/http"
	"time"

	"turkish_shop_backend/internal/cache"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/models"
	"turkish_shop_backend/internal/orders"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
)

func newManager(c *gin.Context) (*orders.Manager, bool) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return nil, false
	}
	st := store.NewOrders(session)
	return orders.NewManager(st, handlers.Dispatcher(), cache.NewOrderPublisher()), true
}

// ListOrders returns all orders, or only those in ?status=.
func ListOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}
	st := store.NewOrders(session)

	var list []models.Order
	if status := c.Query("status"); status != "" {
		if !models.IsKnownStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + status})
			return
		}
		list, err = st.ListByStatus(c.Request.Context(), status)
	} else {
		list, err = st.ListAll(c.Request.Context())
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": list,
		"count":  len(list),
	})
}

// GetOrder returns one order with all admin fields, by human order number.
func GetOrder(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	order, err := store.NewOrders(session).GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ChangeOrderStatus moves an order to a new status. Transitioning to
// delivered takes the delivery value from the request (or the order) and
// triggers the delivery email.
func ChangeOrderStatus(c *gin.Context) {
	var req struct {
		Status        string `json:"status" binding:"required"`
		AdminNotes    string `json:"adminNotes"`
		DeliveryValue string `json:"deliveryValue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	m, ok := newManager(c)
	if !ok {
		return
	}

	order, mailRes, err := m.ChangeStatus(c.Request.Context(), c.Param("number"), req.Status, req.AdminNotes, req.DeliveryValue)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"order":   order,
	}
	// mailRes is nil unless this call actually attempted a delivery email.
	if mailRes != nil {
		resp["email"] = mailRes
	}
	c.JSON(http.StatusOK, resp)
}

// RecordDelivery marks an order delivered with its delivery value. The write
// lands before the email attempt; a failed email is reported in the
// response, never as a failure of the delivery itself.
func RecordDelivery(c *gin.Context) {
	var req struct {
		DeliveryValue string `json:"deliveryValue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deliveryValue is required"})
		return
	}

	m, ok := newManager(c)
	if !ok {
		return
	}

	order, mailRes, err := m.RecordDelivery(c.Request.Context(), c.Param("number"), req.DeliveryValue)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"email":   mailRes,
	})
}

// ResendNotification re-sends the delivery email for an already delivered
// order. Mirrors the callable admin action: {success, message}.
func ResendNotification(c *gin.Context) {
	m, ok := newManager(c)
	if !ok {
		return
	}

	order, mailRes, err := m.ResendNotification(c.Request.Context(), c.Param("number"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	message := "Delivery email resent to " + order.BuyerEmail
	if !mailRes.Success {
		message = "Resend attempted but failed: " + mailRes.Error
	}
	c.JSON(http.StatusOK, gin.H{
		"success": mailRes.Success,
		"message": message,
	})
}

// UpdateOrderDetails edits admin-owned order fields outside the lifecycle:
// express flag, queue position, estimated delivery, notes.
func UpdateOrderDetails(c *gin.Context) {
	var req struct {
		IsExpress             *bool      `json:"isExpress"`
		QueuePosition         *int       `json:"queuePosition"`
		EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
		AdminNotes            *string    `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.IsExpress != nil {
		fields["is_express"] = *req.IsExpress
	}
	if req.QueuePosition != nil {
		fields["queue_position"] = *req.QueuePosition
	}
	if req.EstimatedDeliveryTime != nil {
		fields["estimated_delivery_time"] = *req.EstimatedDeliveryTime
	}
	if req.AdminNotes != nil {
		fields["admin_notes"] = *req.AdminNotes
	}

	m, ok := newManager(c)
	if !ok {
		return
	}

	order, err := m.UpdateDetails(c.Request.Context(), c.Param("number"), fields)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
