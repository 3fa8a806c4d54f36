package admin

import (
	"net/http"
	"time"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/reports"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
)

// StatusCounts returns the number of orders per status, zero-filled.
func StatusCounts(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	counts, err := reports.StatusCounts(c.Request.Context(), store.NewOrders(session))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":       counts,
		"generated_at": time.Now(),
	})
}

// RevenueSummary returns revenue bucketed by today / rolling week / calendar
// month / all time, excluding cancelled orders.
func RevenueSummary(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	summary, err := reports.Revenue(c.Request.Context(), store.NewOrders(session), time.Now())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revenue":      summary,
		"generated_at": time.Now(),
	})
}
