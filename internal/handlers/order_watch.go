package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"turkish_shop_backend/internal/cache"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (tighten in production)
		return true
	},
}

// WatchOrder streams live status updates for one order over a websocket. The
// watcher is a passive listener: every Redis event triggers a re-read and a
// re-send of the current state, so duplicate or repeated events are harmless.
func WatchOrder(c *gin.Context) {
	key, err := gocql.ParseUUID(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order key"})
		return
	}
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
	ordersStore := store.NewOrders(session)

	order, err := ordersStore.GetByKey(c.Request.Context(), key)
	if err != nil || !strings.EqualFold(order.BuyerEmail, email) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	pubsub := database.Redis.Subscribe(ctx, cache.OrderChannel(key.String()))
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Current state first so the dashboard renders immediately.
	if err := conn.WriteJSON(customerView(*order)); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" {
				continue
			}
			order, err := ordersStore.GetByKey(ctx, key)
			if err != nil {
				log.Printf("⚠️ Watched order %s re-read failed: %v", key, err)
				continue
			}
			if err := conn.WriteJSON(customerView(*order)); err != nil {
				log.Printf("❌ WebSocket write failed: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Keepalive ping
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
