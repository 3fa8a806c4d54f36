package routes

import (
	"log"

	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/handlers/admin"
	"turkish_shop_backend/internal/middleware"
	"turkish_shop_backend/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Fatalf("❌ Users session unavailable, cannot register routes: %v", err)
	}
	requireAdmin := middleware.RequireAdmin(store.NewUsers(usersSession))

	api := r.Group("/api")

	// Auth
	api.POST("/auth/login", handlers.Login)

	// Customer order surface (guest checkout: keyed on email, no login)
	api.POST("/orders", handlers.CreateOrder)
	api.GET("/orders", handlers.MyOrders)
	api.GET("/orders/track", handlers.TrackOrder)
	api.GET("/orders/:key/watch", handlers.WatchOrder)

	// Vouches
	api.GET("/vouches", handlers.ListApprovedVouches)
	api.GET("/vouches/eligibility", handlers.CheckVouchEligibility)
	api.POST("/vouches", handlers.SubmitVouch)

	// Help requests
	api.POST("/help", handlers.CreateHelpRequest)
	api.GET("/help", handlers.MyHelpRequests)

	// Admin back-office — every route behind the admin gate
	adm := api.Group("/admin", middleware.AuthRequired(), requireAdmin)
	{
		adm.GET("/orders", admin.ListOrders)
		adm.GET("/orders/:number", admin.GetOrder)
		adm.PATCH("/orders/:number", admin.UpdateOrderDetails)
		adm.PATCH("/orders/:number/status", admin.ChangeOrderStatus)
		adm.POST("/orders/:number/delivery", admin.RecordDelivery)
		adm.POST("/orders/:number/resend", admin.ResendNotification)

		adm.GET("/vouches", admin.ListVouches)
		adm.PATCH("/vouches/:number", admin.ModerateVouch)
		adm.DELETE("/vouches/:number", admin.DeleteVouch)

		adm.GET("/reports/status-counts", admin.StatusCounts)
		adm.GET("/reports/revenue", admin.RevenueSummary)

		adm.POST("/users", admin.CreateUser)
		adm.PATCH("/users/:id/role", admin.SetUserRole)

		adm.GET("/help", admin.ListHelpRequests)
		adm.POST("/help/:id/reply", admin.ReplyToHelpRequest)
		adm.PATCH("/help/:id/resolve", admin.ResolveHelpRequest)
	}
}
