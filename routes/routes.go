package routes

import (
	"cafe-order-api/handlers"
	"cafe-order-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)

		// Ordering flow (no auth: customers order from the table QR code)
		public.GET("/menu", handlers.GetMenu)
		public.POST("/orders", handlers.PlaceOrder)
		public.GET("/orders/:id", handlers.GetOrder)

		// Storefront content
		public.GET("/homepage-images", handlers.GetHomepageImages)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		// Order dashboard
		admin.GET("/dashboard", handlers.GetDashboard)
		admin.GET("/events", handlers.StreamEvents)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// Menu management
		admin.GET("/menu", handlers.ListMenuAdmin)
		admin.POST("/menu", handlers.CreateMenuItem)
		admin.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		admin.DELETE("/menu/:itemId", handlers.DeleteMenuItem)
		admin.POST("/images", handlers.UploadImage)

		// Homepage content
		admin.GET("/homepage-images", handlers.ListHomepageImagesAdmin)
		admin.POST("/homepage-images", handlers.CreateHomepageImage)
		admin.PUT("/homepage-images/:id", handlers.UpdateHomepageImage)
		admin.DELETE("/homepage-images/:id", handlers.DeleteHomepageImage)

		// Sales reporting
		admin.GET("/sales", handlers.GetSalesReport)
		admin.GET("/sales/export", handlers.ExportSalesCSV)
	}
}
