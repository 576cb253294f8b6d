package routes

import (
	"net/http"

	"food-ordering-api/handlers"
	"food-ordering-api/media"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
		})
	})

	// Uploaded rating, contact and restaurant photos
	r.Static(media.Default.URLPrefix, media.Default.Dir)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/restaurants/:id/reviews", handlers.GetRestaurantReviews)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(), middleware.ActiveUserRequired())
	{
		auth.GET("/auth/verify", handlers.Verify)
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.ActiveUserRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/profile", handlers.GetProfile)
		customer.PUT("/profile", handlers.UpdateProfile)

		customer.GET("/restaurants", handlers.ListRestaurants)
		customer.GET("/restaurants/:id/menu", handlers.GetMenu)

		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.POST("/orders/rate", handlers.RateOrder)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)

		customer.POST("/contact", handlers.SubmitContact)
		customer.GET("/contact", handlers.GetMyContacts)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(), middleware.ActiveUserRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		owner.PUT("/profile", handlers.UpdateProfile)

		// Restaurant management
		owner.POST("/restaurants", handlers.CreateRestaurant)
		owner.GET("/restaurants", handlers.GetMyRestaurants)
		owner.PUT("/restaurants/:id", handlers.UpdateRestaurant)
		owner.POST("/restaurants/:id/image", handlers.UploadRestaurantImage)

		// Menu management
		owner.POST("/restaurants/:id/menu", handlers.AddFoodItem)
		owner.PUT("/menu/:itemId", handlers.UpdateFoodItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteFoodItem)

		// Order management
		owner.GET("/orders", handlers.GetRestaurantOrders)
		owner.GET("/orders/deliveries", handlers.GetDeliveryQueue)
		owner.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
		owner.PUT("/orders/:id/dispatch", handlers.DispatchOrder)
		owner.PUT("/orders/:id/complete", handlers.CompleteOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.ActiveUserRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/stats", handlers.AdminStats)

		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)

		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/status", handlers.AdminUpdateUserStatus)

		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.PUT("/restaurants/:id", handlers.UpdateRestaurant)

		admin.GET("/contacts", handlers.AdminListContacts)
		admin.GET("/contacts/:id", handlers.AdminGetContact)
		admin.GET("/ws/feed", handlers.AdminContactFeed)
	}
}
