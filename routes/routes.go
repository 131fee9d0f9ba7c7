package routes

import (
	"stellar-delivery-api/handlers"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(rate.Limit(10), 20))
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)

		me := auth.Group("/me")
		me.Use(middleware.AuthRequired())
		{
			me.GET("", handlers.Me)
			me.GET("/profile", handlers.MyProfile)
		}
	}

	public := r.Group("")
	{
		public.GET("/stores", handlers.ListStores)
		public.GET("/stores/:id", handlers.GetStore)
		public.GET("/stores/:id/products", handlers.ListStoreProducts)
		public.GET("/stores/:id/categories", handlers.ListStoreCategories)
		public.GET("/recipes/product/:productID", handlers.GetRecipe)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Profile routes ─────────────────────────────────────────────
	profile := r.Group("/profile")
	profile.Use(middleware.AuthRequired())
	{
		requester := profile.Group("/requester")
		requester.Use(middleware.RoleRequired(models.RoleRequester))
		{
			requester.GET("", handlers.GetRequesterProfile)
			requester.PUT("", handlers.UpdateRequesterProfile)
			requester.GET("/addresses", handlers.ListAddresses)
			requester.POST("/addresses", handlers.AddAddress)
			requester.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
			requester.DELETE("/addresses/:id", handlers.DeleteAddress)
		}

		deliverer := profile.Group("/deliverer")
		deliverer.Use(middleware.RoleRequired(models.RoleDeliverer))
		{
			deliverer.GET("", handlers.GetDelivererProfile)
			deliverer.PUT("", handlers.UpdateDelivererProfile)
			deliverer.PUT("/banking", handlers.UpdateDelivererBanking)
		}

		store := profile.Group("/store")
		store.Use(middleware.RoleRequired(models.RoleStore))
		{
			store.GET("", handlers.GetStoreProfile)
			store.PUT("", handlers.UpdateStoreProfile)
		}
	}

	// ── Store routes ───────────────────────────────────────────────
	store := r.Group("/stores/my")
	store.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStore))
	{
		store.GET("/profile", handlers.GetStoreProfile)
		store.PUT("/profile", handlers.UpdateStoreProfile)
		store.PUT("/toggle-open", handlers.ToggleStoreOpen)

		store.GET("/products", handlers.MyProducts)
		store.POST("/products", handlers.CreateProduct)
		store.PUT("/products/:id", handlers.UpdateProduct)
		store.DELETE("/products/:id", handlers.DeleteProduct)

		store.POST("/categories", handlers.CreateCategory)
		store.PUT("/categories/:id", handlers.UpdateCategory)
		store.DELETE("/categories/:id", handlers.DeleteCategory)

		store.GET("/orders", handlers.StoreOrders)
		store.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		store.GET("/sales", handlers.MySales)
	}

	// ── Recipe management (store role) ─────────────────────────────
	recipes := r.Group("/recipes")
	recipes.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStore))
	{
		recipes.POST("/product/:productID", handlers.CreateRecipe)
		recipes.PUT("/product/:productID", handlers.UpdateRecipe)
		recipes.DELETE("/product/:productID", handlers.DeleteRecipe)
	}

	// ── Requester routes ───────────────────────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRequester))
	{
		orders.POST("", handlers.PlaceOrder)
		orders.GET("", handlers.MyOrders)
		orders.GET("/:id", handlers.GetOrder)
		orders.PUT("/:id/cancel", handlers.CancelOrder)
		orders.GET("/:id/payment", handlers.GetOrderPayment)
	}

	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRequester))
	{
		payments.POST("", handlers.CreatePayment)
	}

	// ── Deliverer routes ───────────────────────────────────────────
	delivery := r.Group("/delivery")
	delivery.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDeliverer))
	{
		delivery.GET("/jobs", handlers.ListJobs)
		delivery.POST("/jobs/:orderID/accept", handlers.AcceptJob)
		delivery.GET("/my", handlers.MyDeliveries)
		delivery.PUT("/:id/location", handlers.UpdateLocation)
		delivery.PUT("/:id/status", handlers.UpdateDeliveryStatus)
		delivery.GET("/payouts", handlers.MyPayouts)
	}

	// ── Notification routes ────────────────────────────────────────
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthRequired())
	{
		notifications.GET("", handlers.ListNotifications)
		notifications.GET("/unread/count", handlers.UnreadCount)
		notifications.PUT("/read-all", handlers.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", handlers.MarkNotificationRead)
		notifications.POST("", middleware.RoleRequired(models.RoleAdmin), handlers.CreateNotification)
	}

	// ── Image routes ───────────────────────────────────────────────
	images := r.Group("/images")
	images.Use(middleware.AuthRequired())
	{
		images.POST("/upload", handlers.UploadImage)
		images.GET("/entity/:type/:id", handlers.GetEntityImages)
		images.GET("/:id", handlers.GetImage)
		images.DELETE("/:id", handlers.DeleteImage)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/active", handlers.AdminSetUserActive)
		admin.GET("/stores", handlers.AdminGetAllStores)
		admin.POST("/payouts", handlers.CreatePayout)
	}
}
