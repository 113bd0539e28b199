package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"unityconsult/handlers"
	"unityconsult/middleware"
	"unityconsult/models"
	"unityconsult/utils"
)

// SetupCORS applies the cross-origin policy for the browser dashboards.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://unityconsultancy.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		snapshot := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"dependencies": snapshot.Dependencies,
			"checkedAt":    snapshot.CheckedAt,
		})
	})
}

// RegisterAuthRoutes registers signup, signin and token management.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUp)
		api.POST("/signin", hb.SignIn)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("/signout", hb.SignOut)
		protected.PUT("/fcm-token", hb.UpdateFCMToken)
	}
}

// RegisterCounselorRoutes registers the public counselor directory and the
// counselor's own profile form.
func RegisterCounselorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/counselors")
	{
		api.GET("", hb.ListCounselors)
		api.GET("/:id", hb.GetCounselor)
		api.GET("/:id/reviews", hb.ListCounselorReviews)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleCounselor))
		protected.POST("/profile", hb.CompleteCounselorProfile)
	}
}

// RegisterClientRoutes registers the client's profile endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		own := api.Group("")
		own.Use(middleware.RequireRole(models.RoleClient))
		own.GET("/profile", hb.GetClientProfile)
		own.POST("/profile", hb.CompleteClientProfile)

		api.GET("/:id", middleware.RequireRole(models.RoleCounselor, models.RoleAdmin), hb.GetClientByID)
	}
}

// RegisterScheduleRoutes registers the counselor's availability editor.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleCounselor))
	{
		api.GET("", hb.ListSchedule)
		api.POST("", hb.CreateSlot)
		api.DELETE("/:id", hb.DeleteSlot)
	}
}

// RegisterBookingRoutes registers the booking wizard and booking management.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/mine", hb.ListMyBookings)

		client := api.Group("")
		client.Use(middleware.RequireRole(models.RoleClient))
		client.POST("/session", hb.StartWizard)
		client.GET("/session/:id", hb.GetWizard)
		client.PUT("/session/:id/counselor", hb.ChooseCounselor)
		client.GET("/session/:id/availability", hb.Availability)
		client.PUT("/session/:id/slot", hb.SelectSlot)
		client.GET("/session/:id/summary", hb.WizardSummary)
		client.POST("/session/:id/back", hb.WizardBack)
		client.DELETE("/session/:id", hb.CancelWizard)
		client.PUT("/:id/reschedule", hb.RescheduleBooking)
	}
}

// RegisterPaymentRoutes registers payment initialization and the gateway
// callback landing. The verify route is public: the gateway redirect carries
// no auth header, only the transaction reference.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payment")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleClient))
	{
		api.POST("/initialize", hb.InitializePayment)
	}

	r.GET("/payment/verify/:txRef", hb.VerifyPayment)
}

// RegisterReviewRoutes registers review submission and listing.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/averages", hb.ReviewAverages)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleClient))
		protected.POST("", hb.SubmitReview)
		protected.GET("/mine", hb.ListMyReviews)
	}
}

// RegisterArticleRoutes registers the public feed and counselor publishing.
func RegisterArticleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/articles")
	{
		api.GET("", hb.ListArticles)
		api.GET("/counselor/:id", hb.ListCounselorArticles)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleCounselor))
		protected.GET("/mine", hb.ListMyArticles)
		protected.POST("", hb.PublishArticle)
	}
}

// RegisterNotificationRoutes registers the notification inbox.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.ListNotifications)
		api.PATCH("/read", hb.MarkNotificationsRead)
	}
}

// RegisterAdminRoutes registers the back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/clients", hb.AdminListClients)
		api.GET("/counselors", hb.AdminListCounselors)
		api.PUT("/counselors/:id/approve", hb.AdminApproveCounselor)
		api.PUT("/counselors/:id/status", hb.AdminSetCounselorStatus)
	}
}

// RegisterAll wires every route group onto the engine.
func RegisterAll(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCounselorRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterArticleRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
