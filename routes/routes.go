package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"resort-backend/controllers"
	"resort-backend/middleware"
	"resort-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles every handler SetupRouter wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Rooms        *controllers.RoomController
	Tours        *controllers.TourController
	Foods        *controllers.FoodController
	Packages     *controllers.PackageController
	GuestBooking *controllers.GuestReservationController
	Reservations *controllers.ReservationController
	Payments     *controllers.PaymentController
	ActivityLogs *controllers.ActivityLogController
	Dashboard    *controllers.DashboardController
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(ctl Controllers, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/register", ctl.Auth.Register)
		}

		// public catalog for the booking frontend
		catalog := api.Group("/catalog")
		{
			catalog.GET("/rooms", ctl.Rooms.Available)
			catalog.GET("/rooms/:id", ctl.Rooms.Show)
			catalog.GET("/tours", ctl.Tours.Available)
			catalog.GET("/tours/:id", ctl.Tours.Show)
			catalog.GET("/foods", ctl.Foods.Available)
			catalog.GET("/foods/:id", ctl.Foods.Show)
			catalog.GET("/packages", ctl.Packages.Available)
			catalog.GET("/packages/:id", ctl.Packages.Show)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthRequired(db))
		{
			authed.POST("/auth/logout", ctl.Auth.Logout)
			authed.GET("/auth/profile", ctl.Auth.Profile)
			authed.PUT("/auth/profile", ctl.Auth.UpdateProfile)
			authed.PUT("/auth/password", ctl.Auth.ChangePassword)

			my := authed.Group("/my")
			{
				my.GET("/reservations", ctl.GuestBooking.Index)
				my.POST("/reservations", ctl.GuestBooking.Book)
				my.GET("/reservations/:id", ctl.GuestBooking.Show)
				my.POST("/reservations/:id/cancel", ctl.GuestBooking.Cancel)
				my.POST("/payments", ctl.GuestBooking.SubmitPayment)
			}

			staff := authed.Group("")
			staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleStaff))
			{
				rooms := staff.Group("/rooms")
				{
					rooms.GET("", ctl.Rooms.Index)
					rooms.POST("", ctl.Rooms.Create)
					rooms.GET("/:id", ctl.Rooms.Show)
					rooms.PUT("/:id", ctl.Rooms.Update)
					rooms.PATCH("/:id", ctl.Rooms.Patch)
					rooms.DELETE("/:id", ctl.Rooms.Delete)
				}

				tours := staff.Group("/tours")
				{
					tours.GET("", ctl.Tours.Index)
					tours.POST("", ctl.Tours.Create)
					tours.GET("/:id", ctl.Tours.Show)
					tours.PUT("/:id", ctl.Tours.Update)
					tours.DELETE("/:id", ctl.Tours.Delete)
				}

				foods := staff.Group("/foods")
				{
					foods.GET("", ctl.Foods.Index)
					foods.POST("", ctl.Foods.Create)
					foods.GET("/:id", ctl.Foods.Show)
					foods.PUT("/:id", ctl.Foods.Update)
					foods.DELETE("/:id", ctl.Foods.Delete)
				}

				packages := staff.Group("/packages")
				{
					packages.GET("", ctl.Packages.Index)
					packages.POST("", ctl.Packages.Create)
					packages.GET("/:id", ctl.Packages.Show)
					packages.PUT("/:id", ctl.Packages.Update)
					packages.DELETE("/:id", ctl.Packages.Delete)
					packages.POST("/:id/toggle-status", ctl.Packages.ToggleStatus)
					packages.POST("/:id/toggle-featured", ctl.Packages.ToggleFeatured)
					packages.POST("/:id/duplicate", ctl.Packages.Duplicate)
					packages.POST("/:id/remove-gallery-image", ctl.Packages.RemoveGalleryImage)
				}

				reservations := staff.Group("/reservations")
				{
					reservations.GET("", ctl.Reservations.Index)
					reservations.GET("/:id", ctl.Reservations.Show)
					reservations.POST("/:id/approve", ctl.Reservations.Approve)
					reservations.POST("/:id/reject", ctl.Reservations.Reject)
					reservations.POST("/:id/complete", ctl.Reservations.Complete)
					reservations.POST("/:id/mark-paid", ctl.Reservations.MarkPaid)
					reservations.GET("/:id/payments", ctl.Payments.ByReservation)
				}

				payments := staff.Group("/payments")
				{
					payments.GET("/stats", ctl.Payments.Dashboard)
					payments.GET("/pending", ctl.Payments.Pending)
					payments.GET("/:id", ctl.Payments.Show)
					payments.POST("/:id/approve", ctl.Payments.Approve)
					payments.POST("/:id/reject", ctl.Payments.Reject)
					payments.POST("/:id/refund", ctl.Payments.Refund)
				}

				staff.GET("/dashboard", ctl.Dashboard.Stats)
			}

			admin := authed.Group("")
			admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
			{
				logs := admin.Group("/activity-logs")
				{
					logs.GET("", ctl.ActivityLogs.Index)
					logs.GET("/stats", ctl.ActivityLogs.Stats)
					logs.GET("/export", ctl.ActivityLogs.ExportCSV)
					logs.GET("/:id", ctl.ActivityLogs.Show)
				}
			}
		}
	}

	return r
}
