package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"resort-backend/config"
	"resort-backend/controllers"
	"resort-backend/routes"
	"resort-backend/services"
	"resort-backend/utils"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(utils.EnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logrus.Warn("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	log := newLogger()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Info("✅ Database connection established and migrations applied")

	// Initialize services
	auditService := services.NewActivityLogService(db, log)
	userService := services.NewUserService(db)
	imageService := services.NewImageService("uploads", log)
	roomService := services.NewRoomService(db)
	tourService := services.NewTourService(db)
	foodService := services.NewFoodService(db)
	packageService := services.NewPackageService(db, imageService)
	reservationService := services.NewReservationService(db)
	paymentService := services.NewPaymentService(db)

	// Initialize controllers
	ctl := routes.Controllers{
		Auth:         controllers.NewAuthController(userService, auditService, log),
		Rooms:        controllers.NewRoomController(roomService, imageService, auditService, log),
		Tours:        controllers.NewTourController(tourService, imageService, auditService, log),
		Foods:        controllers.NewFoodController(foodService, imageService, auditService, log),
		Packages:     controllers.NewPackageController(packageService, imageService, log),
		GuestBooking: controllers.NewGuestReservationController(reservationService, paymentService, log),
		Reservations: controllers.NewReservationController(reservationService, log),
		Payments:     controllers.NewPaymentController(paymentService, log),
		ActivityLogs: controllers.NewActivityLogController(auditService),
		Dashboard:    controllers.NewDashboardController(db, reservationService, paymentService, auditService),
	}

	router := routes.SetupRouter(ctl, db, log)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Warn("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Info("✅ Server stopped gracefully")
}
