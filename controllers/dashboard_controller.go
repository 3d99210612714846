package controllers

import (
	"net/http"
	"time"

	"resort-backend/models"
	"resort-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardController aggregates the admin landing page numbers.
type DashboardController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
	Payments     *services.PaymentService
	Logs         *services.ActivityLogService
}

func NewDashboardController(db *gorm.DB, reservations *services.ReservationService, payments *services.PaymentService, logs *services.ActivityLogService) *DashboardController {
	return &DashboardController{DB: db, Reservations: reservations, Payments: payments, Logs: logs}
}

func (ctl *DashboardController) entityCounts() (gin.H, error) {
	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"rooms":    &models.Room{},
		"tours":    &models.Tour{},
		"foods":    &models.Food{},
		"packages": &models.Package{},
		"users":    &models.User{},
	} {
		var n int64
		if err := ctl.DB.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

func (ctl *DashboardController) Stats(c *gin.Context) {
	reservationStats, err := ctl.Reservations.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	paymentStats, err := ctl.Payments.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	activityToday, err := ctl.Logs.CountSince(midnight)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recent, err := ctl.Logs.Recent(10)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	counts, err := ctl.entityCounts()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"reservations":   reservationStats,
		"payments":       paymentStats,
		"counts":         counts,
		"activityToday":  activityToday,
		"recentActivity": recent,
	})
}
