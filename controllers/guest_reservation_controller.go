package controllers

import (
	"net/http"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GuestReservationController is the guest-facing booking surface. Every
// handler operates on the authenticated guest's own reservations.
type GuestReservationController struct {
	Reservations *services.ReservationService
	Payments     *services.PaymentService
	Log          *logrus.Logger
}

func NewGuestReservationController(reservations *services.ReservationService, payments *services.PaymentService, log *logrus.Logger) *GuestReservationController {
	return &GuestReservationController{Reservations: reservations, Payments: payments, Log: log}
}

func (ctl *GuestReservationController) Index(c *gin.Context) {
	guest := middleware.CurrentUser(c)
	reservations, err := ctl.Reservations.ListByGuest(guest.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (ctl *GuestReservationController) Book(c *gin.Context) {
	guest := middleware.CurrentUser(c)

	var payload services.BookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	reservation, err := ctl.Reservations.Create(guest, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Log.WithFields(logrus.Fields{
		"code":  reservation.ReservationCode,
		"guest": guest.ID,
		"total": reservation.TotalAmount.StringFixed(2),
	}).Info("✅ reservation created")

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (ctl *GuestReservationController) Show(c *gin.Context) {
	guest := middleware.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	reservation, err := ctl.Reservations.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if reservation.GuestID != guest.ID {
		utils.JSONError(c, http.StatusNotFound, "not found")
		return
	}

	foodLines, err := ctl.Reservations.FoodDetails(reservation)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"reservation":      reservation,
		"foodDetails":      foodLines,
		"totalPaid":        reservation.TotalPaid(),
		"remainingBalance": reservation.RemainingBalance(),
	})
}

func (ctl *GuestReservationController) Cancel(c *gin.Context) {
	guest := middleware.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	reservation, err := ctl.Reservations.Cancel(id, guest)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// SubmitPayment records a pending payment against one of the guest's
// reservations.
func (ctl *GuestReservationController) SubmitPayment(c *gin.Context) {
	guest := middleware.CurrentUser(c)

	var payload services.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	payment, err := ctl.Payments.Create(guest, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}
