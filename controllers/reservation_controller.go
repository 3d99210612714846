package controllers

import (
	"net/http"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReservationController is the admin-side reservation workflow.
type ReservationController struct {
	Reservations *services.ReservationService
	Log          *logrus.Logger
}

func NewReservationController(reservations *services.ReservationService, log *logrus.Logger) *ReservationController {
	return &ReservationController{Reservations: reservations, Log: log}
}

func (ctl *ReservationController) Index(c *gin.Context) {
	filters := services.ReservationFilters{
		Status:      c.Query("status"),
		ServiceType: c.Query("serviceType"),
		PaidPending: c.Query("filter") == "paid_pending",
	}

	reservations, err := ctl.Reservations.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (ctl *ReservationController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := ctl.Reservations.Get(id)
	if err != nil {
		respondServiceError(c, err)
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

type adminNotesPayload struct {
	Notes string `json:"notes"`
}

func (ctl *ReservationController) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload adminNotesPayload
	_ = c.ShouldBindJSON(&payload)

	reservation, err := ctl.Reservations.Approve(id, middleware.CurrentUser(c), payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Log.WithField("code", reservation.ReservationCode).Info("✅ reservation approved")
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type rejectPayload struct {
	Reason string `json:"reason"`
}

func (ctl *ReservationController) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload rejectPayload
	_ = c.ShouldBindJSON(&payload)

	reservation, err := ctl.Reservations.Reject(id, payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := ctl.Reservations.Complete(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) MarkPaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := ctl.Reservations.MarkPaid(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
