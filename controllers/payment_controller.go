package controllers

import (
	"net/http"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentController is the admin-side payment review workflow.
type PaymentController struct {
	Payments *services.PaymentService
	Log      *logrus.Logger
}

func NewPaymentController(payments *services.PaymentService, log *logrus.Logger) *PaymentController {
	return &PaymentController{Payments: payments, Log: log}
}

// Dashboard returns the payment stats block for the admin landing page.
func (ctl *PaymentController) Dashboard(c *gin.Context) {
	stats, err := ctl.Payments.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ctl *PaymentController) Pending(c *gin.Context) {
	payments, err := ctl.Payments.Pending()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (ctl *PaymentController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payment, err := ctl.Payments.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctl *PaymentController) ByReservation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payments, err := ctl.Payments.ListByReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (ctl *PaymentController) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload adminNotesPayload
	_ = c.ShouldBindJSON(&payload)

	payment, err := ctl.Payments.Approve(id, middleware.CurrentUser(c), payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Log.WithFields(logrus.Fields{
		"payment": payment.TransactionReference,
		"amount":  payment.Amount.StringFixed(2),
	}).Info("✅ payment approved")

	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctl *PaymentController) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload rejectPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Reason == "" {
		utils.JSONError(c, http.StatusBadRequest, "rejection reason is required")
		return
	}

	payment, err := ctl.Payments.Reject(id, middleware.CurrentUser(c), payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctl *PaymentController) Refund(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload adminNotesPayload
	_ = c.ShouldBindJSON(&payload)

	payment, err := ctl.Payments.Refund(id, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
