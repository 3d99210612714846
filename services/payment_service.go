package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic ของ payment
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// PaymentRequest is the guest payload for submitting a payment against a
// reservation.
type PaymentRequest struct {
	ReservationID   uint            `json:"reservationId"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	GuestNotes      string          `json:"guestNotes"`
	ProofOfPayment  string          `json:"proofOfPayment"`
}

// Create records a pending payment. The amount must be positive; it is not
// capped at the remaining balance, overpayments simply drive the reservation
// to PAID.
func (s *PaymentService) Create(guest *models.User, req PaymentRequest) (*models.Payment, error) {
	if guest == nil || guest.ID == 0 {
		return nil, validationErr("guest is required")
	}
	if !req.Amount.IsPositive() {
		return nil, validationErr("payment amount must be greater than zero")
	}

	var reservation models.Reservation
	if err := s.DB.First(&reservation, req.ReservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("reservation not found")
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	if reservation.GuestID != guest.ID {
		return nil, businessErr("reservation does not belong to this guest")
	}
	if reservation.Status == models.StatusCancelled {
		return nil, businessErr("cancelled reservations cannot be paid")
	}

	payment := models.Payment{
		ReservationID:   reservation.ID,
		PaidByID:        guest.ID,
		Amount:          req.Amount.Round(2),
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentStatusPending,
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		GuestNotes:      strings.TrimSpace(req.GuestNotes),
		ProofOfPayment:  req.ProofOfPayment,
	}

	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		ref, refErr := utils.NewTransactionReference()
		if refErr != nil {
			return nil, fmt.Errorf("failed to generate transaction reference: %w", refErr)
		}
		payment.TransactionReference = ref
		createErr = s.DB.Create(&payment).Error
		if createErr == nil {
			break
		}
		if !isDuplicateKey(createErr) {
			return nil, fmt.Errorf("failed to create payment: %w", createErr)
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create payment after %d attempts: %w", maxRetries, createErr)
	}

	return &payment, nil
}

func (s *PaymentService) Get(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.
		Preload("Reservation").
		Preload("Reservation.Guest").
		Preload("PaidBy").
		Preload("ApprovedBy").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) ListByReservation(reservationID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.
		Preload("PaidBy").
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (s *PaymentService) Pending() ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.
		Preload("Reservation").
		Preload("Reservation.Guest").
		Preload("PaidBy").
		Where("status = ?", models.PaymentStatusPending).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// Approve marks a pending payment as approved and, in the same transaction,
// recomputes the reservation's payment status from the sum of its approved
// payments. A reservation that becomes fully paid while still PENDING is
// confirmed automatically.
func (s *PaymentService) Approve(paymentID uint, approver *models.User, notes string) (*models.Payment, error) {
	var payment models.Payment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentStatusPending {
			return businessErr("only pending payments can be approved")
		}

		now := time.Now()
		payment.Status = models.PaymentStatusApproved
		payment.ApprovedAt = &now
		if approver != nil && approver.ID != 0 {
			id := approver.ID
			payment.ApprovedByID = &id
		}
		if strings.TrimSpace(notes) != "" {
			payment.AdminNotes = strings.TrimSpace(notes)
		}
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed to approve payment: %w", err)
		}

		return s.syncReservation(tx, payment.ReservationID, true)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Reject declines a pending payment. The reservation's payment status is
// untouched because rejected amounts never counted toward it.
func (s *PaymentService) Reject(paymentID uint, approver *models.User, reason string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, businessErr("only pending payments can be rejected")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusRejected
	payment.ApprovedAt = &now
	payment.RejectionReason = strings.TrimSpace(reason)
	if approver != nil && approver.ID != 0 {
		id := approver.ID
		payment.ApprovedByID = &id
	}

	if err := s.DB.Save(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to reject payment: %w", err)
	}
	return &payment, nil
}

// Refund reverses an approved payment and recomputes the reservation's
// payment status. The reservation's lifecycle status is left alone; whether
// to cancel is a separate decision.
func (s *PaymentService) Refund(paymentID uint, notes string) (*models.Payment, error) {
	var payment models.Payment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentStatusApproved {
			return businessErr("only approved payments can be refunded")
		}

		payment.Status = models.PaymentStatusRefunded
		if strings.TrimSpace(notes) != "" {
			payment.AdminNotes = strings.TrimSpace(notes)
		}
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed to refund payment: %w", err)
		}

		return s.syncReservation(tx, payment.ReservationID, false)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// syncReservation reloads the reservation with its payments and recomputes
// its payment status. When autoConfirm is set, a fully paid PENDING
// reservation is promoted to CONFIRMED.
func (s *PaymentService) syncReservation(tx *gorm.DB, reservationID uint, autoConfirm bool) error {
	var reservation models.Reservation
	if err := tx.Preload("Payments").First(&reservation, reservationID).Error; err != nil {
		return fmt.Errorf("failed to reload reservation: %w", err)
	}

	reservation.RecalcPaymentStatus()
	if autoConfirm && reservation.PaymentStatus == models.PaymentPaid && reservation.Status == models.StatusPending {
		reservation.Status = models.StatusConfirmed
	}

	if err := tx.Save(&reservation).Error; err != nil {
		return fmt.Errorf("failed to update reservation payment status: %w", err)
	}
	return nil
}

// PaymentStats feeds the admin payments dashboard.
type PaymentStats struct {
	TotalApprovedAmount   decimal.Decimal            `json:"totalApprovedAmount"`
	TodayApprovedAmount   decimal.Decimal            `json:"todayApprovedAmount"`
	MonthApprovedAmount   decimal.Decimal            `json:"monthApprovedAmount"`
	TotalPendingAmount    decimal.Decimal            `json:"totalPendingAmount"`
	PendingCount          int64                      `json:"pendingCount"`
	ApprovedByServiceType map[string]decimal.Decimal `json:"approvedByServiceType"`
	PendingByServiceType  map[string]int64           `json:"pendingByServiceType"`
}

func (s *PaymentService) Stats() (*PaymentStats, error) {
	stats := &PaymentStats{
		ApprovedByServiceType: map[string]decimal.Decimal{},
		PendingByServiceType:  map[string]int64{},
	}

	var err error
	if stats.TotalApprovedAmount, err = s.sumAmount("status = ?", models.PaymentStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodayApprovedAmount, err = s.sumAmount("status = ? AND approved_at >= ?", models.PaymentStatusApproved, startOfDay); err != nil {
		return nil, err
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.MonthApprovedAmount, err = s.sumAmount("status = ? AND approved_at >= ?", models.PaymentStatusApproved, startOfMonth); err != nil {
		return nil, err
	}

	if stats.TotalPendingAmount, err = s.sumAmount("status = ?", models.PaymentStatusPending); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPending).Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}

	type serviceAmount struct {
		ServiceType string
		Total       decimal.Decimal
	}
	var amounts []serviceAmount
	err = s.DB.Model(&models.Payment{}).
		Select("reservations.service_type AS service_type, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN reservations ON reservations.id = payments.reservation_id").
		Where("payments.status = ?", models.PaymentStatusApproved).
		Group("reservations.service_type").
		Scan(&amounts).Error
	if err != nil {
		return nil, err
	}
	for _, row := range amounts {
		stats.ApprovedByServiceType[row.ServiceType] = row.Total
	}

	type serviceCount struct {
		ServiceType string
		Count       int64
	}
	var counts []serviceCount
	err = s.DB.Model(&models.Payment{}).
		Select("reservations.service_type AS service_type, COUNT(payments.id) AS count").
		Joins("JOIN reservations ON reservations.id = payments.reservation_id").
		Where("payments.status = ?", models.PaymentStatusPending).
		Group("reservations.service_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, row := range counts {
		stats.PendingByServiceType[row.ServiceType] = row.Count
	}

	return stats, nil
}

func (s *PaymentService) sumAmount(query string, args ...interface{}) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := s.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(query, args...).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
