package services

import (
	"testing"

	"resort-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReservation(t *testing.T, db *gorm.DB, guest *models.User, total int64) *models.Reservation {
	t.Helper()
	room := createTestRoom(t, db, "R"+itoa(uint(total)), total)
	svc := NewReservationService(db)
	reservation, err := svc.Create(guest, BookingRequest{
		RoomID:       &room.ID,
		CheckInDate:  "2026-09-01",
		CheckOutDate: "2026-09-02",
	})
	require.NoError(t, err)
	return reservation
}

func TestCreatePayment_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	reservation := setupReservation(t, db, guest, 2000)

	_, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.Zero,
		PaymentMethod: models.MethodGCash,
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: models.MethodGCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Regexp(t, `^PAY-\d{8}-[A-Z0-9]{8}$`, payment.TransactionReference)
}

func TestCreatePayment_WrongGuestRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	reservation := setupReservation(t, db, guest, 2000)

	_, err := svc.Create(other, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: models.MethodCash,
	})
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestApprovePayment_FullPaymentConfirmsReservation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 5250)

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        reservation.TotalAmount,
		PaymentMethod: models.MethodBankTransfer,
	})
	require.NoError(t, err)

	approved, err := svc.Approve(payment.ID, admin, "verified")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	// one operation flips both payment status and lifecycle status
	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, reservation.ID).Error)
	assert.Equal(t, models.PaymentPaid, reloaded.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, reloaded.Status)
}

func TestApprovePayment_PartialLeavesReservationPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 5250)

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(2000),
		PaymentMethod: models.MethodGCash,
	})
	require.NoError(t, err)

	_, err = svc.Approve(payment.ID, admin, "")
	require.NoError(t, err)

	var reloaded models.Reservation
	require.NoError(t, db.Preload("Payments").First(&reloaded, reservation.ID).Error)
	assert.Equal(t, models.PaymentPartial, reloaded.PaymentStatus)
	assert.Equal(t, models.StatusPending, reloaded.Status)
	assert.Equal(t, "3250.00", reloaded.RemainingBalance().StringFixed(2))
}

func TestApprovePayment_OnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 1000)

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.Approve(payment.ID, admin, "")
	require.NoError(t, err)

	_, err = svc.Approve(payment.ID, admin, "")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestRejectPayment_LeavesReservationUnpaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 1000)

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.MethodMaya,
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(payment.ID, admin, "blurry proof of payment")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRejected, rejected.Status)
	assert.Equal(t, "blurry proof of payment", rejected.RejectionReason)

	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, reservation.ID).Error)
	assert.Equal(t, models.PaymentUnpaid, reloaded.PaymentStatus)
	assert.Equal(t, models.StatusPending, reloaded.Status)

	// a rejected payment cannot be approved afterwards
	_, err = svc.Approve(payment.ID, admin, "")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestRefundPayment_RecomputesPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 1000)

	payment, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.MethodPayPal,
	})
	require.NoError(t, err)

	// refund requires an approved payment
	_, err = svc.Refund(payment.ID, "")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))

	_, err = svc.Approve(payment.ID, admin, "")
	require.NoError(t, err)

	refunded, err := svc.Refund(payment.ID, "guest cancelled trip")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.Status)

	// payment status rolls back, lifecycle status is left alone
	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, reservation.ID).Error)
	assert.Equal(t, models.PaymentUnpaid, reloaded.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, reloaded.Status)
}

func TestPaymentStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	reservation := setupReservation(t, db, guest, 3000)

	first, err := svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(2000),
		PaymentMethod: models.MethodGCash,
	})
	require.NoError(t, err)
	_, err = svc.Approve(first.ID, admin, "")
	require.NoError(t, err)

	_, err = svc.Create(guest, PaymentRequest{
		ReservationID: reservation.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.MethodCash,
	})
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.True(t, stats.TotalApprovedAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.True(t, stats.ApprovedByServiceType[models.ServiceRoom].Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, int64(1), stats.PendingByServiceType[models.ServiceRoom])
}
