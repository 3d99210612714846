package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecalcPaymentStatus(t *testing.T) {
	res := Reservation{TotalAmount: decimal.NewFromInt(5000)}

	res.RecalcPaymentStatus()
	assert.Equal(t, PaymentUnpaid, res.PaymentStatus)

	res.Payments = []Payment{
		{Status: PaymentStatusApproved, Amount: decimal.NewFromInt(2000)},
		{Status: PaymentStatusPending, Amount: decimal.NewFromInt(3000)},
	}
	res.RecalcPaymentStatus()
	assert.Equal(t, PaymentPartial, res.PaymentStatus)

	// exactly the total counts as fully paid
	res.Payments = append(res.Payments, Payment{Status: PaymentStatusApproved, Amount: decimal.NewFromInt(3000)})
	res.RecalcPaymentStatus()
	assert.Equal(t, PaymentPaid, res.PaymentStatus)
}

func TestTotalPaid_CountsApprovedOnly(t *testing.T) {
	res := Reservation{
		TotalAmount: decimal.NewFromInt(1000),
		Payments: []Payment{
			{Status: PaymentStatusApproved, Amount: decimal.NewFromInt(300)},
			{Status: PaymentStatusApproved, Amount: decimal.NewFromInt(200)},
			{Status: PaymentStatusRejected, Amount: decimal.NewFromInt(400)},
			{Status: PaymentStatusPending, Amount: decimal.NewFromInt(100)},
		},
	}
	assert.Equal(t, "500.00", res.TotalPaid().StringFixed(2))
	assert.Equal(t, "500.00", res.RemainingBalance().StringFixed(2))
}

func TestRemainingBalance_CanGoNegative(t *testing.T) {
	res := Reservation{
		TotalAmount: decimal.NewFromInt(100),
		Payments:    []Payment{{Status: PaymentStatusApproved, Amount: decimal.NewFromInt(150)}},
	}
	assert.Equal(t, "-50.00", res.RemainingBalance().StringFixed(2))
}

func TestNights(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	assert.Equal(t, 0, (&Reservation{}).Nights())
	assert.Equal(t, 2, (&Reservation{CheckInDate: day(10), CheckOutDate: day(12)}).Nights())
	assert.Equal(t, 0, (&Reservation{CheckInDate: day(12), CheckOutDate: day(10)}).Nights())
}

func TestFoodQuantities_RoundTrip(t *testing.T) {
	var res Reservation
	assert.Empty(t, res.FoodQuantities())

	res.SetFoodQuantities(map[string]int{"3": 2, "7": 1})
	got := res.FoodQuantities()
	assert.Equal(t, 2, got["3"])
	assert.Equal(t, 1, got["7"])
}

func TestReservationType(t *testing.T) {
	roomID := uint(1)
	tourID := uint(2)

	assert.Equal(t, "N/A", (&Reservation{}).ReservationType())
	assert.Equal(t, "Room", (&Reservation{RoomID: &roomID}).ReservationType())

	combined := Reservation{RoomID: &roomID, TourID: &tourID}
	combined.SetFoodQuantities(map[string]int{"5": 1})
	assert.Equal(t, "Room + Tour + Food", combined.ReservationType())
}
