package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func TestCreateReservation_RoomAndFoodPricing(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "102", 2500)
	fish := createTestFood(t, db, "Grilled Fish", 100)
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		RoomID:       uintPtr(room.ID),
		CheckInDate:  "2026-09-01",
		CheckOutDate: "2026-09-03",
		FoodItems: map[string]int{
			itoa(fish.ID): 2,
			itoa(tea.ID):  1,
		},
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	// 2 nights x 2500 + 100x2 + 50x1
	assert.Equal(t, "5250.00", reservation.TotalAmount.StringFixed(2))
	assert.Equal(t, models.ServiceRoom, reservation.ServiceType)
	assert.Equal(t, models.StatusPending, reservation.Status)
	assert.Equal(t, models.PaymentUnpaid, reservation.PaymentStatus)
	assert.Regexp(t, `^RES-\d{8}-[A-Z0-9]{6}$`, reservation.ReservationCode)
	assert.Equal(t, 2, reservation.Nights())
}

func TestCreateReservation_SkipsUnresolvableFood(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{
			itoa(tea.ID): 2,
			"99999":      3, // deleted item, dropped silently
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "100.00", reservation.TotalAmount.StringFixed(2))
	assert.Equal(t, models.ServiceFood, reservation.ServiceType)

	quantities := reservation.FoodQuantities()
	assert.Len(t, quantities, 1)
	assert.Equal(t, 2, quantities[itoa(tea.ID)])
}

func TestCreateReservation_ZeroTotalAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	guest := createTestUser(t, db, "guest@example.com")

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{"404": 1},
	})
	require.NoError(t, err)
	assert.True(t, reservation.TotalAmount.IsZero())
}

func TestCreateReservation_TourPerParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	tour := createTestTour(t, db, "Island Hopping", 1200)

	reservation, err := svc.Create(guest, BookingRequest{
		TourID:           uintPtr(tour.ID),
		TourParticipants: intPtr(3),
		TourDate:         "2026-09-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "3600.00", reservation.TotalAmount.StringFixed(2))
	assert.Equal(t, models.ServiceTour, reservation.ServiceType)
}

func TestCreateReservation_RequiresSelection(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	guest := createTestUser(t, db, "guest@example.com")

	_, err := svc.Create(guest, BookingRequest{NumberOfGuests: 2})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateReservation_InvalidDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	room := createTestRoom(t, db, "101", 1500)

	_, err := svc.Create(guest, BookingRequest{
		RoomID:       uintPtr(room.ID),
		CheckInDate:  "2026-09-03",
		CheckOutDate: "2026-09-01",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestApproveReservation_OnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{itoa(tea.ID): 1},
	})
	require.NoError(t, err)

	approved, err := svc.Approve(reservation.ID, admin, "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedByID)
	assert.Equal(t, admin.ID, *approved.ApprovedByID)

	// second approval hits the state guard
	_, err = svc.Approve(reservation.ID, admin, "")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestReservationTransitions_GuardFailureLeavesRowUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	other := createTestUser(t, db, "other@example.com")
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{itoa(tea.ID): 1},
	})
	require.NoError(t, err)

	_, err = svc.Approve(reservation.ID, admin, "welcome")
	require.NoError(t, err)

	// the failed re-approval rolls back, keeping the first approval's fields
	_, err = svc.Approve(reservation.ID, admin, "second pass")
	require.Error(t, err)

	reloaded, err := svc.Get(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, reloaded.Status)
	assert.Equal(t, "welcome", reloaded.AdminNotes)

	// same for a cancel attempt by the wrong guest
	_, err = svc.Cancel(reservation.ID, other)
	require.Error(t, err)

	reloaded, err = svc.Get(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, reloaded.Status)
}

func TestRejectReservation_BlockedFromTerminalStates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{itoa(tea.ID): 1},
	})
	require.NoError(t, err)

	_, err = svc.Complete(reservation.ID)
	require.NoError(t, err)

	_, err = svc.Reject(reservation.ID, "too late")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestCancelReservation_OwnershipAndStateGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	tea := createTestFood(t, db, "Iced Tea", 50)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{itoa(tea.ID): 1},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(reservation.ID, other)
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))

	cancelled, err := svc.Cancel(reservation.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// a cancelled reservation cannot be cancelled again
	_, err = svc.Cancel(reservation.ID, guest)
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestListReservations_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	tea := createTestFood(t, db, "Iced Tea", 50)
	tour := createTestTour(t, db, "Waterfall Trek", 800)

	first, err := svc.Create(guest, BookingRequest{FoodItems: map[string]int{itoa(tea.ID): 1}})
	require.NoError(t, err)
	_, err = svc.Create(guest, BookingRequest{TourID: uintPtr(tour.ID)})
	require.NoError(t, err)

	foodOnly, err := svc.List(ReservationFilters{ServiceType: models.ServiceFood})
	require.NoError(t, err)
	require.Len(t, foodOnly, 1)
	assert.Equal(t, first.ID, foodOnly[0].ID)

	pending, err := svc.List(ReservationFilters{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// paid_pending: fully paid but still awaiting approval
	require.NoError(t, db.Model(&models.Reservation{}).
		Where("id = ?", first.ID).
		Update("payment_status", models.PaymentPaid).Error)

	paidPending, err := svc.List(ReservationFilters{PaidPending: true})
	require.NoError(t, err)
	require.Len(t, paidPending, 1)
	assert.Equal(t, first.ID, paidPending[0].ID)
}

func TestFoodDetails_ResolvesLineItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	guest := createTestUser(t, db, "guest@example.com")
	fish := createTestFood(t, db, "Grilled Fish", 350)

	reservation, err := svc.Create(guest, BookingRequest{
		FoodItems: map[string]int{itoa(fish.ID): 2},
	})
	require.NoError(t, err)

	lines, err := svc.FoodDetails(reservation)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fish.Name, lines[0].Food.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "700.00", lines[0].Subtotal.StringFixed(2))
}
