package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic ของ reservation
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// BookingRequest is the guest-facing payload for creating a reservation.
// All pricing inputs are resolved server-side; the client never sends an
// amount.
type BookingRequest struct {
	RoomID       *uint          `json:"roomId"`
	CheckInDate  string         `json:"checkInDate"`
	CheckOutDate string         `json:"checkOutDate"`

	TourID           *uint  `json:"tourId"`
	TourParticipants *int   `json:"tourParticipants"`
	TourDate         string `json:"tourDate"`

	PackageID *uint `json:"packageId"`

	FoodItems map[string]int `json:"foodItems"`

	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `json:"specialRequests"`
	ContactPhone    string `json:"contactPhone"`
}

const dateLayout = "2006-01-02"

// Create prices the requested services at booking time and persists the
// reservation as PENDING / UNPAID. Food entries that do not resolve to an
// existing food item are skipped; a selection that prices to zero is still
// accepted.
func (s *ReservationService) Create(guest *models.User, req BookingRequest) (*models.Reservation, error) {
	if guest == nil || guest.ID == 0 {
		return nil, validationErr("guest is required")
	}
	if req.NumberOfGuests < 1 {
		req.NumberOfGuests = 1
	}

	total := decimal.Zero
	reservation := models.Reservation{
		GuestID:         guest.ID,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		ContactPhone:    strings.TrimSpace(req.ContactPhone),
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}

	if req.RoomID != nil {
		var room models.Room
		if err := s.DB.First(&room, *req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationErr("room not found")
			}
			return nil, fmt.Errorf("failed to load room: %w", err)
		}

		checkIn, err := time.Parse(dateLayout, req.CheckInDate)
		if err != nil {
			return nil, validationErr("invalid check-in date")
		}
		checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
		if err != nil {
			return nil, validationErr("invalid check-out date")
		}
		if !checkOut.After(checkIn) {
			return nil, validationErr("check-out date must be after check-in date")
		}

		reservation.RoomID = req.RoomID
		reservation.CheckInDate = &checkIn
		reservation.CheckOutDate = &checkOut

		nights := nightsBetween(checkIn, checkOut)
		total = total.Add(room.PricePerNight.Mul(decimal.NewFromInt(int64(nights))))
	}

	if req.TourID != nil {
		var tour models.Tour
		if err := s.DB.First(&tour, *req.TourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationErr("tour not found")
			}
			return nil, fmt.Errorf("failed to load tour: %w", err)
		}

		participants := 1
		if req.TourParticipants != nil && *req.TourParticipants > 0 {
			participants = *req.TourParticipants
		}
		reservation.TourID = req.TourID
		reservation.TourParticipants = &participants
		if req.TourDate != "" {
			tourDate, err := time.Parse(dateLayout, req.TourDate)
			if err != nil {
				return nil, validationErr("invalid tour date")
			}
			reservation.TourDate = &tourDate
		}

		total = total.Add(tour.Price.Mul(decimal.NewFromInt(int64(participants))))
	}

	if req.PackageID != nil {
		var pkg models.Package
		if err := s.DB.First(&pkg, *req.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationErr("package not found")
			}
			return nil, fmt.Errorf("failed to load package: %w", err)
		}
		if !pkg.IsValid() {
			return nil, businessErr("package is not available for booking")
		}

		reservation.PackageID = req.PackageID
		total = total.Add(pkg.PackagePrice)
	}

	if len(req.FoodItems) > 0 {
		resolved := map[string]int{}
		for idStr, qty := range req.FoodItems {
			if qty <= 0 {
				continue
			}
			foodID, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				continue
			}
			var food models.Food
			if err := s.DB.First(&food, uint(foodID)).Error; err != nil {
				// unknown food ids are dropped, the rest of the order stands
				continue
			}
			resolved[idStr] = qty
			total = total.Add(food.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		if len(resolved) > 0 {
			reservation.SetFoodQuantities(resolved)
		}
	}

	reservation.ServiceType = deriveServiceType(req)
	if reservation.ServiceType == "" {
		return nil, validationErr("at least one service must be selected")
	}

	reservation.TotalAmount = total.Round(2)

	// create with retries on reservation code collision
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		code, codeErr := utils.NewReservationCode()
		if codeErr != nil {
			return nil, fmt.Errorf("failed to generate reservation code: %w", codeErr)
		}
		reservation.ReservationCode = code
		createErr = s.DB.Create(&reservation).Error
		if createErr == nil {
			break
		}
		if !isDuplicateKey(createErr) {
			return nil, fmt.Errorf("failed to create reservation: %w", createErr)
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create reservation after %d attempts: %w", maxRetries, createErr)
	}

	return &reservation, nil
}

func deriveServiceType(req BookingRequest) string {
	switch {
	case req.RoomID != nil:
		return models.ServiceRoom
	case req.TourID != nil:
		return models.ServiceTour
	case req.PackageID != nil:
		return models.ServicePackage
	case len(req.FoodItems) > 0:
		return models.ServiceFood
	}
	return ""
}

// nightsBetween counts whole days between the two dates, never less than one.
func nightsBetween(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (s *ReservationService) preloaded() *gorm.DB {
	return s.DB.
		Preload("Guest").
		Preload("Room").
		Preload("Tour").
		Preload("Package").
		Preload("ApprovedBy").
		Preload("Payments")
}

func (s *ReservationService) Get(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.preloaded().First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) GetByCode(code string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.preloaded().Where("reservation_code = ?", code).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) ListByGuest(guestID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.preloaded().
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// ReservationFilters narrows the admin listing; zero values are ignored.
// Filter "paid_pending" selects fully paid reservations still awaiting
// approval.
type ReservationFilters struct {
	Status      string
	ServiceType string
	PaidPending bool
}

func (s *ReservationService) List(filters ReservationFilters) ([]models.Reservation, error) {
	q := s.preloaded()
	if filters.PaidPending {
		q = q.Where("status = ? AND payment_status = ?", models.StatusPending, models.PaymentPaid)
	} else if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.ServiceType != "" {
		q = q.Where("service_type = ?", filters.ServiceType)
	}

	var reservations []models.Reservation
	err := q.Order("created_at DESC").Find(&reservations).Error
	return reservations, err
}

// FoodDetails resolves the stored food quantities into priced line items for
// display. Ids that no longer resolve are skipped.
type FoodLine struct {
	Food     models.Food     `json:"food"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (s *ReservationService) FoodDetails(reservation *models.Reservation) ([]FoodLine, error) {
	quantities := reservation.FoodQuantities()
	lines := make([]FoodLine, 0, len(quantities))
	for idStr, qty := range quantities {
		foodID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		var food models.Food
		if err := s.DB.First(&food, uint(foodID)).Error; err != nil {
			continue
		}
		lines = append(lines, FoodLine{
			Food:     food,
			Quantity: qty,
			Subtotal: food.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return lines, nil
}

// transition loads, mutates and saves a reservation inside one transaction so
// the state guards in mutate hold against concurrent updates.
func (s *ReservationService) transition(id uint, mutate func(*models.Reservation) error) (*models.Reservation, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if err := mutate(&reservation); err != nil {
			return err
		}
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Approve confirms a pending reservation. Only PENDING reservations can be
// approved.
func (s *ReservationService) Approve(id uint, approver *models.User, notes string) (*models.Reservation, error) {
	return s.transition(id, func(reservation *models.Reservation) error {
		if reservation.Status != models.StatusPending {
			return businessErr("only pending reservations can be approved")
		}

		now := time.Now()
		reservation.Status = models.StatusConfirmed
		reservation.ApprovedAt = &now
		if approver != nil && approver.ID != 0 {
			approverID := approver.ID
			reservation.ApprovedByID = &approverID
		}
		if strings.TrimSpace(notes) != "" {
			reservation.AdminNotes = strings.TrimSpace(notes)
		}
		return nil
	})
}

// Reject cancels a reservation that has not reached a terminal state.
func (s *ReservationService) Reject(id uint, reason string) (*models.Reservation, error) {
	return s.transition(id, func(reservation *models.Reservation) error {
		if reservation.Status == models.StatusCancelled || reservation.Status == models.StatusCompleted {
			return businessErr("reservation is already closed")
		}

		reservation.Status = models.StatusCancelled
		if strings.TrimSpace(reason) != "" {
			reservation.AdminNotes = strings.TrimSpace(reason)
		}
		return nil
	})
}

// Complete marks a reservation as fulfilled.
func (s *ReservationService) Complete(id uint) (*models.Reservation, error) {
	return s.transition(id, func(reservation *models.Reservation) error {
		reservation.Status = models.StatusCompleted
		return nil
	})
}

// Cancel lets a guest withdraw their own reservation while it is still
// pending.
func (s *ReservationService) Cancel(id uint, guest *models.User) (*models.Reservation, error) {
	return s.transition(id, func(reservation *models.Reservation) error {
		if guest == nil || reservation.GuestID != guest.ID {
			return businessErr("reservation does not belong to this guest")
		}
		if reservation.Status != models.StatusPending {
			return businessErr("only pending reservations can be cancelled")
		}

		reservation.Status = models.StatusCancelled
		return nil
	})
}

// MarkPaid is the manual override for payments settled outside the system
// (cash on arrival and the like).
func (s *ReservationService) MarkPaid(id uint) (*models.Reservation, error) {
	return s.transition(id, func(reservation *models.Reservation) error {
		reservation.PaymentStatus = models.PaymentPaid
		return nil
	})
}

// ReservationStats aggregates the admin landing numbers.
type ReservationStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

func (s *ReservationService) Stats() (*ReservationStats, error) {
	stats := &ReservationStats{}
	counts := map[string]*int64{
		models.StatusPending:   &stats.Pending,
		models.StatusConfirmed: &stats.Confirmed,
		models.StatusCompleted: &stats.Completed,
		models.StatusCancelled: &stats.Cancelled,
	}
	if err := s.DB.Model(&models.Reservation{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	for status, dst := range counts {
		if err := s.DB.Model(&models.Reservation{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
