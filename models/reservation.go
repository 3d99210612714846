package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

const (
	PaymentUnpaid  = "UNPAID"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
)

const (
	ServiceRoom    = "room"
	ServiceTour    = "tour"
	ServicePackage = "package"
	ServiceFood    = "food"
)

// Reservation is one guest booking, optionally combining a room stay, a tour,
// a package and/or food items. TotalAmount is computed once at booking time
// from then-current prices and is not recomputed when prices change later.
type Reservation struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ReservationCode string `gorm:"column:reservation_code;uniqueIndex;size:50" json:"reservation_code"`
	ServiceType     string `gorm:"column:service_type;size:20;index" json:"service_type"`

	GuestID uint  `gorm:"index;column:guest_id" json:"guest_id"`
	Guest   *User `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	RoomID       *uint      `gorm:"column:room_id" json:"room_id,omitempty"`
	Room         *Room      `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`

	TourID           *uint      `gorm:"column:tour_id" json:"tour_id,omitempty"`
	Tour             *Tour      `gorm:"foreignKey:TourID" json:"tour,omitempty"`
	TourParticipants *int       `gorm:"column:tour_participants" json:"tour_participants,omitempty"`
	TourDate         *time.Time `gorm:"column:tour_date" json:"tour_date,omitempty"`

	PackageID *uint    `gorm:"column:package_id" json:"package_id,omitempty"`
	Package   *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`

	// FoodItems maps food id (as string key) to ordered quantity.
	FoodItems datatypes.JSON `gorm:"column:food_items" json:"food_items,omitempty"`

	NumberOfGuests  int    `gorm:"column:number_of_guests" json:"number_of_guests"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`
	ContactPhone    string `gorm:"column:contact_phone;size:100" json:"contact_phone,omitempty"`

	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`
	Status        string          `gorm:"size:20;index" json:"status"`
	PaymentStatus string          `gorm:"column:payment_status;size:20;index" json:"payment_status"`

	ApprovedByID *uint      `gorm:"column:approved_by_id" json:"approved_by_id,omitempty"`
	ApprovedBy   *User      `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	AdminNotes   string     `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Payments []Payment `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`
}

func (r *Reservation) IsPending() bool   { return r.Status == StatusPending }
func (r *Reservation) IsConfirmed() bool { return r.Status == StatusConfirmed }
func (r *Reservation) IsPaid() bool      { return r.PaymentStatus == PaymentPaid }

// TotalPaid sums APPROVED payments only. Requires Payments to be loaded.
func (r *Reservation) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Payments {
		if p.Status == PaymentStatusApproved {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// RemainingBalance may be negative if the reservation is overpaid.
func (r *Reservation) RemainingBalance() decimal.Decimal {
	return r.TotalAmount.Sub(r.TotalPaid())
}

// RecalcPaymentStatus reclassifies the payment status from the approved sum.
// The approvedSum == totalAmount boundary is PAID; comparisons are exact
// decimal comparisons, no epsilon.
func (r *Reservation) RecalcPaymentStatus() {
	paid := r.TotalPaid()
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		r.PaymentStatus = PaymentUnpaid
	case paid.GreaterThanOrEqual(r.TotalAmount):
		r.PaymentStatus = PaymentPaid
	default:
		r.PaymentStatus = PaymentPartial
	}
}

// Nights is the whole-day span of the room stay, 0 when no room is booked.
func (r *Reservation) Nights() int {
	if r.CheckInDate == nil || r.CheckOutDate == nil {
		return 0
	}
	days := int(r.CheckOutDate.Sub(*r.CheckInDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FoodQuantities decodes the food selection map, empty when none.
func (r *Reservation) FoodQuantities() map[string]int {
	items := map[string]int{}
	if len(r.FoodItems) > 0 {
		_ = json.Unmarshal(r.FoodItems, &items)
	}
	return items
}

func (r *Reservation) SetFoodQuantities(items map[string]int) {
	b, _ := json.Marshal(items)
	r.FoodItems = datatypes.JSON(b)
}

// ReservationType describes which service kinds the booking combines.
func (r *Reservation) ReservationType() string {
	var types []string
	if r.RoomID != nil {
		types = append(types, "Room")
	}
	if r.TourID != nil {
		types = append(types, "Tour")
	}
	if r.PackageID != nil {
		types = append(types, "Package")
	}
	if len(r.FoodQuantities()) > 0 {
		types = append(types, "Food")
	}
	if len(types) == 0 {
		return "N/A"
	}
	return strings.Join(types, " + ")
}
