package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusApproved  = "APPROVED"
	PaymentStatusRejected  = "REJECTED"
	PaymentStatusRefunded  = "REFUNDED"
	PaymentStatusCancelled = "CANCELLED"
)

const (
	MethodCash         = "CASH"
	MethodCreditCard   = "CREDIT_CARD"
	MethodDebitCard    = "DEBIT_CARD"
	MethodGCash        = "GCASH"
	MethodMaya         = "MAYA"
	MethodPayPal       = "PAYPAL"
	MethodBankTransfer = "BANK_TRANSFER"
)

// Payment is one payment attempt against a reservation. Guests may pay in
// installments or retry, so a reservation owns many payments; only APPROVED
// ones count toward its paid total. The transaction reference is immutable
// once assigned.
type Payment struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	TransactionReference string `gorm:"column:transaction_reference;uniqueIndex;size:50" json:"transaction_reference"`

	ReservationID uint         `gorm:"index;column:reservation_id" json:"reservation_id"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`

	PaidByID uint  `gorm:"column:paid_by_id" json:"paid_by_id"`
	PaidBy   *User `gorm:"foreignKey:PaidByID" json:"paid_by,omitempty"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentMethod string          `gorm:"column:payment_method;size:30" json:"payment_method"`
	Status        string          `gorm:"size:20;index" json:"status"`

	ProofOfPayment  string `gorm:"column:proof_of_payment;size:255" json:"proof_of_payment,omitempty"`
	ReferenceNumber string `gorm:"column:reference_number;size:100" json:"reference_number,omitempty"`
	GuestNotes      string `gorm:"column:guest_notes;type:text" json:"guest_notes,omitempty"`
	AdminNotes      string `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`

	ApprovedByID    *uint      `gorm:"column:approved_by_id" json:"approved_by_id,omitempty"`
	ApprovedBy      *User      `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) IsPending() bool  { return p.Status == PaymentStatusPending }
func (p *Payment) IsApproved() bool { return p.Status == PaymentStatusApproved }
