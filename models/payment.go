package models

import "time"

const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

const (
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
)

type Payment struct {
	Base

	HotelID       string     `json:"hotel_id" gorm:"type:char(36);index;not null"`
	BookingID     string     `json:"booking_id" gorm:"type:char(36);index;not null"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(30)"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20);index"`
	TransactionID string     `json:"transaction_id" gorm:"type:varchar(100)"`
	PaidAt        *time.Time `json:"paid_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}
