package model

import "time"

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodPayPal       PaymentMethod = "paypal"
	MethodStripe       PaymentMethod = "stripe"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodInApp        PaymentMethod = "inapp"
)

var PaymentMethods = []any{MethodCard, MethodPayPal, MethodStripe, MethodBankTransfer, MethodInApp}

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
	StatusRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []any{StatusPending, StatusCompleted, StatusFailed, StatusRefunded}

// DefaultCurrency is applied to payments recorded without a currency.
const DefaultCurrency = "USD"

// Payment is a bookkeeping record; nothing here talks to a gateway.
type Payment struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Description string          `json:"description"`
	User        *AccountSummary `json:"user,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type PaymentFilter struct {
	UserID string
	Status PaymentStatus
}
