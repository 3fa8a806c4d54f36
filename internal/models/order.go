package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order statuses. Transitions are not a strict total order: delayed and
// cancelled can occur from queued/in_progress. Delivered is terminal for the
// notification flow — later edits never re-trigger the delivery email.
const (
	StatusPending             = "pending"
	StatusPaymentVerification = "Payment Verification"
	StatusQueued              = "queued"
	StatusInProgress          = "in_progress"
	StatusDelivered           = "delivered"
	StatusDelayed             = "delayed"
	StatusCancelled           = "cancelled"
)

// KnownStatuses is the full status set, used by the reporters to zero-fill
// the counts map and by ChangeStatus to reject unknown values.
var KnownStatuses = []string{
	StatusPending,
	StatusPaymentVerification,
	StatusQueued,
	StatusInProgress,
	StatusDelivered,
	StatusDelayed,
	StatusCancelled,
}

func IsKnownStatus(status string) bool {
	for _, s := range KnownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ProgressPercent maps a status to the progress bar percentage shown on the
// customer dashboard. Display-only, carries no state machine meaning.
func ProgressPercent(status string) int {
	switch status {
	case StatusPending, StatusPaymentVerification:
		return 10
	case StatusQueued:
		return 33
	case StatusDelayed:
		return 50
	case StatusInProgress:
		return 66
	case StatusDelivered, StatusCancelled:
		return 100
	default:
		return 0
	}
}

type OrderItem struct {
	Product  string `json:"product"`
	Amount   string `json:"amount,omitempty"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// EmailLogEntry records one notification attempt on an order. Entries are
// append-only: never removed or mutated once written.
type EmailLogEntry struct {
	SentAt    time.Time `json:"sentAt"`
	EmailType string    `json:"emailType"` // "delivery" or "resend"
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

type Order struct {
	OrderKey   gocql.UUID `json:"orderKey"` // storage primary key
	OrderID    string     `json:"orderID"`  // human-facing number, e.g. TS-1001
	BuyerEmail string     `json:"buyerEmail"`

	Product      string      `json:"product"`
	Price        string      `json:"price"` // decimal string, no conversion
	Currency     string      `json:"currency"`
	Items        []OrderItem `json:"items,omitempty"`
	Platform     string      `json:"platform,omitempty"`
	DeliveryType string      `json:"deliveryType,omitempty"` // Standard | Express

	Status                string     `json:"status"`
	IsExpress             bool       `json:"isExpress"`
	QueuePosition         int        `json:"queuePosition,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`

	// Set together, exactly once, on the transition to delivered.
	DeliveryValue string     `json:"deliveryValue,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`

	AdminNotes string          `json:"adminNotes,omitempty"`
	EmailLog   []EmailLogEntry `json:"emailLog,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
