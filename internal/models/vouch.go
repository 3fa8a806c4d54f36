package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Vouch moderation statuses.
const (
	VouchPending  = "pending"
	VouchApproved = "approved"
	VouchRejected = "rejected"
)

// Vouch is a customer review tied to a delivered order. One vouch per order
// number, enforced by the eligibility guard before creation.
type Vouch struct {
	ID      gocql.UUID `json:"id"`
	OrderID string     `json:"orderNumber"`

	Name              string `json:"name"`
	Email             string `json:"email"`
	Message           string `json:"message"`
	Rating            int    `json:"rating"` // 1-5
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`

	VerificationMethod string `json:"verificationMethod"` // "purchase"
	IsVerifiedPurchase bool   `json:"isVerifiedPurchase"`
	Status             string `json:"status"` // pending | approved | rejected

	// Purchase context copied from the order at submission time. A snapshot:
	// later edits to the order do not change what the vouch displays.
	ProductName    string    `json:"productName"`
	PurchaseDate   time.Time `json:"purchaseDate"`
	PurchaseAmount string    `json:"purchaseAmount"`

	CreatedAt time.Time `json:"createdAt"`
}
