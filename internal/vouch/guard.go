package vouch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
)

// OrderStore is the read-only order surface the guard needs.
type OrderStore interface {
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
}

// VouchStore is the vouch surface the guard needs.
type VouchStore interface {
	GetByOrderID(ctx context.Context, orderNumber string) (*models.Vouch, error)
	Create(ctx context.Context, v *models.Vouch) error
}

// Rejection reasons, surfaced verbatim as UI feedback.
const (
	ReasonOrderNotFound    = "Order not found"
	ReasonEmailMismatch    = "Email does not match order."
	ReasonNotDelivered     = "Order not yet delivered."
	ReasonAlreadySubmitted = "Review already submitted."
)

type Eligibility struct {
	CanSubmit bool   `json:"canSubmit"`
	Reason    string `json:"reason,omitempty"`
}

// Guard validates vouch submissions: the order must exist, belong to the
// claimed email (case-insensitive), be delivered, and not be vouched already.
// Submit re-runs every check — the client's earlier CanSubmit call is advice,
// not authority. The no-existing-vouch check is check-then-act; the vouches
// table keying on order number bounds a concurrent double-submit to a single
// row.
type Guard struct {
	orders  OrderStore
	vouches VouchStore
}

func NewGuard(orders OrderStore, vouches VouchStore) *Guard {
	return &Guard{orders: orders, vouches: vouches}
}

// CanSubmit reports whether a vouch may be submitted for the order, with the
// first failing check's reason. Checks run in a fixed order.
func (g *Guard) CanSubmit(ctx context.Context, orderNumber, email string) (Eligibility, error) {
	_, elig, err := g.check(ctx, orderNumber, email)
	return elig, err
}

// SubmitInput carries a vouch submission. ProfilePictureURL is optional and
// already uploaded by the caller.
type SubmitInput struct {
	OrderNumber       string
	Email             string
	Name              string
	Message           string
	Rating            int
	ProfilePictureURL string
}

// Submit validates the input, re-runs the eligibility checks and persists the
// vouch with a purchase snapshot copied from the order.
func (g *Guard) Submit(ctx context.Context, in SubmitInput) (*models.Vouch, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("message is required: %w", apperr.ErrInvalidArgument)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", apperr.ErrInvalidArgument)
	}

	order, elig, err := g.check(ctx, in.OrderNumber, in.Email)
	if err != nil {
		return nil, err
	}
	if !elig.CanSubmit {
		if elig.Reason == ReasonOrderNotFound {
			return nil, fmt.Errorf("invalid order number: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", elig.Reason, apperr.ErrFailedPrecondition)
	}

	v := &models.Vouch{
		ID:                 gocql.TimeUUID(),
		OrderID:            order.OrderID,
		Name:               in.Name,
		Email:              in.Email,
		Message:            in.Message,
		Rating:             in.Rating,
		ProfilePictureURL:  in.ProfilePictureURL,
		VerificationMethod: "purchase",
		IsVerifiedPurchase: true,
		Status:             models.VouchPending,

		// Snapshot of the purchase at submission time; later order edits do
		// not retroactively change what the vouch displays.
		ProductName:    order.Product,
		PurchaseDate:   order.CreatedAt,
		PurchaseAmount: order.Price,

		CreatedAt: time.Now().UTC(),
	}

	if err := g.vouches.Create(ctx, v); err != nil {
		return nil, err
	}

	log.Printf("⭐ Vouch created for order %s (rating: %d/5)", v.OrderID, v.Rating)
	return v, nil
}

// check evaluates the eligibility rules in order; the first failure wins.
func (g *Guard) check(ctx context.Context, orderNumber, email string) (*models.Order, Eligibility, error) {
	order, err := g.orders.GetByNumber(ctx, orderNumber)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, Eligibility{CanSubmit: false, Reason: ReasonOrderNotFound}, nil
	}
	if err != nil {
		return nil, Eligibility{}, err
	}

	if !strings.EqualFold(order.BuyerEmail, email) {
		return nil, Eligibility{CanSubmit: false, Reason: ReasonEmailMismatch}, nil
	}

	if order.Status != models.StatusDelivered {
		return nil, Eligibility{CanSubmit: false, Reason: ReasonNotDelivered}, nil
	}

	_, err = g.vouches.GetByOrderID(ctx, orderNumber)
	if err == nil {
		return nil, Eligibility{CanSubmit: false, Reason: ReasonAlreadySubmitted}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, Eligibility{}, err
	}

	return order, Eligibility{CanSubmit: true}, nil
}
