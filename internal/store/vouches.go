package store

import (
	"context"
	"fmt"
	"log"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
)

// Vouches is the accessor for customer reviews. The table keys on the human
// order number, which is what makes a vouch unique per order: a concurrent
// double-submit collapses onto the same partition instead of creating two rows.
type Vouches struct {
	session *gocql.Session
}

func NewVouches(session *gocql.Session) *Vouches {
	return &Vouches{session: session}
}

const vouchColumns = `order_id, id, name, email, message, rating, profile_picture_url,
	verification_method, is_verified_purchase, status, product_name, purchase_date,
	purchase_amount, created_at`

// GetByOrderID returns the vouch linked to an order number, or NotFound.
func (s *Vouches) GetByOrderID(ctx context.Context, orderNumber string) (*models.Vouch, error) {
	var v models.Vouch
	err := s.session.Query(`
		SELECT `+vouchColumns+` FROM vouches WHERE order_id = ?
	`, orderNumber).WithContext(ctx).Scan(
		&v.OrderID, &v.ID, &v.Name, &v.Email, &v.Message, &v.Rating, &v.ProfilePictureURL,
		&v.VerificationMethod, &v.IsVerifiedPurchase, &v.Status, &v.ProductName, &v.PurchaseDate,
		&v.PurchaseAmount, &v.CreatedAt,
	)
	if err == gocql.ErrNotFound {
		return nil, fmt.Errorf("vouch for order %s: %w", orderNumber, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts the vouch and its moderation index row.
func (s *Vouches) Create(ctx context.Context, v *models.Vouch) error {
	err := s.session.Query(`
		INSERT INTO vouches (`+vouchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.OrderID, v.ID, v.Name, v.Email, v.Message, v.Rating, v.ProfilePictureURL,
		v.VerificationMethod, v.IsVerifiedPurchase, v.Status, v.ProductName, v.PurchaseDate,
		v.PurchaseAmount, v.CreatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	return s.session.Query(`
		INSERT INTO vouches_by_status (status, created_at, order_id) VALUES (?, ?, ?)
	`, v.Status, v.CreatedAt, v.OrderID).WithContext(ctx).Exec()
}

// ListByStatus returns vouches in a moderation status, newest first.
func (s *Vouches) ListByStatus(ctx context.Context, status string) ([]models.Vouch, error) {
	iter := s.session.Query(`
		SELECT order_id FROM vouches_by_status WHERE status = ? ORDER BY created_at DESC
	`, status).WithContext(ctx).Iter()

	var orderIDs []string
	var orderID string
	for iter.Scan(&orderID) {
		orderIDs = append(orderIDs, orderID)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	vouches := make([]models.Vouch, 0, len(orderIDs))
	for _, id := range orderIDs {
		v, err := s.GetByOrderID(ctx, id)
		if err != nil {
			log.Printf("⚠️ Dangling vouch index entry for order %s: %v", id, err)
			continue
		}
		vouches = append(vouches, *v)
	}
	return vouches, nil
}

// UpdateStatus moves a vouch to a new moderation status and keeps the
// vouches_by_status index in sync.
func (s *Vouches) UpdateStatus(ctx context.Context, orderNumber, newStatus string) error {
	v, err := s.GetByOrderID(ctx, orderNumber)
	if err != nil {
		return err
	}

	if err := s.session.Query(`
		UPDATE vouches SET status = ? WHERE order_id = ?
	`, newStatus, orderNumber).WithContext(ctx).Exec(); err != nil {
		return err
	}

	if err := s.session.Query(`
		DELETE FROM vouches_by_status WHERE status = ? AND created_at = ? AND order_id = ?
	`, v.Status, v.CreatedAt, v.OrderID).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.session.Query(`
		INSERT INTO vouches_by_status (status, created_at, order_id) VALUES (?, ?, ?)
	`, newStatus, v.CreatedAt, v.OrderID).WithContext(ctx).Exec()
}

// Delete removes a vouch and its index row.
func (s *Vouches) Delete(ctx context.Context, orderNumber string) error {
	v, err := s.GetByOrderID(ctx, orderNumber)
	if err != nil {
		return err
	}

	if err := s.session.Query(`
		DELETE FROM vouches WHERE order_id = ?
	`, orderNumber).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.session.Query(`
		DELETE FROM vouches_by_status WHERE status = ? AND created_at = ? AND order_id = ?
	`, v.Status, v.CreatedAt, v.OrderID).WithContext(ctx).Exec()
}
