package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
)

// Orders is the accessor for the orders keyspace. The human-facing order
// number (order_id) is not the primary key; it resolves to the storage key
// through the orders_by_number index table. orders_by_email and
// orders_by_status are key-only index tables kept in sync on writes.
type Orders struct {
	session *gocql.Session
}

func NewOrders(session *gocql.Session) *Orders {
	return &Orders{session: session}
}

const orderColumns = `order_key, order_id, buyer_email, product, price, currency, items,
	platform, delivery_type, status, is_express, queue_position, estimated_delivery_time,
	delivery_value, delivered_at, admin_notes, email_log, created_at, updated_at`

// Create inserts the order and its index rows.
func (s *Orders) Create(ctx context.Context, o *models.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	emailLog, err := encodeEmailLog(o.EmailLog)
	if err != nil {
		return err
	}

	err = s.session.Query(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.OrderKey, o.OrderID, o.BuyerEmail, o.Product, o.Price, o.Currency, string(itemsJSON),
		o.Platform, o.DeliveryType, o.Status, o.IsExpress, o.QueuePosition, tsOrNil(o.EstimatedDeliveryTime),
		o.DeliveryValue, tsOrNil(o.DeliveredAt), o.AdminNotes, emailLog, o.CreatedAt, o.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	if err := s.session.Query(`
		INSERT INTO orders_by_number (order_id, order_key) VALUES (?, ?)
	`, o.OrderID, o.OrderKey).WithContext(ctx).Exec(); err != nil {
		return err
	}
	if err := s.session.Query(`
		INSERT INTO orders_by_email (buyer_email, created_at, order_key) VALUES (?, ?, ?)
	`, strings.ToLower(o.BuyerEmail), o.CreatedAt, o.OrderKey).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.session.Query(`
		INSERT INTO orders_by_status (status, order_key) VALUES (?, ?)
	`, o.Status, o.OrderKey).WithContext(ctx).Exec()
}

// GetByKey fetches an order by its storage key.
func (s *Orders) GetByKey(ctx context.Context, key gocql.UUID) (*models.Order, error) {
	q := s.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_key = ?`, key).WithContext(ctx)
	o, err := scanOrder(q)
	if err == gocql.ErrNotFound {
		return nil, fmt.Errorf("order %s: %w", key, apperr.ErrNotFound)
	}
	return o, err
}

// GetByNumber resolves a human-facing order number to its storage key and
// fetches the order. Zero matches is NotFound; more than one match is a data
// integrity fault — logged, first match used.
func (s *Orders) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	iter := s.session.Query(`
		SELECT order_key FROM orders_by_number WHERE order_id = ?
	`, number).WithContext(ctx).Iter()

	var keys []gocql.UUID
	var key gocql.UUID
	for iter.Scan(&key) {
		keys = append(keys, key)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("order %s: %w", number, apperr.ErrNotFound)
	}
	if len(keys) > 1 {
		log.Printf("⚠️ %d orders share number %s — using the first, the number should be unique", len(keys), number)
	}

	return s.GetByKey(ctx, keys[0])
}

// ListByEmail returns the customer's orders, newest first. Guest checkout
// means email is the sole correlation key, matched case-insensitively.
func (s *Orders) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_key FROM orders_by_email WHERE buyer_email = ? ORDER BY created_at DESC
	`, strings.ToLower(email)).WithContext(ctx).Iter()
	return s.collect(ctx, iter)
}

// ListByStatus returns every order currently in the given status.
func (s *Orders) ListByStatus(ctx context.Context, status string) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_key FROM orders_by_status WHERE status = ?
	`, status).WithContext(ctx).Iter()
	return s.collect(ctx, iter)
}

// CountByStatus counts orders in a status without materializing them.
func (s *Orders) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.session.Query(`
		SELECT COUNT(*) FROM orders_by_status WHERE status = ?
	`, status).WithContext(ctx).Scan(&count)
	return count, err
}

// ListAll scans the whole orders table. Used by the revenue reporter.
func (s *Orders) ListAll(ctx context.Context) ([]models.Order, error) {
	iter := s.session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()

	var orders []models.Order
	for {
		o, ok := scanOrderFromIter(iter)
		if !ok {
			break
		}
		orders = append(orders, *o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

// updateAssignments builds the sorted SET clause for a partial order update,
// stamping updated_at alongside. The caller's map is left untouched.
func updateAssignments(fields map[string]interface{}, now time.Time) (string, []interface{}) {
	updates := make(map[string]interface{}, len(fields)+1)
	for name, value := range fields {
		updates[name] = value
	}
	updates["updated_at"] = now

	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	values := make([]interface{}, 0, len(names))
	for _, name := range names {
		assignments = append(assignments, name+" = ?")
		values = append(values, updates[name])
	}
	return strings.Join(assignments, ", "), values
}

// UpdateFields applies a partial update to the order. updated_at is stamped
// as part of the same write. A status change also rewrites the
// orders_by_status index rows.
func (s *Orders) UpdateFields(ctx context.Context, o *models.Order, fields map[string]interface{}) error {
	now := time.Now().UTC()
	setClause, values := updateAssignments(fields, now)
	values = append(values, o.OrderKey)

	err := s.session.Query(
		`UPDATE orders SET `+setClause+` WHERE order_key = ?`,
		values...,
	).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	if newStatus, ok := fields["status"].(string); ok && newStatus != o.Status {
		if err := s.session.Query(`
			DELETE FROM orders_by_status WHERE status = ? AND order_key = ?
		`, o.Status, o.OrderKey).WithContext(ctx).Exec(); err != nil {
			return err
		}
		if err := s.session.Query(`
			INSERT INTO orders_by_status (status, order_key) VALUES (?, ?)
		`, newStatus, o.OrderKey).WithContext(ctx).Exec(); err != nil {
			return err
		}
	}

	o.UpdatedAt = now
	return nil
}

// AppendEmailLog appends one notification attempt to the order's email log.
// The log is append-only: entries are never rewritten or dropped.
func (s *Orders) AppendEmailLog(ctx context.Context, o *models.Order, entry models.EmailLogEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.session.Query(`
		UPDATE orders SET email_log = email_log + ?, updated_at = ? WHERE order_key = ?
	`, []string{string(raw)}, time.Now().UTC(), o.OrderKey).WithContext(ctx).Exec()
}

// collect resolves a stream of order keys into full orders.
func (s *Orders) collect(ctx context.Context, iter *gocql.Iter) ([]models.Order, error) {
	var keys []gocql.UUID
	var key gocql.UUID
	for iter.Scan(&key) {
		keys = append(keys, key)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(keys))
	for _, k := range keys {
		o, err := s.GetByKey(ctx, k)
		if err != nil {
			// Index row without a base row: log and skip rather than fail the listing.
			log.Printf("⚠️ Dangling order index entry %s: %v", k, err)
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func scanOrder(q *gocql.Query) (*models.Order, error) {
	iter := q.Iter()
	o, ok := scanOrderFromIter(iter)
	err := iter.Close()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, gocql.ErrNotFound
	}
	return o, nil
}

func scanOrderFromIter(iter *gocql.Iter) (*models.Order, bool) {
	var o models.Order
	var itemsJSON string
	var emailLog []string
	var estimated, delivered time.Time

	ok := iter.Scan(
		&o.OrderKey, &o.OrderID, &o.BuyerEmail, &o.Product, &o.Price, &o.Currency, &itemsJSON,
		&o.Platform, &o.DeliveryType, &o.Status, &o.IsExpress, &o.QueuePosition, &estimated,
		&o.DeliveryValue, &delivered, &o.AdminNotes, &emailLog, &o.CreatedAt, &o.UpdatedAt,
	)
	if !ok {
		return nil, false
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Malformed items payload on order %s: %v", o.OrderID, err)
		}
	}
	for _, raw := range emailLog {
		var entry models.EmailLogEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Printf("⚠️ Malformed email log entry on order %s: %v", o.OrderID, err)
			continue
		}
		o.EmailLog = append(o.EmailLog, entry)
	}
	if !estimated.IsZero() {
		o.EstimatedDeliveryTime = &estimated
	}
	if !delivered.IsZero() {
		o.DeliveredAt = &delivered
	}

	return &o, true
}

func encodeEmailLog(entries []models.EmailLogEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	encoded := make([]string, 0, len(entries))
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, string(raw))
	}
	return encoded, nil
}

func tsOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
