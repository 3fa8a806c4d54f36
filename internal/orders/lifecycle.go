package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/mailer"
	"turkish_shop_backend/internal/models"
)

// OrderStore is the slice of the order accessor the lifecycle manager needs.
type OrderStore interface {
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	UpdateFields(ctx context.Context, o *models.Order, fields map[string]interface{}) error
	AppendEmailLog(ctx context.Context, o *models.Order, entry models.EmailLogEntry) error
}

// Sender is the notification dispatcher surface. It reports failure through
// the Result, never through an error.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) mailer.Result
}

// Publisher pushes order-change events to live dashboard watchers. Optional.
type Publisher interface {
	PublishOrderUpdate(ctx context.Context, orderKey string)
}

// Manager owns the order status transitions and their notification side
// effects. The ordering contract: durable write first, best-effort email
// second, log the attempt third. An email failure is recorded on the order
// and reported in the return value but never fails the mutation itself.
type Manager struct {
	store OrderStore
	mail  Sender
	pub   Publisher
}

func NewManager(store OrderStore, mail Sender, pub Publisher) *Manager {
	return &Manager{store: store, mail: mail, pub: pub}
}

// RecordDelivery marks the order delivered with the given delivery value,
// then sends the delivery email and appends the attempt to the email log.
// The order is durably delivered even if the email fails.
func (m *Manager) RecordDelivery(ctx context.Context, orderNumber, deliveryValue string) (*models.Order, mailer.Result, error) {
	if strings.TrimSpace(deliveryValue) == "" {
		return nil, mailer.Result{}, fmt.Errorf("delivery value is required: %w", apperr.ErrInvalidArgument)
	}

	o, err := m.store.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, mailer.Result{}, err
	}

	res, err := m.deliver(ctx, o, deliveryValue)
	if err != nil {
		return nil, mailer.Result{}, err
	}
	return o, res, nil
}

// ChangeStatus moves the order to a new status and optionally persists admin
// notes. Transitioning to delivered routes through the delivery path and
// requires a delivery value (supplied here or already on the order); that
// precondition is checked before anything is written, so a rejected call
// leaves the order untouched. A repeated delivered status never re-triggers
// the delivery email. The mail result is nil when no send was attempted.
func (m *Manager) ChangeStatus(ctx context.Context, orderNumber, newStatus, adminNotes, deliveryValue string) (*models.Order, *mailer.Result, error) {
	if !models.IsKnownStatus(newStatus) {
		return nil, nil, fmt.Errorf("unknown status %q: %w", newStatus, apperr.ErrInvalidArgument)
	}

	o, err := m.store.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, nil, err
	}

	if newStatus == models.StatusDelivered && o.Status != models.StatusDelivered {
		value := deliveryValue
		if value == "" {
			value = o.DeliveryValue
		}
		if strings.TrimSpace(value) == "" {
			return nil, nil, fmt.Errorf("cannot mark delivered without a delivery value: %w", apperr.ErrFailedPrecondition)
		}
		if adminNotes != "" {
			if err := m.store.UpdateFields(ctx, o, map[string]interface{}{"admin_notes": adminNotes}); err != nil {
				return nil, nil, err
			}
			o.AdminNotes = adminNotes
		}
		res, err := m.deliver(ctx, o, value)
		if err != nil {
			return nil, nil, err
		}
		return o, &res, nil
	}

	if adminNotes != "" {
		if err := m.store.UpdateFields(ctx, o, map[string]interface{}{"admin_notes": adminNotes}); err != nil {
			return nil, nil, err
		}
		o.AdminNotes = adminNotes
	}

	if newStatus != o.Status {
		oldStatus := o.Status
		if err := m.store.UpdateFields(ctx, o, map[string]interface{}{"status": newStatus}); err != nil {
			return nil, nil, err
		}
		o.Status = newStatus
		log.Printf("🔄 Order %s: %s → %s", o.OrderID, oldStatus, newStatus)
		m.publish(ctx, o)
	}

	return o, nil, nil
}

// ResendNotification re-renders and re-sends the delivery email. It requires
// an existing delivery value and never mutates the delivery fields — it only
// appends a "resend" entry to the email log.
func (m *Manager) ResendNotification(ctx context.Context, orderNumber string) (*models.Order, mailer.Result, error) {
	o, err := m.store.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, mailer.Result{}, err
	}

	if strings.TrimSpace(o.DeliveryValue) == "" {
		return nil, mailer.Result{}, fmt.Errorf("order %s has no delivery value to resend: %w", orderNumber, apperr.ErrFailedPrecondition)
	}

	res := m.notify(ctx, o, "resend")
	return o, res, nil
}

// UpdateDetails applies admin-editable fields (express flag, queue position,
// estimated delivery, notes) without touching the lifecycle.
func (m *Manager) UpdateDetails(ctx context.Context, orderNumber string, fields map[string]interface{}) (*models.Order, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperr.ErrInvalidArgument)
	}

	o, err := m.store.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := m.store.UpdateFields(ctx, o, fields); err != nil {
		return nil, err
	}
	m.publish(ctx, o)

	return o, nil
}

// deliver performs the durable delivery write, then the best-effort email.
func (m *Manager) deliver(ctx context.Context, o *models.Order, deliveryValue string) (mailer.Result, error) {
	now := time.Now().UTC()
	fields := map[string]interface{}{
		"delivery_value": deliveryValue,
		"status":         models.StatusDelivered,
		"delivered_at":   now,
	}
	if err := m.store.UpdateFields(ctx, o, fields); err != nil {
		return mailer.Result{}, err
	}

	o.DeliveryValue = deliveryValue
	o.Status = models.StatusDelivered
	o.DeliveredAt = &now
	log.Printf("✅ Order %s delivered", o.OrderID)

	res := m.notify(ctx, o, "delivery")
	m.publish(ctx, o)
	return res, nil
}

// notify sends the delivery email and appends the outcome to the email log,
// success or not. Failures are swallowed here: the delivery already happened.
func (m *Manager) notify(ctx context.Context, o *models.Order, emailType string) mailer.Result {
	tpl := mailer.SelectTemplate(*o)
	res := m.mail.Send(o.BuyerEmail, tpl.Subject, tpl.HTML, tpl.Text)
	if !res.Success {
		log.Printf("⚠️ %s email for order %s failed: %s", emailType, o.OrderID, res.Error)
	}

	entry := models.EmailLogEntry{
		SentAt:    time.Now().UTC(),
		EmailType: emailType,
		Success:   res.Success,
		Error:     res.Error,
	}
	if err := m.store.AppendEmailLog(ctx, o, entry); err != nil {
		log.Printf("❌ Could not append email log entry on order %s: %v", o.OrderID, err)
	}
	o.EmailLog = append(o.EmailLog, entry)

	return res
}

func (m *Manager) publish(ctx context.Context, o *models.Order) {
	if m.pub != nil {
		m.pub.PublishOrderUpdate(ctx, o.OrderKey.String())
	}
}
