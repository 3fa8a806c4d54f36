package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/mailer"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	orders   map[string]*models.Order
	appended map[string][]models.EmailLogEntry
}

func newFakeStore(orders ...*models.Order) *fakeStore {
	f := &fakeStore{
		orders:   make(map[string]*models.Order),
		appended: make(map[string][]models.EmailLogEntry),
	}
	for _, o := range orders {
		f.orders[o.OrderID] = o
	}
	return f
}

func (f *fakeStore) GetByNumber(_ context.Context, number string) (*models.Order, error) {
	o, ok := f.orders[number]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", number, apperr.ErrNotFound)
	}
	return o, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, o *models.Order, fields map[string]interface{}) error {
	for name, value := range fields {
		switch name {
		case "status":
			o.Status = value.(string)
		case "delivery_value":
			o.DeliveryValue = value.(string)
		case "delivered_at":
			t := value.(time.Time)
			o.DeliveredAt = &t
		case "admin_notes":
			o.AdminNotes = value.(string)
		case "is_express":
			o.IsExpress = value.(bool)
		case "queue_position":
			o.QueuePosition = value.(int)
		}
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) AppendEmailLog(_ context.Context, o *models.Order, entry models.EmailLogEntry) error {
	f.appended[o.OrderID] = append(f.appended[o.OrderID], entry)
	return nil
}

type fakeSender struct {
	results []mailer.Result
	calls   int
	lastTo  string
	lastSub string
}

func (f *fakeSender) Send(to, subject, _, _ string) mailer.Result {
	f.calls++
	f.lastTo = to
	f.lastSub = subject
	if len(f.results) == 0 {
		return mailer.Result{Success: true}
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

func queuedOrder(number string) *models.Order {
	return &models.Order{
		OrderKey:   gocql.TimeUUID(),
		OrderID:    number,
		BuyerEmail: "a@b.com",
		Product:    "Steam Key",
		Price:      "19.99",
		Currency:   "GBP",
		Status:     models.StatusQueued,
		CreatedAt:  time.Now().UTC().Add(-time.Hour),
	}
}

func TestRecordDeliverySetsFieldsAndSendsEmail(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	o, res, err := m.RecordDelivery(context.Background(), "TS-1001", "ABCD-1234-EFGH")
	require.NoError(t, err)

	assert.Equal(t, models.StatusDelivered, o.Status)
	assert.Equal(t, "ABCD-1234-EFGH", o.DeliveryValue)
	require.NotNil(t, o.DeliveredAt)
	assert.True(t, res.Success)

	assert.Equal(t, "a@b.com", sender.lastTo)
	assert.Contains(t, sender.lastSub, "Steam")

	entries := st.appended["TS-1001"]
	require.Len(t, entries, 1)
	assert.Equal(t, "delivery", entries[0].EmailType)
	assert.True(t, entries[0].Success)
}

func TestRecordDeliveryDurableWhenEmailFails(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{results: []mailer.Result{{Success: false, Error: "relay down"}}}
	m := NewManager(st, sender, nil)

	o, res, err := m.RecordDelivery(context.Background(), "TS-1001", "ABCD-1234-EFGH")
	require.NoError(t, err, "a failed email must not fail the delivery")

	// The delivery landed even though the notification did not.
	assert.Equal(t, models.StatusDelivered, o.Status)
	assert.Equal(t, "ABCD-1234-EFGH", o.DeliveryValue)
	assert.NotNil(t, o.DeliveredAt)

	assert.False(t, res.Success)
	assert.Equal(t, "relay down", res.Error)

	entries := st.appended["TS-1001"]
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "relay down", entries[0].Error)
}

func TestRecordDeliveryRequiresValue(t *testing.T) {
	m := NewManager(newFakeStore(queuedOrder("TS-1001")), &fakeSender{}, nil)

	_, _, err := m.RecordDelivery(context.Background(), "TS-1001", "   ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestRecordDeliveryUnknownOrder(t *testing.T) {
	m := NewManager(newFakeStore(), &fakeSender{}, nil)

	_, _, err := m.RecordDelivery(context.Background(), "TS-9999", "CODE")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResendRequiresDeliveryValue(t *testing.T) {
	m := NewManager(newFakeStore(queuedOrder("TS-1001")), &fakeSender{}, nil)

	_, _, err := m.ResendNotification(context.Background(), "TS-1001")
	assert.ErrorIs(t, err, apperr.ErrFailedPrecondition)
}

func TestResendNeverMutatesDeliveryFields(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	o, _, err := m.RecordDelivery(context.Background(), "TS-1001", "ABCD-1234-EFGH")
	require.NoError(t, err)

	deliveredAt := *o.DeliveredAt
	status := o.Status
	value := o.DeliveryValue

	_, res, err := m.ResendNotification(context.Background(), "TS-1001")
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Equal(t, value, o.DeliveryValue)
	assert.Equal(t, status, o.Status)
	assert.Equal(t, deliveredAt, *o.DeliveredAt)

	entries := st.appended["TS-1001"]
	require.Len(t, entries, 2)
	assert.Equal(t, "delivery", entries[0].EmailType)
	assert.Equal(t, "resend", entries[1].EmailType)
}

func TestEmailLogAppendsOncePerAttempt(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{results: []mailer.Result{
		{Success: true},
		{Success: false, Error: "timeout"},
		{Success: true},
	}}
	m := NewManager(st, sender, nil)

	_, _, err := m.RecordDelivery(context.Background(), "TS-1001", "CODE")
	require.NoError(t, err)
	_, _, err = m.ResendNotification(context.Background(), "TS-1001")
	require.NoError(t, err)
	_, _, err = m.ResendNotification(context.Background(), "TS-1001")
	require.NoError(t, err)

	// One entry per attempt, failures included, nothing overwritten.
	entries := st.appended["TS-1001"]
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Success)
	assert.False(t, entries[1].Success)
	assert.Equal(t, "timeout", entries[1].Error)
	assert.True(t, entries[2].Success)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	m := NewManager(newFakeStore(queuedOrder("TS-1001")), &fakeSender{}, nil)

	_, _, err := m.ChangeStatus(context.Background(), "TS-1001", "shipped", "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestChangeStatusPlainTransition(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	o, res, err := m.ChangeStatus(context.Background(), "TS-1001", models.StatusInProgress, "started working", "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, o.Status)
	assert.Equal(t, "started working", o.AdminNotes)
	assert.Nil(t, res, "no send attempted, no mail result")
	assert.Zero(t, sender.calls, "non-delivery transitions send no email")
	assert.Empty(t, st.appended["TS-1001"])
}

func TestChangeStatusRejectedDeliveryWritesNothing(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	_, _, err := m.ChangeStatus(context.Background(), "TS-1001", models.StatusDelivered, "payment verified", "")
	assert.ErrorIs(t, err, apperr.ErrFailedPrecondition)

	// The rejection must leave the order exactly as it was — notes included.
	o := st.orders["TS-1001"]
	assert.Empty(t, o.AdminNotes)
	assert.Equal(t, models.StatusQueued, o.Status)
	assert.Empty(t, o.DeliveryValue)
	assert.Zero(t, sender.calls)
	assert.Empty(t, st.appended["TS-1001"])
}

func TestChangeStatusToDeliveredNeedsValue(t *testing.T) {
	m := NewManager(newFakeStore(queuedOrder("TS-1001")), &fakeSender{}, nil)

	_, _, err := m.ChangeStatus(context.Background(), "TS-1001", models.StatusDelivered, "", "")
	assert.ErrorIs(t, err, apperr.ErrFailedPrecondition)
}

func TestChangeStatusToDeliveredSendsEmail(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	o, res, err := m.ChangeStatus(context.Background(), "TS-1001", models.StatusDelivered, "", "KEY-123")
	require.NoError(t, err)

	assert.Equal(t, models.StatusDelivered, o.Status)
	assert.Equal(t, "KEY-123", o.DeliveryValue)
	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, 1, sender.calls)
}

func TestDeliveredIsTerminalForNotifications(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	sender := &fakeSender{}
	m := NewManager(st, sender, nil)

	_, _, err := m.RecordDelivery(context.Background(), "TS-1001", "CODE")
	require.NoError(t, err)
	require.Equal(t, 1, sender.calls)

	// A repeated delivered status must not re-trigger the delivery email.
	_, res, err := m.ChangeStatus(context.Background(), "TS-1001", models.StatusDelivered, "double check", "")
	require.NoError(t, err)
	assert.Nil(t, res, "no send attempted, no mail result")
	assert.Equal(t, 1, sender.calls)
	assert.Len(t, st.appended["TS-1001"], 1)
}

func TestUpdateDetailsRequiresFields(t *testing.T) {
	m := NewManager(newFakeStore(queuedOrder("TS-1001")), &fakeSender{}, nil)

	_, err := m.UpdateDetails(context.Background(), "TS-1001", map[string]interface{}{})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestUpdateDetailsAppliesFields(t *testing.T) {
	st := newFakeStore(queuedOrder("TS-1001"))
	m := NewManager(st, &fakeSender{}, nil)

	o, err := m.UpdateDetails(context.Background(), "TS-1001", map[string]interface{}{
		"is_express":     true,
		"queue_position": 2,
	})
	require.NoError(t, err)
	assert.True(t, o.IsExpress)
	assert.Equal(t, 2, o.QueuePosition)
}
