package reports

import (
	"context"
	"testing"
	"time"

	"turkish_shop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	counts map[string]int
	orders []models.Order
}

func (f *fakeOrders) CountByStatus(_ context.Context, status string) (int, error) {
	return f.counts[status], nil
}

func (f *fakeOrders) ListAll(_ context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func TestStatusCountsZeroFilled(t *testing.T) {
	st := &fakeOrders{counts: map[string]int{
		models.StatusQueued:    3,
		models.StatusDelivered: 12,
	}}

	counts, err := StatusCounts(context.Background(), st)
	require.NoError(t, err)

	// Every known status appears, even the empty ones.
	assert.Len(t, counts, len(models.KnownStatuses))
	assert.Equal(t, 3, counts[models.StatusQueued])
	assert.Equal(t, 12, counts[models.StatusDelivered])
	assert.Equal(t, 0, counts[models.StatusCancelled])
	assert.Equal(t, 0, counts[models.StatusPending])
}

func order(price, currency, status string, createdAt time.Time) models.Order {
	return models.Order{
		Price:     price,
		Currency:  currency,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestRevenueBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	st := &fakeOrders{orders: []models.Order{
		order("19.99", "GBP", models.StatusDelivered, now.Add(-2*time.Hour)),     // today
		order("10.00", "GBP", models.StatusDelivered, now.AddDate(0, 0, -3)),     // this week + month
		order("5.00", "GBP", models.StatusQueued, now.AddDate(0, 0, -10)),        // this month only
		order("100.00", "GBP", models.StatusDelivered, now.AddDate(0, -2, 0)),    // all time only
		order("999.00", "GBP", models.StatusCancelled, now.Add(-1*time.Hour)),    // excluded
		order("not-a-price", "GBP", models.StatusDelivered, now.AddDate(0, 0, -1)), // parses to 0
	}}

	sum, err := Revenue(context.Background(), st, now)
	require.NoError(t, err)

	assert.InDelta(t, 19.99, sum.Today, 0.001)
	assert.InDelta(t, 29.99, sum.ThisWeek, 0.001)
	assert.InDelta(t, 34.99, sum.ThisMonth, 0.001)
	assert.InDelta(t, 134.99, sum.AllTime, 0.001)
	assert.Equal(t, 5, sum.Orders, "cancelled orders are not counted")
	assert.Equal(t, "GBP", sum.Currency)
}

func TestRevenueExcludesCancelled(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeOrders{orders: []models.Order{
		order("50.00", "GBP", models.StatusCancelled, now),
	}}

	sum, err := Revenue(context.Background(), st, now)
	require.NoError(t, err)

	assert.Zero(t, sum.AllTime)
	assert.Zero(t, sum.Orders)
}

func TestRevenueCurrencyLabel(t *testing.T) {
	now := time.Now().UTC()

	t.Run("defaults to GBP", func(t *testing.T) {
		sum, err := Revenue(context.Background(), &fakeOrders{}, now)
		require.NoError(t, err)
		assert.Equal(t, "GBP", sum.Currency)
	})

	t.Run("first order with a currency wins", func(t *testing.T) {
		st := &fakeOrders{orders: []models.Order{
			order("10.00", "", models.StatusDelivered, now),
			order("20.00", "EUR", models.StatusDelivered, now),
			order("30.00", "USD", models.StatusDelivered, now),
		}}
		sum, err := Revenue(context.Background(), st, now)
		require.NoError(t, err)
		assert.Equal(t, "EUR", sum.Currency)
	})

	t.Run("cancelled order can still set the label", func(t *testing.T) {
		st := &fakeOrders{orders: []models.Order{
			order("10.00", "TRY", models.StatusCancelled, now),
		}}
		sum, err := Revenue(context.Background(), st, now)
		require.NoError(t, err)
		assert.Equal(t, "TRY", sum.Currency)
		assert.Zero(t, sum.AllTime)
	})
}
