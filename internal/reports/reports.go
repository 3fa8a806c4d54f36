package reports

import (
	"context"
	"strconv"
	"time"

	"turkish_shop_backend/internal/models"
)

// OrderStore is the read-only order surface the reporters need.
type OrderStore interface {
	CountByStatus(ctx context.Context, status string) (int, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// StatusCounts returns one count per known status, zero-filled for statuses
// with no orders.
func StatusCounts(ctx context.Context, store OrderStore) (map[string]int, error) {
	counts := make(map[string]int, len(models.KnownStatuses))
	for _, status := range models.KnownStatuses {
		count, err := store.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}

// RevenueSummary buckets order prices by creation time. Mixed currencies are
// summed as raw numbers without conversion; the label comes from the first
// order carrying one, or defaults to GBP.
type RevenueSummary struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"thisWeek"`  // rolling 7 days
	ThisMonth float64 `json:"thisMonth"` // calendar month
	AllTime   float64 `json:"allTime"`
	Currency  string  `json:"currency"`
	Orders    int     `json:"orders"` // orders counted (cancelled excluded)
}

// Revenue scans all orders and sums parsed prices into time buckets keyed on
// each order's creation timestamp. Cancelled orders contribute nothing; a
// non-numeric price parses to 0 rather than poisoning the totals.
func Revenue(ctx context.Context, store OrderStore, now time.Time) (*RevenueSummary, error) {
	orders, err := store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{Currency: "GBP"}
	currencySet := false

	year, month, day := now.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())

	for _, o := range orders {
		if !currencySet && o.Currency != "" {
			summary.Currency = o.Currency
			currencySet = true
		}
		if o.Status == models.StatusCancelled {
			continue
		}

		price, err := strconv.ParseFloat(o.Price, 64)
		if err != nil {
			price = 0
		}

		summary.AllTime += price
		summary.Orders++
		if !o.CreatedAt.Before(dayStart) {
			summary.Today += price
		}
		if !o.CreatedAt.Before(weekStart) {
			summary.ThisWeek += price
		}
		if !o.CreatedAt.Before(monthStart) {
			summary.ThisMonth += price
		}
	}

	return summary, nil
}
