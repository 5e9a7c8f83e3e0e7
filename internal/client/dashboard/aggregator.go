// Package dashboard derives the account summary shown on the client's
// overview screen from three independent backend collections: holdings,
// orders, and recent transactions.
package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/logging"
	"github.com/greengrid/rectrade/internal/models"
)

// DefaultLookbackDays bounds the transaction fetch. It only needs to reach
// back to the start of the current calendar month; 45 days always covers
// that.
const DefaultLookbackDays = 45

// Summary is the derived dashboard snapshot. It is a pure function of the
// three source collections at fetch time; it is recomputed on demand and
// never persisted.
type Summary struct {
	TotalValue             float64
	TotalQuantity          float64
	UniqueFacilityCount    int
	EnergyTypeCount        int
	ActiveOrderCount       int
	MonthlyTradingQuantity float64
}

// Aggregator merges the three account fetches into one consistent summary.
// The fetches run concurrently and are failure-isolated: a failed fetch
// leaves its fields at their previous values and is logged, never fatal.
// Refreshes serialize, so partial results from two invocations never mix.
type Aggregator struct {
	api          api.Client
	log          logging.Logger
	lookbackDays int

	// now is a clock seam; the monthly window is computed in UTC.
	now func() time.Time

	mu      sync.Mutex
	summary Summary
}

func NewAggregator(apiClient api.Client, log logging.Logger) *Aggregator {
	return &Aggregator{
		api:          apiClient,
		log:          log.With("component", "dashboard"),
		lookbackDays: DefaultLookbackDays,
		now:          time.Now,
	}
}

// Summary returns the last computed snapshot.
func (a *Aggregator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary
}

// Refresh recomputes the summary and returns it. Each of the three fetches
// writes only its own disjoint subset of fields; the new snapshot replaces
// the old one atomically once all fetches have settled.
func (a *Aggregator) Refresh(ctx context.Context) Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		holdings   *models.HoldingsSummary
		orders     []models.Order
		txs        []models.Transaction
		holdingsOK bool
		ordersOK   bool
		txsOK      bool
	)

	// A plain errgroup, not WithContext: one fetch failing must not cancel
	// the others, so the goroutines report failures by leaving their ok
	// flag unset instead of returning an error.
	var g errgroup.Group

	g.Go(func() error {
		s, err := a.api.Holdings(ctx)
		if err != nil {
			a.log.Warn(ctx, "holdings fetch failed", "error", err)
			return nil
		}
		holdings, holdingsOK = s, true
		return nil
	})

	g.Go(func() error {
		o, err := a.api.Orders(ctx)
		if err != nil {
			a.log.Warn(ctx, "orders fetch failed", "error", err)
			return nil
		}
		orders, ordersOK = o, true
		return nil
	})

	g.Go(func() error {
		tx, err := a.api.Transactions(ctx, a.lookbackDays, models.TransactionCompleted)
		if err != nil {
			a.log.Warn(ctx, "transactions fetch failed", "error", err)
			return nil
		}
		txs, txsOK = tx, true
		return nil
	})

	_ = g.Wait()

	next := a.summary

	if holdingsOK {
		next.TotalValue = holdings.TotalValue
		next.TotalQuantity = holdings.TotalQuantity
		next.UniqueFacilityCount = len(holdings.UniqueFacilities)
		next.EnergyTypeCount = len(holdings.EnergyTypes)
	}
	if ordersOK {
		next.ActiveOrderCount = countActive(orders)
	}
	if txsOK {
		next.MonthlyTradingQuantity = monthToDateQuantity(txs, a.now().UTC())
	}

	a.summary = next
	return next
}

func countActive(orders []models.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == models.OrderActive {
			n++
		}
	}
	return n
}

// monthToDateQuantity sums the quantities of transactions completed on or
// after the first day of the current calendar month, in UTC.
func monthToDateQuantity(txs []models.Transaction, now time.Time) float64 {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var total float64
	for _, tx := range txs {
		if tx.Status != models.TransactionCompleted {
			continue
		}
		if tx.CompletedAt.UTC().Before(monthStart) {
			continue
		}
		total += tx.Quantity
	}
	return total
}
