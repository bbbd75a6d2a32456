package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money renders as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// Report defaults used when there is nothing to aggregate.
const (
	UnknownDish   = "Unknown Dish"
	UnknownWaiter = "Unknown Waiter"
	DefaultHour   = "00:00"
)

// BestDish is the dish with the most units sold.
type BestDish struct {
	Name       string `json:"name"`
	TotalSales int64  `json:"totalSales"`
}

// BestWaiter is the waiter with the highest order revenue.
type BestWaiter struct {
	Name       string          `json:"name"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// PeakHour is the busiest bucket of the current month.
type PeakHour struct {
	Hour       string          `json:"hour"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// DailySales is one entry of the weekly sales series.
type DailySales struct {
	Date       string          `json:"date"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// SalesReport is the result of GET /sales/statistics.
type SalesReport struct {
	BestDish    BestDish        `json:"bestDish"`
	TotalSales  decimal.Decimal `json:"totalSales"`
	BestWaiter  BestWaiter      `json:"bestWaiter"`
	PeakHour    PeakHour        `json:"peakHour"`
	WeeklySales []DailySales    `json:"weeklySales"`
}

// CategoryReviews counts reviews for a single category.
type CategoryReviews struct {
	Name          string `json:"name"`
	LikedCount    int    `json:"likedCount"`
	DislikedCount int    `json:"dislikedCount"`
}

// ReviewReport is the result of GET /reviews/statistics.
type ReviewReport struct {
	LikedPercentage    float64           `json:"likedPercentage"`
	DislikedPercentage float64           `json:"dislikedPercentage"`
	Categories         []CategoryReviews `json:"categories"`
}

// SalesBucket is one group of the time-bucketed sales queries.
type SalesBucket struct {
	At    time.Time
	Total decimal.Decimal
}
