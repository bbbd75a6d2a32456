package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/cache"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SalesReportKey is the cache key of the sales dashboard.
const SalesReportKey = "stats:sales"

// Bucketing modes for the time-grouped aggregates.
const (
	BucketingExact     = "exact"
	BucketingTruncated = "truncated"
)

// reportService implements ReportService.
type reportService struct {
	reportRepo repository.ReportRepository
	cache      cache.Cache
	truncate   bool
	loc        *time.Location
	now        func() time.Time
	logger     zerolog.Logger
}

// NewReportService creates a new report service. Calendar windows are computed in loc.
func NewReportService(
	reportRepo repository.ReportRepository,
	c cache.Cache,
	bucketing string,
	loc *time.Location,
	logger zerolog.Logger,
) ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{
		reportRepo: reportRepo,
		cache:      c,
		truncate:   bucketing == BucketingTruncated,
		loc:        loc,
		now:        time.Now,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

func (s *reportService) SalesStatistics(ctx context.Context) (*model.SalesReport, error) {
	var cached model.SalesReport
	hit, err := s.cache.Get(ctx, SalesReportKey, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ignoring statistics cache")
	}
	if hit {
		return &cached, nil
	}

	report, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, SalesReportKey, report); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache sales statistics")
	}
	return report, nil
}

func (s *reportService) build(ctx context.Context) (*model.SalesReport, error) {
	now := s.now().In(s.loc)

	total, err := s.reportRepo.TotalSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total sales: %w", err)
	}

	report := &model.SalesReport{
		BestDish:    model.BestDish{Name: model.UnknownDish},
		TotalSales:  total,
		BestWaiter:  model.BestWaiter{Name: model.UnknownWaiter, TotalSales: decimal.Zero},
		PeakHour:    model.PeakHour{Hour: model.DefaultHour, TotalSales: decimal.Zero},
		WeeklySales: []model.DailySales{},
	}

	dish, err := s.reportRepo.BestDish(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute best dish: %w", err)
	}
	if dish != nil {
		report.BestDish = *dish
	}

	waiter, err := s.reportRepo.BestWaiter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute best waiter: %w", err)
	}
	if waiter != nil {
		report.BestWaiter = *waiter
	}

	peak, err := s.reportRepo.PeakSales(ctx, startOfMonth(now), s.truncate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute peak hour: %w", err)
	}
	if peak != nil {
		report.PeakHour = model.PeakHour{
			Hour:       peak.At.In(s.loc).Format("15:04"),
			TotalSales: peak.Total,
		}
	}

	bills, err := s.reportRepo.BillSales(ctx, startOfWeek(now), s.truncate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekly sales: %w", err)
	}
	for _, b := range bills {
		report.WeeklySales = append(report.WeeklySales, model.DailySales{
			Date:       b.At.In(s.loc).Format("2006-01-02"),
			TotalSales: b.Total,
		})
	}

	return report, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the preceding Sunday at midnight.
func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}
