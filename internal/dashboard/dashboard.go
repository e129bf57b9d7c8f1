package dashboard

import (
	"context"
	"fmt"
)

// Interval selects the aggregation bucket for a series.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "week"
	IntervalMonthly Interval = "month"
)

func (i Interval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// IncomePoint is one bucket of the income series.
type IncomePoint struct {
	Period string `json:"Periode"`
	Income int64  `json:"Pendapatan"`
}

// QuantityPoint is units sold per product.
type QuantityPoint struct {
	Product string `json:"Produk"`
	Sold    int64  `json:"Total Penjualan"`
}

// API is the dashboard slice of the backend.
type API interface {
	IncomeSeries(ctx context.Context, interval Interval) ([]IncomePoint, error)
	QuantitySeries(ctx context.Context, interval Interval) ([]QuantityPoint, error)
}

// catalogModels seeds an all-zero quantity series when the backend has
// no sales yet, so every product still shows up on the chart.
var catalogModels = []string{
	"Habibah", "Fatimah", "Hafshah", "Khadijah", "Safiyyah", "Aurvi", "Maryam",
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) Income(ctx context.Context, interval Interval) ([]IncomePoint, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("unknown dashboard interval %q", interval)
	}
	points, err := s.api.IncomeSeries(ctx, interval)
	if err != nil {
		return nil, fmt.Errorf("fetch income series: %w", err)
	}
	return points, nil
}

func (s *Service) Quantity(ctx context.Context, interval Interval) ([]QuantityPoint, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("unknown dashboard interval %q", interval)
	}
	points, err := s.api.QuantitySeries(ctx, interval)
	if err != nil {
		return nil, fmt.Errorf("fetch quantity series: %w", err)
	}
	if len(points) == 0 {
		for _, name := range catalogModels {
			points = append(points, QuantityPoint{Product: name})
		}
	}
	return points, nil
}
