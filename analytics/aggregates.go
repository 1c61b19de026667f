package analytics

import (
	"time"

	"cafeteria-analytics/models"
)

// Aggregates bundles every metric fetched for one request. A zero-valued
// bundle is a valid degraded state: every downstream stage renders empty
// output from it instead of erroring.
type Aggregates struct {
	TotalSales  float64
	ShortDays   int
	LongDays    int
	ShortSeries []models.DailySales
	LongSeries  []models.DailySales
	ShortTotal  float64
	OrderCount  int
	Items       []models.ItemPerformance
	Payments    map[string]int
	LowStock    []models.LowStockItem
	Heatmap     models.Heatmap
}

// EmptyAggregates is the all-zero fallback used when the fetch phase fails.
func EmptyAggregates(shortDays, longDays int) *Aggregates {
	return &Aggregates{
		ShortDays:   shortDays,
		LongDays:    longDays,
		ShortSeries: []models.DailySales{},
		LongSeries:  []models.DailySales{},
		Items:       []models.ItemPerformance{},
		Payments:    map[string]int{},
		LowStock:    []models.LowStockItem{},
	}
}

// AvgOrderValue is the short-window total divided by the order count.
func (a *Aggregates) AvgOrderValue() float64 {
	if a.OrderCount == 0 {
		return 0
	}
	return a.ShortTotal / float64(a.OrderCount)
}

// AvgDailySales is the mean over the short window's active days.
func (a *Aggregates) AvgDailySales() float64 {
	if len(a.ShortSeries) == 0 {
		return 0
	}
	return a.ShortTotal / float64(len(a.ShortSeries))
}

// TotalPayments is the number of orders with a recognised payment method.
func (a *Aggregates) TotalPayments() int {
	var total int
	for _, count := range a.Payments {
		total += count
	}
	return total
}

// SeriesValues extracts the totals from a daily series in order. The forecast
// consumes these positionally, so absent days compress the time axis unless
// the series was zero-filled first.
func SeriesValues(series []models.DailySales) []float64 {
	values := make([]float64, len(series))
	for i, day := range series {
		values[i] = day.Total
	}
	return values
}

// SumSeries adds up a daily series.
func SumSeries(series []models.DailySales) float64 {
	var sum float64
	for _, day := range series {
		sum += day.Total
	}
	return sum
}

// ZeroFillDaily inserts zero-total days for calendar gaps between the first
// and last date of a series. Dates that fail to parse leave the series
// untouched. Off by default; see the ZERO_FILL_GAPS setting.
func ZeroFillDaily(series []models.DailySales) []models.DailySales {
	if len(series) < 2 {
		return series
	}
	first, err := time.Parse("2006-01-02", series[0].Date)
	if err != nil {
		return series
	}
	last, err := time.Parse("2006-01-02", series[len(series)-1].Date)
	if err != nil {
		return series
	}

	byDate := make(map[string]float64, len(series))
	for _, day := range series {
		byDate[day.Date] = day.Total
	}

	filled := make([]models.DailySales, 0, len(series))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		filled = append(filled, models.DailySales{Date: date, Total: byDate[date]})
	}
	return filled
}
