package models

// AnalyzeRequest is the body of POST /analyze sent by the web backend.
// WindowDays is an optional override for the analysis window; a number
// mentioned in the message itself takes precedence over it.
type AnalyzeRequest struct {
	Message    string   `json:"message"`
	WindowDays *float64 `json:"window_days"`
}

// KPI is a single dashboard card.
type KPI struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Note  string  `json:"note,omitempty"`
}

// Visualization is a chart-ready payload. Type is "line", "bar" or "heatmap";
// line and bar charts fill X/Y, heatmaps fill Days/Hours/Matrix.
type Visualization struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	X          []string  `json:"x,omitempty"`
	Y          []float64 `json:"y,omitempty"`
	Days       []string  `json:"days,omitempty"`
	Hours      []int     `json:"hours,omitempty"`
	Matrix     [][]int   `json:"matrix,omitempty"`
	SeriesName string    `json:"seriesName,omitempty"`
}

// AnalyzeResponse is the full /analyze payload rendered by the dashboard.
type AnalyzeResponse struct {
	AssistantMessage string          `json:"assistant_message"`
	KPIs             []KPI           `json:"kpis"`
	Visualizations   []Visualization `json:"visualizations"`
	Alerts           []string        `json:"alerts"`
}

// DailySales is one day's total for non-cancelled orders. Days without any
// orders are absent from the series, not zero.
type DailySales struct {
	Date  string
	Total float64
}

// ItemPerformance is the units sold for one menu item within a window.
// Quantity is zero for items that were never ordered in the window.
type ItemPerformance struct {
	ItemID   int64
	Name     string
	Quantity int
}

// LowStockItem is a menu item at or below the low-stock threshold.
type LowStockItem struct {
	Name  string
	Stock int
}

// InventoryActivity is the signed net stock change for one item today.
type InventoryActivity struct {
	Name   string
	Change int
}

// Heatmap counts orders per weekday (Sunday = 0) and hour of day.
type Heatmap [7][24]int

// Matrix converts the heatmap into the nested-slice form charts expect.
func (h Heatmap) Matrix() [][]int {
	m := make([][]int, len(h))
	for day := range h {
		row := make([]int, len(h[day]))
		copy(row, h[day][:])
		m[day] = row
	}
	return m
}

// Total returns the number of orders across all cells.
func (h Heatmap) Total() int {
	var total int
	for day := range h {
		for hour := range h[day] {
			total += h[day][hour]
		}
	}
	return total
}
