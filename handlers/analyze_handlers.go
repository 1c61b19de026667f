package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"cafeteria-analytics/analytics"
	"cafeteria-analytics/config"
	"cafeteria-analytics/models"
)

var shortWeekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Analytics owns the dependencies of the /analyze surface.
type Analytics struct {
	DB  *pgxpool.Pool
	Cfg *config.Config
}

func NewAnalytics(db *pgxpool.Pool, cfg *config.Config) *Analytics {
	return &Analytics{DB: db, Cfg: cfg}
}

// HandleAnalyze answers a dashboard chat message with KPI cards, chart
// payloads, business alerts and an assistant reply. A database failure never
// fails the request: metrics degrade to zero, a single error alert is
// emitted and the error text replaces the AI answer.
func (h *Analytics) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	message := strings.TrimSpace(req.Message)

	shortDays, longDays := analytics.ResolveWindow(message, req.WindowDays)

	ctx := context.Background()
	agg, dbErr := h.fetchAggregates(ctx, shortDays, longDays)
	if dbErr != nil {
		log.Printf("aggregate fetch failed: %v", dbErr)
		return c.JSON(degradedResponse(shortDays, longDays, dbErr))
	}

	top, worst := analytics.SplitTopWorst(agg.Items, analytics.RankLimit)
	values := analytics.SeriesValues(agg.ShortSeries)
	tomorrow, next7 := analytics.Forecast(values)
	forecastSeries := analytics.ForecastSeries(values, 7)

	summary := analytics.BuildMetricsSummary(agg, top, worst, tomorrow, next7)

	var assistant string
	if answer, ok := h.routeIntent(ctx, message, agg); ok {
		assistant = answer
	} else {
		question := message
		if question == "" {
			question = "(no question provided)"
		}
		assistant = askAssistant(ctx, h.Cfg, question, summary)
	}

	return c.JSON(models.AnalyzeResponse{
		AssistantMessage: assistant,
		KPIs:             buildKPIs(agg, next7),
		Visualizations:   buildVisualizations(agg, top, worst, forecastSeries),
		Alerts:           analytics.BuildAlerts(agg, top, worst, next7),
	})
}

// degradedResponse is the payload served when the aggregate fetch fails:
// every metric degrades to zero at once, exactly one database-error alert is
// emitted and the error text replaces the AI answer. The request still
// returns 200 with best-effort content.
func degradedResponse(shortDays, longDays int, dbErr error) models.AnalyzeResponse {
	agg := analytics.EmptyAggregates(shortDays, longDays)
	return models.AnalyzeResponse{
		AssistantMessage: fmt.Sprintf(
			"There was a problem reading the database, so I cannot show live metrics right now.\n\nError: %v",
			dbErr),
		KPIs:             buildKPIs(agg, 0),
		Visualizations:   buildVisualizations(agg, nil, nil, make([]float64, 7)),
		Alerts:           []string{fmt.Sprintf("Database error: %v", dbErr)},
	}
}

func buildKPIs(agg *analytics.Aggregates, next7 float64) []models.KPI {
	return []models.KPI{
		{Label: "Total Sales (All Time)", Value: agg.TotalSales, Unit: "USD"},
		{Label: fmt.Sprintf("Sales (Last %d Days)", agg.ShortDays), Value: agg.ShortTotal, Unit: "USD"},
		{
			Label: "Forecast (Next 7 Days)",
			Value: next7,
			Unit:  "USD",
			Note:  "Projected from recent daily sales",
		},
	}
}

func buildVisualizations(agg *analytics.Aggregates, top, worst []models.ItemPerformance, forecastSeries []float64) []models.Visualization {
	labels := make([]string, len(agg.ShortSeries))
	values := make([]float64, len(agg.ShortSeries))
	for i, day := range agg.ShortSeries {
		labels[i] = day.Date
		values[i] = day.Total
	}

	visualizations := []models.Visualization{
		{
			ID:         "sales_window",
			Type:       "line",
			Title:      fmt.Sprintf("Sales - Last %d Days", agg.ShortDays),
			X:          labels,
			Y:          values,
			SeriesName: "Total Sales",
		},
	}

	if len(agg.ShortSeries) > 0 {
		dates := make([]string, len(forecastSeries))
		for i := range forecastSeries {
			dates[i] = time.Now().AddDate(0, 0, i+1).Format("2006-01-02")
		}
		visualizations = append(visualizations, models.Visualization{
			ID:         "forecast_line",
			Type:       "line",
			Title:      "Forecast - Next 7 Days",
			X:          dates,
			Y:          forecastSeries,
			SeriesName: "Forecast",
		})
	}

	if len(top) > 0 {
		visualizations = append(visualizations, itemBar("top_items",
			fmt.Sprintf("Top Sellers - Last %d Days", agg.ShortDays), top))
	}
	if len(worst) > 0 {
		visualizations = append(visualizations, itemBar("worst_items",
			fmt.Sprintf("Worst Sellers - Last %d Days", agg.ShortDays), worst))
	}

	if agg.Heatmap.Total() > 0 {
		hours := make([]int, 24)
		for i := range hours {
			hours[i] = i
		}
		visualizations = append(visualizations, models.Visualization{
			ID:     "orders_heatmap",
			Type:   "heatmap",
			Title:  fmt.Sprintf("Orders by Hour - Last %d Days", agg.ShortDays),
			Days:   shortWeekdayNames,
			Hours:  hours,
			Matrix: agg.Heatmap.Matrix(),
		})
	}

	return visualizations
}

func itemBar(id, title string, items []models.ItemPerformance) models.Visualization {
	names := make([]string, len(items))
	units := make([]float64, len(items))
	for i, item := range items {
		names[i] = item.Name
		units[i] = float64(item.Quantity)
	}
	return models.Visualization{
		ID:         id,
		Type:       "bar",
		Title:      title,
		X:          names,
		Y:          units,
		SeriesName: "Units Sold",
	}
}
