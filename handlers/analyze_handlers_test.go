package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"cafeteria-analytics/analytics"
	"cafeteria-analytics/models"
)

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/", HandleHealth)

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, payload["message"])
}

func TestBuildKPIs(t *testing.T) {
	agg := analytics.EmptyAggregates(7, 30)
	agg.TotalSales = 500
	agg.ShortTotal = 120

	kpis := buildKPIs(agg, 140)
	assert.Len(t, kpis, 3)
	assert.Equal(t, "Total Sales (All Time)", kpis[0].Label)
	assert.Equal(t, 500.0, kpis[0].Value)
	assert.Equal(t, "Sales (Last 7 Days)", kpis[1].Label)
	assert.Equal(t, 120.0, kpis[1].Value)
	assert.Equal(t, "Forecast (Next 7 Days)", kpis[2].Label)
	assert.Equal(t, 140.0, kpis[2].Value)
	for _, kpi := range kpis {
		assert.Equal(t, "USD", kpi.Unit)
	}
}

func TestBuildKPIsDegraded(t *testing.T) {
	// After a fetch failure everything is zero but the cards still render.
	agg := analytics.EmptyAggregates(7, 30)
	kpis := buildKPIs(agg, 0)
	for _, kpi := range kpis {
		assert.Equal(t, 0.0, kpi.Value)
	}
}

func TestDegradedResponseContract(t *testing.T) {
	resp := degradedResponse(7, 30, errors.New("connection refused"))

	assert.Len(t, resp.Alerts, 1)
	assert.Equal(t, "Database error: connection refused", resp.Alerts[0])

	assert.Contains(t, resp.AssistantMessage, "There was a problem reading the database")
	assert.Contains(t, resp.AssistantMessage, "connection refused")

	assert.Len(t, resp.KPIs, 3)
	for _, kpi := range resp.KPIs {
		assert.Equal(t, 0.0, kpi.Value)
	}

	// Only the empty sales line remains: no forecast, bars or heatmap.
	assert.Len(t, resp.Visualizations, 1)
	assert.Equal(t, "sales_window", resp.Visualizations[0].ID)
	assert.Empty(t, resp.Visualizations[0].Y)
}

func TestBuildVisualizations(t *testing.T) {
	agg := analytics.EmptyAggregates(7, 30)
	agg.ShortSeries = []models.DailySales{
		{Date: "2026-08-25", Total: 100},
		{Date: "2026-08-26", Total: 120},
	}
	agg.Heatmap[2][12] = 4
	top := []models.ItemPerformance{{Name: "Latte", Quantity: 9}}
	worst := []models.ItemPerformance{{Name: "Tea", Quantity: 0}}
	series := []float64{110, 110, 110, 110, 110, 110, 110}

	viz := buildVisualizations(agg, top, worst, series)

	ids := make([]string, len(viz))
	for i, v := range viz {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"sales_window", "forecast_line", "top_items", "worst_items", "orders_heatmap"}, ids)

	assert.Equal(t, "line", viz[0].Type)
	assert.Equal(t, []string{"2026-08-25", "2026-08-26"}, viz[0].X)
	assert.Equal(t, []float64{100, 120}, viz[0].Y)

	assert.Len(t, viz[1].X, 7)
	assert.Equal(t, series, viz[1].Y)

	assert.Equal(t, "bar", viz[2].Type)
	assert.Equal(t, []string{"Latte"}, viz[2].X)

	assert.Equal(t, "heatmap", viz[4].Type)
	assert.Len(t, viz[4].Matrix, 7)
	assert.Len(t, viz[4].Matrix[0], 24)
	assert.Equal(t, 4, viz[4].Matrix[2][12])
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, viz[4].Days)
}

func TestBuildVisualizationsEmpty(t *testing.T) {
	agg := analytics.EmptyAggregates(7, 30)
	viz := buildVisualizations(agg, nil, nil, []float64{0, 0, 0, 0, 0, 0, 0})

	// Only the (empty) sales line survives: no history means no forecast
	// line, no bars, no heatmap.
	assert.Len(t, viz, 1)
	assert.Equal(t, "sales_window", viz[0].ID)
	assert.Empty(t, viz[0].Y)
}

func TestFallbackAnswerEmbedsSummaryAndError(t *testing.T) {
	summary := "Total sales for all non-cancelled orders (all time): 10.00 USD"
	answer := fallbackAnswer(summary, assert.AnError)
	assert.Contains(t, answer, summary)
	assert.Contains(t, answer, assert.AnError.Error())
	assert.Contains(t, answer, "Error from AI service:")
}
