package analytics

import (
	"fmt"
	"math"
	"strings"

	"cafeteria-analytics/models"
)

// MaxAlerts caps the alert list; once reached, lower-priority rules are
// dropped.
const MaxAlerts = 5

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// BuildAlerts evaluates the business rules against the aggregate bundle, in
// priority order, and returns at most MaxAlerts natural-language alerts. Each
// rule is independently gated: missing inputs skip the rule, they never
// error.
func BuildAlerts(agg *Aggregates, top, worst []models.ItemPerformance, next7 float64) []string {
	alerts := []string{}
	full := func() bool { return len(alerts) >= MaxAlerts }

	values := SeriesValues(agg.ShortSeries)

	// 1. Latest day vs short-window average, 20% deviation either way.
	if len(values) > 0 {
		avg := agg.AvgDailySales()
		last := values[len(values)-1]
		if avg > 0 {
			dev := (last - avg) / avg
			if dev <= -0.20 {
				alerts = append(alerts, fmt.Sprintf(
					"Sales on the latest day (%.2f USD) are %.1f%% below the %d-day average of %.2f USD.",
					last, -dev*100, agg.ShortDays, avg))
			} else if dev >= 0.20 {
				alerts = append(alerts, fmt.Sprintf(
					"Sales on the latest day (%.2f USD) are %.1f%% above the %d-day average of %.2f USD.",
					last, dev*100, agg.ShortDays, avg))
			}
		}
	}

	// 2. Day-over-day change.
	if !full() && len(values) >= 2 {
		prev := values[len(values)-2]
		last := values[len(values)-1]
		if prev > 0 {
			change := (last - prev) / prev * 100
			if change >= 0 {
				alerts = append(alerts, fmt.Sprintf("Sales rose %.1f%% compared to the previous day.", change))
			} else {
				alerts = append(alerts, fmt.Sprintf("Sales fell %.1f%% compared to the previous day.", -change))
			}
		}
	}

	// 3. Nothing sold, ever.
	if !full() && agg.TotalSales == 0 {
		alerts = append(alerts, "No sales recorded yet: the store has no non-cancelled orders.")
	}

	// 4. Best seller.
	if !full() && len(top) > 0 {
		alerts = append(alerts, fmt.Sprintf(
			"Best seller: %s with %d units sold in the last %d days.",
			top[0].Name, top[0].Quantity, agg.ShortDays))
	}

	// 5. Weakest performer.
	if !full() && len(worst) > 0 {
		alerts = append(alerts, fmt.Sprintf(
			"Weakest performer: %s with %d units sold in the last %d days.",
			worst[0].Name, worst[0].Quantity, agg.ShortDays))
	}

	// 6. Payment mix. OTHER covers everything that is not CASH or QR and is
	// only mentioned when it exists.
	if total := agg.TotalPayments(); !full() && total > 0 {
		cash := agg.Payments["CASH"]
		qr := agg.Payments["QR"]
		other := total - cash - qr
		msg := fmt.Sprintf("Payment mix: CASH %.1f%%, QR %.1f%%",
			pct(cash, total), pct(qr, total))
		if other > 0 {
			msg += fmt.Sprintf(", OTHER %.1f%%", pct(other, total))
		}
		alerts = append(alerts, msg+".")
	}

	// 7. Average order value.
	if !full() && agg.OrderCount > 0 {
		alerts = append(alerts, fmt.Sprintf(
			"Average order value over the last %d days: %.2f USD.",
			agg.ShortDays, agg.AvgOrderValue()))
	}

	// 8. Forecast vs a typical week.
	if avgDaily := agg.AvgDailySales(); !full() && next7 > 0 && avgDaily > 0 {
		typical := avgDaily * 7
		dev := (next7 - typical) / typical * 100
		switch {
		case math.Abs(dev) < 10:
			alerts = append(alerts, fmt.Sprintf(
				"The 7-day forecast (%.2f USD) is in line with a typical week.", next7))
		case dev >= 10:
			alerts = append(alerts, fmt.Sprintf(
				"The 7-day forecast (%.2f USD) is %.1f%% higher than a typical week (%.2f USD).",
				next7, dev, typical))
		default:
			alerts = append(alerts, fmt.Sprintf(
				"The 7-day forecast (%.2f USD) is %.1f%% lower than a typical week (%.2f USD).",
				next7, -dev, typical))
		}
	}

	// 9. Low stock, three lowest items.
	if !full() && len(agg.LowStock) > 0 {
		listed := agg.LowStock
		if len(listed) > 3 {
			listed = listed[:3]
		}
		parts := make([]string, len(listed))
		for i, item := range listed {
			parts[i] = fmt.Sprintf("%s (%d left)", item.Name, item.Stock)
		}
		alerts = append(alerts, "Low stock: "+strings.Join(parts, ", ")+".")
	}

	// 10. Busiest heatmap cell, first occurrence wins ties in row-major
	// (day, hour) order.
	if !full() {
		bestDay, bestHour, bestCount := 0, 0, 0
		for day := range agg.Heatmap {
			for hour := range agg.Heatmap[day] {
				if agg.Heatmap[day][hour] > bestCount {
					bestDay, bestHour, bestCount = day, hour, agg.Heatmap[day][hour]
				}
			}
		}
		if bestCount > 0 {
			alerts = append(alerts, fmt.Sprintf(
				"Busiest time: %s at %02d:00 with %d orders in the last %d days.",
				weekdayNames[bestDay], bestHour, bestCount, agg.ShortDays))
		}
	}

	if len(alerts) > MaxAlerts {
		alerts = alerts[:MaxAlerts]
	}
	return alerts
}

func pct(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
