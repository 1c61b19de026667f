package analytics

import (
	"fmt"
	"sort"
	"strings"

	"cafeteria-analytics/models"
)

// BuildMetricsSummary renders the whole aggregate bundle into the multi-line
// text block handed to the AI model. Section order is fixed: all-time total,
// short-window series and stats, long-window series, top and worst items,
// payment breakdown, forecast, low stock. Currency uses two decimals and
// percentages one. The engine never parses this text back.
func BuildMetricsSummary(agg *Aggregates, top, worst []models.ItemPerformance, tomorrow, next7 float64) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Total sales for all non-cancelled orders (all time): %.2f USD", agg.TotalSales))

	lines = append(lines, seriesLines(agg.ShortSeries, agg.ShortDays)...)
	lines = append(lines,
		fmt.Sprintf("Total sales in the last %d days: %.2f USD", agg.ShortDays, agg.ShortTotal),
		fmt.Sprintf("Orders in the last %d days: %d", agg.ShortDays, agg.OrderCount),
		fmt.Sprintf("Average order value (last %d days): %.2f USD", agg.ShortDays, agg.AvgOrderValue()),
		fmt.Sprintf("Average daily sales (last %d days): %.2f USD", agg.ShortDays, agg.AvgDailySales()),
	)

	lines = append(lines, seriesLines(agg.LongSeries, agg.LongDays)...)

	if len(top) > 0 {
		lines = append(lines, fmt.Sprintf("Top selling items (last %d days):", agg.ShortDays))
		for _, item := range top {
			lines = append(lines, fmt.Sprintf("- %s: %d units", item.Name, item.Quantity))
		}
	} else {
		lines = append(lines, fmt.Sprintf("No items were sold in the last %d days.", agg.ShortDays))
	}

	if len(worst) > 0 {
		lines = append(lines, fmt.Sprintf("Worst selling items (last %d days):", agg.ShortDays))
		for _, item := range worst {
			lines = append(lines, fmt.Sprintf("- %s: %d units", item.Name, item.Quantity))
		}
	}

	if total := agg.TotalPayments(); total > 0 {
		lines = append(lines, fmt.Sprintf("Payment methods (last %d days):", agg.ShortDays))
		for _, method := range sortedMethods(agg.Payments) {
			count := agg.Payments[method]
			pct := float64(count) / float64(total) * 100
			lines = append(lines, fmt.Sprintf("- %s: %d orders (%.1f%%)", method, count, pct))
		}
	}

	lines = append(lines,
		fmt.Sprintf("Forecast for tomorrow: %.2f USD", tomorrow),
		fmt.Sprintf("Forecast for the next 7 days: %.2f USD", next7),
	)

	if len(agg.LowStock) > 0 {
		lines = append(lines, "Low stock items:")
		for _, item := range agg.LowStock {
			lines = append(lines, fmt.Sprintf("- %s: %d left", item.Name, item.Stock))
		}
	}

	return strings.Join(lines, "\n")
}

func seriesLines(series []models.DailySales, days int) []string {
	if len(series) == 0 {
		return []string{fmt.Sprintf("No non-cancelled orders found in the last %d days.", days)}
	}
	lines := make([]string, 0, len(series)+1)
	lines = append(lines, fmt.Sprintf("Sales over the last %d days (non-cancelled orders):", days))
	for _, day := range series {
		lines = append(lines, fmt.Sprintf("- %s: %.2f USD", day.Date, day.Total))
	}
	return lines
}

// sortedMethods orders payment methods by count descending, then name, so
// the summary is deterministic.
func sortedMethods(payments map[string]int) []string {
	methods := make([]string, 0, len(payments))
	for method := range payments {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool {
		if payments[methods[i]] != payments[methods[j]] {
			return payments[methods[i]] > payments[methods[j]]
		}
		return methods[i] < methods[j]
	})
	return methods
}
