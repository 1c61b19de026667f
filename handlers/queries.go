package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"cafeteria-analytics/analytics"
	"cafeteria-analytics/models"
)

// The aggregate catalogue. Every query is read-only, parameterized by the
// day window, and counts only non-cancelled orders (pending, preparing,
// ready and completed all count).

// rowQuerier is the slice of the pool the schema-tolerant reads need; it
// lets their fallback chains be exercised without a live database.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func fetchTotalSales(ctx context.Context, db *pgxpool.Pool) (float64, error) {
	var total float64
	err := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status <> 'cancelled'
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query total sales: %w", err)
	}
	return total, nil
}

func fetchSalesByDay(ctx context.Context, db *pgxpool.Pool, days int) ([]models.DailySales, error) {
	rows, err := db.Query(ctx, `
		SELECT created_at::date AS date, COALESCE(SUM(total), 0) AS total_sales
		FROM orders
		WHERE status <> 'cancelled'
		  AND created_at >= CURRENT_DATE - ($1 * INTERVAL '1 day')
		GROUP BY created_at::date
		ORDER BY created_at::date
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	series := []models.DailySales{}
	for rows.Next() {
		var date time.Time
		var total float64
		if err := rows.Scan(&date, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales row: %w", err)
		}
		series = append(series, models.DailySales{Date: date.Format("2006-01-02"), Total: total})
	}
	return series, rows.Err()
}

func fetchOrderCount(ctx context.Context, db *pgxpool.Pool, days int) (int, error) {
	var count int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM orders
		WHERE status <> 'cancelled'
		  AND created_at >= CURRENT_DATE - ($1 * INTERVAL '1 day')
	`, days).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to query order count: %w", err)
	}
	return count, nil
}

// fetchItemPerformance keeps never-ordered items in the result through the
// outer joins, so the worst-seller ranking can surface them with zero units.
func fetchItemPerformance(ctx context.Context, db *pgxpool.Pool, days int) ([]models.ItemPerformance, error) {
	rows, err := db.Query(ctx, `
		SELECT mi.id, mi.name,
		       COALESCE(SUM(CASE WHEN o.id IS NULL THEN 0 ELSE oi.quantity END), 0) AS units
		FROM menu_items mi
		LEFT JOIN order_items oi ON oi.menu_item_id = mi.id
		LEFT JOIN orders o ON o.id = oi.order_id
		  AND o.status <> 'cancelled'
		  AND o.created_at >= CURRENT_DATE - ($1 * INTERVAL '1 day')
		GROUP BY mi.id, mi.name
		ORDER BY mi.id
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query item performance: %w", err)
	}
	defer rows.Close()

	items := []models.ItemPerformance{}
	for rows.Next() {
		var item models.ItemPerformance
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item performance row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// fetchPaymentBreakdown counts orders per uppercased payment method. Orders
// without a method are excluded from the denominator entirely.
func fetchPaymentBreakdown(ctx context.Context, db *pgxpool.Pool, days int) (map[string]int, error) {
	rows, err := db.Query(ctx, `
		SELECT UPPER(payment_method) AS method, COUNT(*) AS orders
		FROM orders
		WHERE status <> 'cancelled'
		  AND payment_method IS NOT NULL
		  AND created_at >= CURRENT_DATE - ($1 * INTERVAL '1 day')
		GROUP BY UPPER(payment_method)
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := map[string]int{}
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		breakdown[method] = count
	}
	return breakdown, rows.Err()
}

// fetchLowStock tries the two stock column names seen across schema
// revisions; whichever works first wins, and total failure degrades to an
// empty list.
func fetchLowStock(ctx context.Context, db rowQuerier, threshold, limit int) []models.LowStockItem {
	var lastErr error
	for _, column := range []string{"stock", "stock_qty"} {
		query := fmt.Sprintf(`
			SELECT name, %s
			FROM menu_items
			WHERE %s <= $1
			ORDER BY %s ASC, name ASC
			LIMIT $2
		`, column, column, column)

		rows, err := db.Query(ctx, query, threshold, limit)
		if err != nil {
			lastErr = err
			continue
		}
		items, err := scanLowStock(rows)
		if err != nil {
			lastErr = err
			continue
		}
		return items
	}
	log.Printf("low stock query failed on every candidate column: %v", lastErr)
	return []models.LowStockItem{}
}

func scanLowStock(rows pgx.Rows) ([]models.LowStockItem, error) {
	defer rows.Close()
	items := []models.LowStockItem{}
	for rows.Next() {
		var item models.LowStockItem
		if err := rows.Scan(&item.Name, &item.Stock); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func fetchHeatmap(ctx context.Context, db *pgxpool.Pool, days int) (models.Heatmap, error) {
	var heatmap models.Heatmap
	rows, err := db.Query(ctx, `
		SELECT EXTRACT(DOW FROM created_at)::int AS weekday,
		       EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*) AS orders
		FROM orders
		WHERE status <> 'cancelled'
		  AND created_at >= CURRENT_DATE - ($1 * INTERVAL '1 day')
		GROUP BY 1, 2
	`, days)
	if err != nil {
		return heatmap, fmt.Errorf("failed to query order heatmap: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, hour, count int
		if err := rows.Scan(&weekday, &hour, &count); err != nil {
			return heatmap, fmt.Errorf("failed to scan heatmap row: %w", err)
		}
		if weekday >= 0 && weekday < 7 && hour >= 0 && hour < 24 {
			heatmap[weekday][hour] = count
		}
	}
	return heatmap, rows.Err()
}

// fetchInventoryToday reads today's net stock changes from inventory_logs,
// trying both change column names seen in the wild. ok is false when the
// table or both columns are unavailable.
func fetchInventoryToday(ctx context.Context, db rowQuerier) ([]models.InventoryActivity, bool) {
	for _, column := range []string{"quantity_change", "change"} {
		query := fmt.Sprintf(`
			SELECT mi.name, COALESCE(SUM(il.%s), 0) AS net_change
			FROM inventory_logs il
			JOIN menu_items mi ON mi.id = il.menu_item_id
			WHERE il.created_at::date = CURRENT_DATE
			GROUP BY mi.name
			ORDER BY mi.name
		`, column)

		rows, err := db.Query(ctx, query)
		if err != nil {
			continue
		}
		activity, err := scanInventoryActivity(rows)
		if err != nil {
			continue
		}
		return activity, true
	}
	return nil, false
}

func scanInventoryActivity(rows pgx.Rows) ([]models.InventoryActivity, error) {
	defer rows.Close()
	activity := []models.InventoryActivity{}
	for rows.Next() {
		var entry models.InventoryActivity
		if err := rows.Scan(&entry.Name, &entry.Change); err != nil {
			return nil, err
		}
		activity = append(activity, entry)
	}
	return activity, rows.Err()
}

// fetchItemsUpdatedToday is the coarser fallback when the delta log is
// unavailable: just the items whose row was touched today, with their
// current stock.
func fetchItemsUpdatedToday(ctx context.Context, db rowQuerier) []models.LowStockItem {
	for _, column := range []string{"stock", "stock_qty"} {
		query := fmt.Sprintf(`
			SELECT name, %s
			FROM menu_items
			WHERE updated_at::date = CURRENT_DATE
			ORDER BY name
		`, column)

		rows, err := db.Query(ctx, query)
		if err != nil {
			continue
		}
		items, err := scanLowStock(rows)
		if err != nil {
			continue
		}
		return items
	}
	return []models.LowStockItem{}
}

func fetchUserEmails(ctx context.Context, db *pgxpool.Pool, limit int) ([]string, error) {
	rows, err := db.Query(ctx, `
		SELECT email
		FROM users
		ORDER BY email
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query user emails: %w", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan user email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// fetchAggregates runs the whole catalogue sequentially for one request. The
// first query error aborts the phase: the caller degrades every metric to
// zero at once rather than serving a partially-read bundle. The
// schema-tolerant reads (low stock) resolve to empty internally and never
// trip this.
func (h *Analytics) fetchAggregates(ctx context.Context, shortDays, longDays int) (*analytics.Aggregates, error) {
	agg := analytics.EmptyAggregates(shortDays, longDays)

	var err error
	if agg.TotalSales, err = fetchTotalSales(ctx, h.DB); err != nil {
		return nil, err
	}
	if agg.ShortSeries, err = fetchSalesByDay(ctx, h.DB, shortDays); err != nil {
		return nil, err
	}
	if agg.LongSeries, err = fetchSalesByDay(ctx, h.DB, longDays); err != nil {
		return nil, err
	}
	if agg.OrderCount, err = fetchOrderCount(ctx, h.DB, shortDays); err != nil {
		return nil, err
	}
	if agg.Items, err = fetchItemPerformance(ctx, h.DB, shortDays); err != nil {
		return nil, err
	}
	if agg.Payments, err = fetchPaymentBreakdown(ctx, h.DB, shortDays); err != nil {
		return nil, err
	}
	if agg.Heatmap, err = fetchHeatmap(ctx, h.DB, shortDays); err != nil {
		return nil, err
	}
	agg.LowStock = fetchLowStock(ctx, h.DB, h.Cfg.LowStockThreshold, h.Cfg.LowStockLimit)

	if h.Cfg.ZeroFillGaps {
		agg.ShortSeries = analytics.ZeroFillDaily(agg.ShortSeries)
		agg.LongSeries = analytics.ZeroFillDaily(agg.LongSeries)
	}
	agg.ShortTotal = analytics.SumSeries(agg.ShortSeries)

	return agg, nil
}
