package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

// failingQuerier rejects every query, as a pool does when neither candidate
// column exists.
type failingQuerier struct {
	err error
}

func (q failingQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, q.err
}

func TestFetchLowStockDegradesToEmpty(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	dbErr := errors.New(`column "stock_qty" does not exist`)
	items := fetchLowStock(context.Background(), failingQuerier{err: dbErr}, 5, 10)

	assert.NotNil(t, items)
	assert.Empty(t, items)

	// The last candidate's error makes it into the log for diagnosis.
	entry := hook.LastEntry()
	assert.NotNil(t, entry)
	assert.Contains(t, entry.Message, "low stock query failed")
	assert.Contains(t, entry.Message, dbErr.Error())
}

func TestFetchInventoryTodayUnavailable(t *testing.T) {
	dbErr := errors.New(`relation "inventory_logs" does not exist`)
	activity, ok := fetchInventoryToday(context.Background(), failingQuerier{err: dbErr})
	assert.False(t, ok)
	assert.Nil(t, activity)
}

func TestFetchItemsUpdatedTodayDegradesToEmpty(t *testing.T) {
	dbErr := errors.New("connection refused")
	items := fetchItemsUpdatedToday(context.Background(), failingQuerier{err: dbErr})
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
