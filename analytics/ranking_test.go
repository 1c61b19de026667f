package analytics

import (
	"testing"

	"cafeteria-analytics/models"
)

func TestSplitTopWorst(t *testing.T) {
	items := []models.ItemPerformance{
		{ItemID: 1, Name: "A", Quantity: 0},
		{ItemID: 2, Name: "B", Quantity: 5},
		{ItemID: 3, Name: "C", Quantity: 0},
		{ItemID: 4, Name: "D", Quantity: 3},
	}

	top, worst := SplitTopWorst(items, 5)

	if len(top) != 2 || top[0].Name != "B" || top[1].Name != "D" {
		t.Fatalf("unexpected top list: %+v", top)
	}

	// Worst keeps zero-sale items and the A/C tie holds its original order.
	wantWorst := []string{"A", "C", "D", "B"}
	if len(worst) != len(wantWorst) {
		t.Fatalf("expected %d worst entries, got %d", len(wantWorst), len(worst))
	}
	for i, name := range wantWorst {
		if worst[i].Name != name {
			t.Fatalf("worst[%d] = %s, want %s", i, worst[i].Name, name)
		}
	}
	for i := 1; i < len(worst); i++ {
		if worst[i].Quantity < worst[i-1].Quantity {
			t.Fatalf("worst is not sorted ascending: %+v", worst)
		}
	}
}

func TestSplitTopWorstEmpty(t *testing.T) {
	top, worst := SplitTopWorst(nil, 5)
	if len(top) != 0 || len(worst) != 0 {
		t.Fatalf("expected empty outputs, got %+v / %+v", top, worst)
	}
	if top == nil || worst == nil {
		t.Fatal("expected non-nil empty slices")
	}
}

func TestSplitTopWorstLimit(t *testing.T) {
	items := make([]models.ItemPerformance, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, models.ItemPerformance{
			ItemID:   int64(i + 1),
			Name:     string(rune('A' + i)),
			Quantity: i + 1,
		})
	}

	top, worst := SplitTopWorst(items, 5)
	if len(top) != 5 || len(worst) != 5 {
		t.Fatalf("expected both lists capped at 5, got %d/%d", len(top), len(worst))
	}
	if top[0].Quantity != 8 {
		t.Fatalf("expected highest quantity first in top, got %d", top[0].Quantity)
	}
	if worst[0].Quantity != 1 {
		t.Fatalf("expected lowest quantity first in worst, got %d", worst[0].Quantity)
	}

	// Never any zero-quantity item in top.
	for _, item := range top {
		if item.Quantity <= 0 {
			t.Fatalf("top contains non-selling item: %+v", item)
		}
	}
}
