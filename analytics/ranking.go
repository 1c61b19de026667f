package analytics

import (
	"sort"

	"cafeteria-analytics/models"
)

// RankLimit is how many items each of the top and worst lists carries.
const RankLimit = 5

// SplitTopWorst splits item performance rows into best and worst sellers.
// Top keeps only items that actually sold, most units first; worst ranks the
// whole catalogue ascending so never-ordered items surface at the front. Both
// sorts are stable, so ties keep their original relative order, and an item
// with a low positive quantity may legitimately appear in both lists.
func SplitTopWorst(items []models.ItemPerformance, limit int) (top, worst []models.ItemPerformance) {
	top = []models.ItemPerformance{}
	worst = []models.ItemPerformance{}
	if len(items) == 0 {
		return top, worst
	}

	for _, item := range items {
		if item.Quantity > 0 {
			top = append(top, item)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > limit {
		top = top[:limit]
	}

	worst = append(worst, items...)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].Quantity < worst[j].Quantity
	})
	if len(worst) > limit {
		worst = worst[:limit]
	}

	return top, worst
}
