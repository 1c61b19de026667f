package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"cafeteria-analytics/analytics"
)

const userEmailLimit = 50

// intentRule pairs a message predicate with a direct answer. Rules are
// evaluated in order and the first match wins; anything unmatched falls
// through to the AI model.
type intentRule struct {
	matches func(message string) bool
	answer  func(ctx context.Context, h *Analytics, agg *analytics.Aggregates) string
}

var (
	emailRe     = regexp.MustCompile(`(?i)\bemails?\b`)
	userWordRe  = regexp.MustCompile(`(?i)\b(users?|customers?|accounts?)\b`)
	listVerbRe  = regexp.MustCompile(`(?i)\b(list|show|display)\b`)
	inventoryRe = regexp.MustCompile(`(?i)\b(inventory|stock)\b`)
	todayRe     = regexp.MustCompile(`(?i)\btoday\b`)
	cashRe      = regexp.MustCompile(`(?i)\bcash\b`)
	qrRe        = regexp.MustCompile(`(?i)\bqr\b`)
)

var intentRules = []intentRule{
	{
		// "email" alone is too common in ordinary chat; the listing intent
		// needs a user noun or a list verb next to it.
		matches: func(m string) bool {
			return emailRe.MatchString(m) && (userWordRe.MatchString(m) || listVerbRe.MatchString(m))
		},
		answer: answerUserEmails,
	},
	{
		matches: func(m string) bool { return inventoryRe.MatchString(m) && todayRe.MatchString(m) },
		answer:  answerInventoryToday,
	},
	{
		matches: func(m string) bool { return cashRe.MatchString(m) && qrRe.MatchString(m) },
		answer:  answerCashVsQR,
	},
}

// routeIntent runs the special-case handlers. ok is false when no rule
// matched and the message should go to the AI model instead.
func (h *Analytics) routeIntent(ctx context.Context, message string, agg *analytics.Aggregates) (string, bool) {
	for _, rule := range intentRules {
		if rule.matches(message) {
			return rule.answer(ctx, h, agg), true
		}
	}
	return "", false
}

func answerUserEmails(ctx context.Context, h *Analytics, _ *analytics.Aggregates) string {
	emails, err := fetchUserEmails(ctx, h.DB, userEmailLimit)
	if err != nil {
		return fmt.Sprintf("I could not read the user list right now.\n\nError: %v", err)
	}
	if len(emails) == 0 {
		return "No user accounts found."
	}
	lines := make([]string, 0, len(emails)+1)
	lines = append(lines, fmt.Sprintf("Registered user emails (%d):", len(emails)))
	for _, email := range emails {
		lines = append(lines, "- "+email)
	}
	return strings.Join(lines, "\n")
}

// answerInventoryToday prefers the delta log, falls back to the items whose
// rows were touched today, and finally to a clear not-found message.
func answerInventoryToday(ctx context.Context, h *Analytics, _ *analytics.Aggregates) string {
	if activity, ok := fetchInventoryToday(ctx, h.DB); ok && len(activity) > 0 {
		lines := []string{"Inventory changes today:"}
		for _, entry := range activity {
			lines = append(lines, fmt.Sprintf("- %s: %+d", entry.Name, entry.Change))
		}
		return strings.Join(lines, "\n")
	}

	if items := fetchItemsUpdatedToday(ctx, h.DB); len(items) > 0 {
		lines := []string{"Items updated today (current stock, no change log available):"}
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s: %d in stock", item.Name, item.Stock))
		}
		return strings.Join(lines, "\n")
	}

	return "No inventory activity found for today."
}

func answerCashVsQR(_ context.Context, _ *Analytics, agg *analytics.Aggregates) string {
	total := agg.TotalPayments()
	if total == 0 {
		return fmt.Sprintf("No payments were recorded in the last %d days.", agg.ShortDays)
	}

	cash := agg.Payments["CASH"]
	qr := agg.Payments["QR"]
	other := total - cash - qr

	msg := fmt.Sprintf("In the last %d days: CASH %d orders (%.1f%%), QR %d orders (%.1f%%)",
		agg.ShortDays, cash, pctOf(cash, total), qr, pctOf(qr, total))
	if other > 0 {
		msg += fmt.Sprintf(", other methods %d orders (%.1f%%)", other, pctOf(other, total))
	}
	return msg + "."
}

func pctOf(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
