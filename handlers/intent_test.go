package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cafeteria-analytics/analytics"
)

func TestIntentRulePrecedence(t *testing.T) {
	// Emails outrank inventory which outranks cash-vs-QR.
	assert.True(t, intentRules[0].matches("list user emails"))
	assert.True(t, intentRules[0].matches("show me the email of every user"))
	assert.True(t, intentRules[0].matches("customer emails please"))
	assert.False(t, intentRules[0].matches("how are sales going"))

	// "email" in ordinary chat is not the listing intent.
	assert.False(t, intentRules[0].matches("did we email the supplier?"))
	assert.False(t, intentRules[0].matches("send an email about the promotion"))

	assert.True(t, intentRules[1].matches("what changed in inventory today?"))
	assert.True(t, intentRules[1].matches("stock updates today"))
	assert.False(t, intentRules[1].matches("inventory last week"))
	assert.False(t, intentRules[1].matches("what happened today"))

	assert.True(t, intentRules[2].matches("cash vs qr payments"))
	assert.False(t, intentRules[2].matches("how much cash did we take"))
}

func TestRouteIntentFallsThroughToAI(t *testing.T) {
	h := &Analytics{}
	agg := analytics.EmptyAggregates(7, 30)

	_, ok := h.routeIntent(context.Background(), "what were my best sellers?", agg)
	assert.False(t, ok)
}

func TestAnswerCashVsQR(t *testing.T) {
	agg := analytics.EmptyAggregates(7, 30)
	agg.Payments = map[string]int{"CASH": 7, "QR": 3}

	answer := answerCashVsQR(context.Background(), nil, agg)
	assert.Contains(t, answer, "CASH 7 orders (70.0%)")
	assert.Contains(t, answer, "QR 3 orders (30.0%)")
	assert.NotContains(t, answer, "other methods")
}

func TestAnswerCashVsQROther(t *testing.T) {
	agg := analytics.EmptyAggregates(14, 14)
	agg.Payments = map[string]int{"CASH": 5, "QR": 3, "CARD": 2}

	answer := answerCashVsQR(context.Background(), nil, agg)
	assert.Contains(t, answer, "In the last 14 days")
	assert.Contains(t, answer, "other methods 2 orders (20.0%)")
}

func TestAnswerCashVsQRNoPayments(t *testing.T) {
	agg := analytics.EmptyAggregates(7, 30)
	answer := answerCashVsQR(context.Background(), nil, agg)
	assert.Equal(t, "No payments were recorded in the last 7 days.", answer)
}
