package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func invokeRefund(t *testing.T, input map[string]any) map[string]any {
	t.Helper()
	raw, err := Refund{}.Invoke(context.Background(), input)
	require.NoError(t, err)
	output, ok := raw.(map[string]any)
	require.True(t, ok)
	return output
}

func TestRefundApprovesWithinPolicy(t *testing.T) {
	output := invokeRefund(t, map[string]any{
		"text":          "I'd like a refund for my order",
		"order_id":      "ORD123",
		"amount":        99.99,
		"purchase_date": time.Now().AddDate(0, 0, -5).Format(time.RFC3339),
	})

	require.Equal(t, "refund_request", output["intent"])
	require.Equal(t, "approved", output["decision"])
	require.Equal(t, true, output["success"])
	require.Contains(t, output["response"], "approved")

	audit, ok := output["audit_trail"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"timestamp", "action", "decision", "reason"} {
		require.Contains(t, audit, field)
	}
}

func TestRefundDecisionRules(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -2).Format(time.RFC3339)

	tests := []struct {
		name     string
		input    map[string]any
		decision string
	}{
		{
			name:     "missing order id",
			input:    map[string]any{"text": "refund", "amount": 50.0, "purchase_date": recent},
			decision: "denied",
		},
		{
			name:     "zero amount",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": 0.0},
			decision: "denied",
		},
		{
			name:     "negative amount",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": -10.0},
			decision: "denied",
		},
		{
			name:     "over escalation threshold",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": 1500.0},
			decision: "escalated",
		},
		{
			name:     "over refund limit",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": 750.0},
			decision: "denied",
		},
		{
			name:     "bad purchase date",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": 50.0, "purchase_date": "yesterday"},
			decision: "denied",
		},
		{
			name: "expired window",
			input: map[string]any{
				"text": "refund", "order_id": "ORD1", "amount": 50.0,
				"purchase_date": time.Now().AddDate(0, 0, -45).Format(time.RFC3339),
			},
			decision: "denied",
		},
		{
			name:     "in policy",
			input:    map[string]any{"text": "refund", "order_id": "ORD1", "amount": 50.0, "purchase_date": recent},
			decision: "approved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := invokeRefund(t, tt.input)
			require.Equal(t, tt.decision, output["decision"])
		})
	}
}

func TestRefundIntentClassification(t *testing.T) {
	tests := []struct {
		text   string
		intent string
	}{
		{"I want my money back", "refund_request"},
		{"please refund me", "refund_request"},
		{"I'd like to return this item", "return_request"},
		{"cancel my subscription", "cancellation_request"},
		{"what are your opening hours", "general_inquiry"},
	}
	for _, tt := range tests {
		output := invokeRefund(t, map[string]any{"text": tt.text})
		require.Equal(t, tt.intent, output["intent"], tt.text)
	}
}

func TestFuncAdapter(t *testing.T) {
	fn := Func{
		AgentName: "static",
		Fn: func(_ context.Context, input map[string]any) (any, error) {
			return map[string]any{"echo": input["text"]}, nil
		},
	}
	require.Equal(t, "static", fn.Name())

	raw, err := fn.Invoke(context.Background(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"echo": "hi"}, raw)
}
