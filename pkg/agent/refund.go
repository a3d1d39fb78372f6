package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Business rules for the example refund workflow.
const (
	MaxRefundAmount     = 500.0
	MaxRefundDays       = 30
	EscalationThreshold = 1000.0
)

// Refund is a deterministic example customer-service agent that handles
// refund requests. It exercises all five evaluation layers: intent and
// entity extraction, decisions, latency, policy rules and an audit trail.
type Refund struct{}

func (Refund) Name() string { return "refund-agent" }

func (r Refund) Invoke(_ context.Context, input map[string]any) (any, error) {
	start := time.Now()

	intent := extractIntent(input)
	entities := extractEntities(input)
	decision, reason := makeDecision(entities)
	response := generateResponse(decision, entities, reason)

	timestamp := start.UTC().Format(time.RFC3339)
	audit := map[string]any{
		"timestamp":     timestamp,
		"action":        "refund_request_processed",
		"decision":      decision,
		"reason":        reason,
		"order_id":      entities["order_id"],
		"amount":        entities["amount"],
		"agent_version": "1.0",
	}

	return map[string]any{
		"intent":      intent,
		"decision":    decision,
		"entities":    entities,
		"response":    response,
		"reason":      reason,
		"audit_trail": audit,
		"timestamp":   timestamp,
		"latency_ms":  float64(time.Since(start)) / float64(time.Millisecond),
		"success":     true,
	}, nil
}

func extractIntent(input map[string]any) string {
	text, _ := input["text"].(string)
	text = strings.ToLower(text)

	switch {
	case strings.Contains(text, "refund") || strings.Contains(text, "money back"):
		return "refund_request"
	case strings.Contains(text, "return"):
		return "return_request"
	case strings.Contains(text, "cancel"):
		return "cancellation_request"
	default:
		return "general_inquiry"
	}
}

func extractEntities(input map[string]any) map[string]any {
	entities := make(map[string]any)
	for _, key := range []string{"order_id", "amount", "purchase_date", "reason", "customer_id"} {
		if value, ok := input[key]; ok && value != nil {
			entities[key] = value
		}
	}
	return entities
}

func makeDecision(entities map[string]any) (decision, reason string) {
	orderID, _ := entities["order_id"].(string)
	if orderID == "" {
		return "denied", "Missing order ID"
	}

	amount := numberValue(entities["amount"])
	if amount <= 0 {
		return "denied", "Invalid amount"
	}
	if amount > EscalationThreshold {
		return "escalated", fmt.Sprintf("Amount $%v exceeds escalation threshold", amount)
	}
	if amount > MaxRefundAmount {
		return "denied", fmt.Sprintf("Amount $%v exceeds maximum refund limit of $%v", amount, MaxRefundAmount)
	}

	if dateStr, ok := entities["purchase_date"].(string); ok && dateStr != "" {
		purchased, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return "denied", "Invalid purchase date format"
		}
		if time.Since(purchased) > MaxRefundDays*24*time.Hour {
			return "denied", fmt.Sprintf("Purchase date exceeds %d-day refund window", MaxRefundDays)
		}
	}

	return "approved", "Refund approved within policy guidelines"
}

func generateResponse(decision string, entities map[string]any, reason string) string {
	amount := entities["amount"]
	orderID, _ := entities["order_id"].(string)
	if orderID == "" {
		orderID = "N/A"
	}

	switch decision {
	case "approved":
		return fmt.Sprintf("Your refund of $%v for order %s has been approved. You will receive the refund within 5-7 business days.", amount, orderID)
	case "denied":
		return fmt.Sprintf("We're unable to process your refund for order %s. Reason: %s", orderID, reason)
	case "escalated":
		return fmt.Sprintf("Your refund request for order %s has been escalated to our specialist team. You will hear back within 24 hours.", orderID)
	default:
		return "We're processing your request. Please check back later."
	}
}

func numberValue(value any) float64 {
	switch n := value.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
