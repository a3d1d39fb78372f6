package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// renderRequest flattens the test-case input into a prompt for LLM agents.
func renderRequest(input map[string]any) string {
	if text, ok := input["text"].(string); ok && len(input) == 1 {
		return text
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(raw)
}

// parseCompletion turns a model completion into an agent output map. JSON
// replies keep their structure; anything else becomes a plain response field.
// Markdown code fences around the JSON are tolerated.
func parseCompletion(content string, latency time.Duration) map[string]any {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	output := make(map[string]any)
	if err := json.Unmarshal([]byte(trimmed), &output); err != nil {
		output = map[string]any{"response": content}
	}
	if _, ok := output["response"]; !ok {
		output["response"] = content
	}
	output["latency_ms"] = float64(latency) / float64(time.Millisecond)
	output["success"] = true
	return output
}
