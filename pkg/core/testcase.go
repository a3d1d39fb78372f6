package core

// TestCase is a single labeled input/expected-output pair.
// Instances are treated as immutable once loaded.
type TestCase struct {
	ID          string         `json:"id"`
	Input       map[string]any `json:"input"`
	GroundTruth map[string]any `json:"ground_truth"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// HasTag reports whether the test case carries the given tag.
func (t TestCase) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
