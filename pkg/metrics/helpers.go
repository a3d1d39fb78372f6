package metrics

import "fmt"

func fieldOf(data map[string]any, name string) (any, bool) {
	if data == nil {
		return nil, false
	}
	value, ok := data[name]
	return value, ok
}

func mapField(data map[string]any, name string) (map[string]any, bool) {
	value, ok := fieldOf(data, name)
	if !ok {
		return nil, false
	}
	nested, ok := value.(map[string]any)
	return nested, ok
}

func boolField(data map[string]any, name string) bool {
	value, _ := fieldOf(data, name)
	flag, _ := value.(bool)
	return flag
}

func numberField(data map[string]any, name string) (float64, bool) {
	value, ok := fieldOf(data, name)
	if !ok {
		return 0, false
	}
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// stringify folds numerically equal values (42 vs 42.0 after a JSON round
// trip) onto one representation so set comparisons behave.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// pairF1 computes precision, recall and F1 over (key, value) pairs of two
// maps. Both empty counts as a perfect match.
func pairF1(predicted, expected map[string]any) (f1, precision, recall float64) {
	if len(expected) == 0 {
		if len(predicted) == 0 {
			return 1, 1, 1
		}
		return 0, 1, 1
	}

	expectedSet := make(map[string]struct{}, len(expected))
	for key, value := range expected {
		expectedSet[key+"="+stringify(value)] = struct{}{}
	}

	truePositives := 0
	for key, value := range predicted {
		if _, ok := expectedSet[key+"="+stringify(value)]; ok {
			truePositives++
		}
	}

	if len(predicted) > 0 {
		precision = float64(truePositives) / float64(len(predicted))
	}
	recall = float64(truePositives) / float64(len(expected))

	if precision+recall == 0 {
		return 0, precision, recall
	}
	return 2 * precision * recall / (precision + recall), precision, recall
}
