package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"agentgauge/pkg/core"
)

// Load reads test cases from a JSON file holding either a single test case
// object or an array of them. Ids are not checked for uniqueness.
func Load(path string) ([]core.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	cases, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return cases, nil
}

// FromJSON decodes a single test case or an array of test cases.
func FromJSON(data []byte) ([]core.TestCase, error) {
	var cases []core.TestCase
	if err := json.Unmarshal(data, &cases); err == nil {
		return cases, validate(cases)
	}

	var single core.TestCase
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("expected a test case object or array: %w", err)
	}
	cases = []core.TestCase{single}
	return cases, validate(cases)
}

func validate(cases []core.TestCase) error {
	for i, tc := range cases {
		if tc.ID == "" {
			return fmt.Errorf("test case %d: missing id", i)
		}
		if tc.Input == nil {
			return fmt.Errorf("test case %q: missing input", tc.ID)
		}
		if tc.GroundTruth == nil {
			return fmt.Errorf("test case %q: missing ground_truth", tc.ID)
		}
	}
	return nil
}

// Save writes test cases as an indented JSON array, creating parent
// directories as needed.
func Save(cases []core.TestCase, path string) error {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
