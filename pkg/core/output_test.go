package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMapPassesThrough(t *testing.T) {
	raw := map[string]any{"intent": "refund_request"}
	output, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, Output(raw), output)
}

func TestNormalizeStringBecomesResponse(t *testing.T) {
	output, err := Normalize("hello there")
	require.NoError(t, err)
	require.Equal(t, Output{"response": "hello there"}, output)
}

func TestNormalizeStructRoundTrips(t *testing.T) {
	type reply struct {
		Intent   string  `json:"intent"`
		Decision string  `json:"decision"`
		Amount   float64 `json:"amount"`
	}

	output, err := Normalize(reply{Intent: "refund_request", Decision: "approved", Amount: 42})
	require.NoError(t, err)
	require.Equal(t, "refund_request", output.StringField("intent"))
	require.Equal(t, "approved", output.StringField("decision"))
	require.Equal(t, 42.0, output.Field("amount"))
}

func TestNormalizeNil(t *testing.T) {
	output, err := Normalize(nil)
	require.NoError(t, err)
	require.Empty(t, output)
}

func TestNormalizeRejectsNonMapShapes(t *testing.T) {
	_, err := Normalize([]string{"a", "b"})
	require.Error(t, err)

	_, err = Normalize(42)
	require.Error(t, err)
}

func TestOutputFieldAccessors(t *testing.T) {
	output := Output{"intent": "x", "amount": 3.5}
	require.Equal(t, "x", output.StringField("intent"))
	require.Equal(t, "", output.StringField("amount"))
	require.Nil(t, output.Field("missing"))

	var empty Output
	require.Nil(t, empty.Field("anything"))
	require.Equal(t, "", empty.StringField("anything"))
}
