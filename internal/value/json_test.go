package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/loomdb/loom/internal/value"
)

func TestFromJSON(t *testing.T) {
	big, err := value.NewBigintFromString("123456789012345678901234567890")
	require.NoError(t, err)

	tests := []struct {
		name string
		json string
		want value.Value
	}{
		{"long", `42`, value.NewLongValue(42)},
		{"double", `1.5`, value.NewDoubleValue(1.5)},
		{"big integer", `123456789012345678901234567890`, big},
		{"string", `"héllo"`, value.NewTextValue("héllo")},
		{"escaped string", `"a\nb"`, value.NewTextValue("a\nb")},
		{"bool", `true`, value.NewBoolValue(true)},
		{"array", `[1, "two", false]`, value.NewSequenceValue([]value.Value{
			value.NewLongValue(1), value.NewTextValue("two"), value.NewBoolValue(false),
		})},
		{"object", `{"a": 1, "b": [2]}`, value.NewMapValue([]value.Pair{
			{Key: value.NewTextValue("a"), Value: value.NewLongValue(1)},
			{Key: value.NewTextValue("b"), Value: value.NewSequenceValue([]value.Value{value.NewLongValue(2)})},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := value.FromJSON([]byte(tt.json))
			require.NoError(t, err)
			require.True(t, value.Equal(tt.want, got),
				cmp.Diff(tt.want.String(), got.String()))
		})
	}
}

func TestFromJSONRejectsNull(t *testing.T) {
	_, err := value.FromJSON([]byte(`{"a": null}`))
	require.Error(t, err)
}
