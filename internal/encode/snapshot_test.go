package encode

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/go-toon/toon/internal/value"
)

// TestEncodeGoldenScenarios snapshots encoder output under default options
// for the scenario inputs S1-S5 (so S4 is rendered unfolded), a root
// array, and the structural boundary cases, the same golden-file idiom the
// teacher uses for its fixture output.
func TestEncodeGoldenScenarios(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
	}{
		{"S1_flat_object", obj("name", value.Str("Alice"), "age", value.Int(30))},
		{"S2_tagged_array", obj("tags", list(value.Str("elixir"), value.Str("toon")))},
		{"S3_tabular_array", obj("users", list(
			obj("id", value.Int(1), "name", value.Str("A")),
			obj("id", value.Int(2), "name", value.Str("B")),
		))},
		{"S4_nested_object", obj("a", obj("b", obj("c", value.Int(1))))},
		{"S5_mixed_list", obj("items", list(list(), list(value.Int(42)), list()))},
		{"root_array", list(value.Int(1), value.Int(2), value.Int(3))},
		{"boundary_empty_list", obj("items", list())},
		{"boundary_empty_object", obj("nested", value.ObjVal(value.NewObj()))},
	}

	for _, c := range cases {
		got, err := Encode(c.v, DefaultOptions())
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		snaps.MatchSnapshot(t, c.name, got)
	}
}
