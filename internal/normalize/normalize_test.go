package normalize

import (
	"testing"

	"github.com/go-toon/toon/internal/value"
)

func norm(t *testing.T, v any) value.Value {
	t.Helper()
	got, err := Normalize(v, Options{})
	if err != nil {
		t.Fatalf("Normalize(%#v) error: %v", v, err)
	}
	return got
}

func TestNormalizePrimitives(t *testing.T) {
	if got := norm(t, nil); got.Kind() != value.KindNull {
		t.Errorf("nil -> %v, want Null", got.Kind())
	}
	if got := norm(t, true); got.Kind() != value.KindBool || !got.Bool() {
		t.Errorf("true -> %v", got)
	}
	if got := norm(t, 42); got.Kind() != value.KindInt || got.Int() != 42 {
		t.Errorf("42 -> %v", got)
	}
	if got := norm(t, "hi"); got.Kind() != value.KindStr || got.Str() != "hi" {
		t.Errorf("hi -> %v", got)
	}
	if got := norm(t, 3.0); got.Kind() != value.KindInt || got.Int() != 3 {
		t.Errorf("3.0 -> %v, want Int(3)", got)
	}
}

func TestNormalizeSlice(t *testing.T) {
	got := norm(t, []int{1, 2, 3})
	if got.Kind() != value.KindList || len(got.List()) != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestNormalizeMapSortedByKey(t *testing.T) {
	got := norm(t, map[string]int{"b": 2, "a": 1, "c": 3})
	if got.Kind() != value.KindObj {
		t.Fatalf("got %v", got)
	}
	keys := got.Obj().Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("keys = %v, want sorted [a b c]", keys)
	}
}

type person struct {
	Name string `toon:"name"`
	Age  int    `toon:"age"`
	Note string `toon:"note,omitempty"`
	Skip string `toon:"-"`
}

func TestNormalizeStructTags(t *testing.T) {
	got := norm(t, person{Name: "Alice", Age: 30, Skip: "hidden"})
	if got.Kind() != value.KindObj {
		t.Fatalf("got %v", got)
	}
	keys := got.Obj().Keys()
	want := []string{"name", "age"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

type encodableDate struct{ year int }

func (d encodableDate) ToonEncode() (any, error) {
	return "2024-01-01", nil
}

func TestNormalizeEncodableAdapter(t *testing.T) {
	got := norm(t, encodableDate{year: 2024})
	if got.Kind() != value.KindStr || got.Str() != "2024-01-01" {
		t.Fatalf("got %v, want Str(2024-01-01)", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := norm(t, map[string]any{"a": 1, "b": []any{1, 2.0, "x"}})
	second, err := Normalize(first, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(first, second) {
		t.Fatalf("Normalize not idempotent: %v != %v", first, second)
	}
}

func TestNormalizeNilPointer(t *testing.T) {
	var p *int
	got := norm(t, p)
	if got.Kind() != value.KindNull {
		t.Fatalf("nil pointer -> %v, want Null", got)
	}
}
