package encode

import (
	"testing"

	"github.com/go-toon/toon/internal/value"
)

func obj(pairs ...any) value.Value {
	o := value.NewObj()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.ObjVal(o)
}

func list(vs ...value.Value) value.Value {
	return value.List(vs)
}

func TestEncodeScenarioS1(t *testing.T) {
	v := obj("name", value.Str("Alice"), "age", value.Int(30))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "age: 30\nname: Alice"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeScenarioS2(t *testing.T) {
	v := obj("tags", list(value.Str("elixir"), value.Str("toon")))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "tags[2]: elixir,toon"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeScenarioS3(t *testing.T) {
	v := obj("users", list(
		obj("id", value.Int(1), "name", value.Str("A")),
		obj("id", value.Int(2), "name", value.Str("B")),
	))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "users[2]{id,name}:\n  1,A\n  2,B"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeScenarioS4KeyFolding(t *testing.T) {
	inner := obj("c", value.Int(1))
	mid := obj("b", inner)
	outer := obj("a", mid)

	opts := DefaultOptions()
	opts.KeyFolding = true
	got, err := Encode(outer, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "a.b.c: 1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeScenarioS5NestedEmptyLists(t *testing.T) {
	v := obj("items", list(list(), list(value.Int(42)), list()))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "items[3]:\n  - [0]:\n  - [1]: 42\n  - [0]:"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeEmptyListInObject(t *testing.T) {
	v := obj("items", list())
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got != "items[0]:" {
		t.Fatalf("got %q, want items[0]:", got)
	}
}

func TestEncodeEmptyObjectInObject(t *testing.T) {
	v := obj("nested", value.ObjVal(value.NewObj()))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got != "nested:" {
		t.Fatalf("got %q, want nested:", got)
	}
}

func TestEncodeKeyFoldingCollisionGuard(t *testing.T) {
	root := value.NewObj()
	root.Set("a.b", value.Str("literal"))
	inner := obj("b", value.Int(1))
	root.Set("a", inner)

	opts := DefaultOptions()
	opts.KeyFolding = true
	got, err := Encode(value.ObjVal(root), opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "a:\n  b: 1\n\"a.b\": literal"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeQuotedStrings(t *testing.T) {
	v := obj("note", value.Str("  leading space"))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := `note: "  leading space"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeDelimiterPipe(t *testing.T) {
	v := obj("tags", list(value.Str("a"), value.Str("b,c")))
	opts := DefaultOptions()
	opts.Delimiter = '|'
	got, err := Encode(v, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "tags[2|]: a|b,c"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeLengthMarker(t *testing.T) {
	v := obj("tags", list(value.Str("a"), value.Str("b")))
	opts := DefaultOptions()
	opts.LengthMarker = "#"
	got, err := Encode(v, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "tags[#2]: a,b"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeKeyOrderRoot(t *testing.T) {
	v := obj("b", value.Int(2), "a", value.Int(1))
	opts := DefaultOptions()
	opts.KeyOrder = func(path []string, keys []string) []string {
		if len(path) == 0 {
			return []string{"b", "a"}
		}
		return nil
	}
	got, err := Encode(v, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "b: 2\na: 1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeRootArray(t *testing.T) {
	v := list(value.Int(1), value.Int(2), value.Int(3))
	got, err := Encode(v, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got != "[3]: 1,2,3" {
		t.Fatalf("got %q, want [3]: 1,2,3", got)
	}
}

func TestEncodeRootPrimitive(t *testing.T) {
	got, err := Encode(value.Str("hello"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want hello", got)
	}
}
