package toon

import (
	"testing"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/normalize"
	"github.com/go-toon/toon/internal/value"
)

func obj(pairs ...any) Value {
	o := NewObj()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return value.ObjVal(o)
}

func list(vs ...Value) Value {
	return value.List(vs)
}

// TestRoundTripProperty covers universal property 1: decode(encode(v,o),o')
// == v when delimiters/indent agree, o' is strict, and key folding is off.
func TestRoundTripProperty(t *testing.T) {
	cases := []Value{
		obj("age", value.Int(30), "name", value.Str("Alice")),
		obj("tags", list(value.Str("elixir"), value.Str("toon"))),
		obj("users", list(
			obj("id", value.Int(1), "name", value.Str("A")),
			obj("id", value.Int(2), "name", value.Str("B")),
		)),
		obj("items", list(list(), list(value.Int(42)), list())),
		list(value.Int(1), value.Int(2), value.Int(3)),
		value.Str("hello"),
		value.Null(),
		value.Bool(true),
		value.Float(3.5),
	}
	for i, v := range cases {
		doc, err := Encode(v)
		if err != nil {
			t.Fatalf("case %d: encode: %v", i, err)
		}
		got, err := Decode(doc, WithStrict(true), WithIndentSize(2))
		if err != nil {
			t.Fatalf("case %d: decode %q: %v", i, doc, err)
		}
		if !value.Equal(got, v) {
			t.Fatalf("case %d: round trip mismatch: doc %q, got %s, want %s", i, doc, got, v)
		}
	}
}

// TestNormalizationIdempotence covers universal property 2: normalizing a
// value that is already normalized (here, its plain-Go projection) leaves
// it unchanged.
func TestNormalizationIdempotence(t *testing.T) {
	v := map[string]any{"name": "Alice", "ratio": 2.0, "tags": []any{"a", "b"}}
	once, err := normalize.Normalize(v, normalize.Options{})
	if err != nil {
		t.Fatal(err)
	}
	twice, err := normalize.Normalize(ToGoValue(once), normalize.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(once, twice) {
		t.Fatalf("normalizing an already normalized value changed it: %s vs %s", once, twice)
	}
}

// TestEncodeDeterminism covers universal property 3: for fixed options,
// Encode is a pure function of v.
func TestEncodeDeterminism(t *testing.T) {
	v := obj("b", value.Int(2), "a", value.Int(1))
	first, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := Encode(v)
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("iteration %d: got %q, want %q", i, got, first)
		}
	}
}

// TestQuotingAdequacy covers universal property 4: every string that
// NeedsQuoteValue flags survives an encode/decode round trip unchanged.
func TestQuotingAdequacy(t *testing.T) {
	candidates := []string{
		"", "true", "false", "null", "123", "-5", "3.14",
		" leading", "trailing ", "has,comma", "has:colon",
		"has\nnewline", "has\ttab", `has"quote`, "-leadingdash",
	}
	for _, s := range candidates {
		if !guard.NeedsQuoteValue(s, ',') {
			continue
		}
		doc, err := Encode(value.Str(s))
		if err != nil {
			t.Fatalf("%q: encode: %v", s, err)
		}
		got, err := Decode(doc)
		if err != nil {
			t.Fatalf("%q: decode %q: %v", s, doc, err)
		}
		if got.Kind() != value.KindStr || got.Str() != s {
			t.Fatalf("%q: round trip produced %s, want Str(%q)", s, got, s)
		}
	}
}

// TestLengthHeaderAccuracy covers universal property 5: the count inside
// an array's [N] header equals the number of elements actually emitted.
func TestLengthHeaderAccuracy(t *testing.T) {
	v := obj("tags", list(value.Str("a"), value.Str("b"), value.Str("c")))
	doc, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "tags[3]: a,b,c"
	if doc != want {
		t.Fatalf("got %q, want %q", doc, want)
	}
}

// TestPathExpansionRoundTripsKeyFolding covers universal property 6: a
// document folded with key_folding "safe" round-trips through a decoder
// configured with expand_paths "safe", provided no literal dotted key
// collides with a fold target at the same level.
func TestPathExpansionRoundTripsKeyFolding(t *testing.T) {
	v := obj("a", obj("b", obj("c", value.Int(1))))
	doc, err := Encode(v, WithKeyFolding(true))
	if err != nil {
		t.Fatal(err)
	}
	if doc != "a.b.c: 1" {
		t.Fatalf("got %q, want %q", doc, "a.b.c: 1")
	}
	got, err := Decode(doc, WithExpandPaths(true))
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, v) {
		t.Fatalf("got %s, want %s", got, v)
	}
}

func TestBoundaryEmptyDocument(t *testing.T) {
	got, err := Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindObj || got.Obj().Len() != 0 {
		t.Fatalf("got %s, want {}", got)
	}
}

func TestBoundaryWhitespaceOnlyDocument(t *testing.T) {
	got, err := Decode("  \n\n ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindObj || got.Obj().Len() != 0 {
		t.Fatalf("got %s, want {}", got)
	}
}

func TestBoundaryEmptyListInObject(t *testing.T) {
	doc, err := Encode(obj("items", list()))
	if err != nil {
		t.Fatal(err)
	}
	if doc != "items[0]:" {
		t.Fatalf("got %q, want items[0]:", doc)
	}
}

func TestBoundaryEmptyObjectInObject(t *testing.T) {
	doc, err := Encode(obj("nested", value.ObjVal(value.NewObj())))
	if err != nil {
		t.Fatal(err)
	}
	if doc != "nested:" {
		t.Fatalf("got %q, want nested:", doc)
	}
}

func TestBoundaryAmbiguousNumericStrings(t *testing.T) {
	cases := []struct {
		token string
		want  Value
	}{
		{"05", value.Str("05")},
		{"-0", value.Int(0)},
		{"3.0", value.Int(3)},
		{"3e2", value.Int(300)},
	}
	for _, c := range cases {
		got, err := Decode(c.token)
		if err != nil {
			t.Fatalf("%q: %v", c.token, err)
		}
		if !value.Equal(got, c.want) {
			t.Fatalf("%q: got %s, want %s", c.token, got, c.want)
		}
	}
}

func TestScenarioS1(t *testing.T) {
	v := obj("name", value.Str("Alice"), "age", value.Int(30))
	got, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	if got != "age: 30\nname: Alice" {
		t.Fatalf("got %q", got)
	}
}

func TestScenarioS6(t *testing.T) {
	got, err := Decode("a.b: 1\na.c: 2", WithExpandPaths(true))
	if err != nil {
		t.Fatal(err)
	}
	want := obj("a", obj("b", value.Int(1), "c", value.Int(2)))
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestEncodeNativeGoValues(t *testing.T) {
	type User struct {
		ID   int    `toon:"id"`
		Name string `toon:"name"`
	}
	got, err := Encode(map[string]any{
		"users": []User{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "users[2]{id,name}:\n  1,A\n  2,B"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type stubHook struct {
	events []HookEvent
}

func (h *stubHook) OnEvent(event HookEvent, info HookInfo) {
	h.events = append(h.events, event)
}

func TestHookFiresAroundEncodeAndDecode(t *testing.T) {
	h := &stubHook{}
	if _, err := Encode(obj("a", value.Int(1)), WithHook(h)); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode("a: 1", WithDecodeHook(h)); err != nil {
		t.Fatal(err)
	}
	want := []HookEvent{EventEncodeStart, EventEncodeStop, EventDecodeStart, EventDecodeStop}
	if len(h.events) != len(want) {
		t.Fatalf("got %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Fatalf("got %v, want %v", h.events, want)
		}
	}
}

func TestHookFiresOnDecodeException(t *testing.T) {
	h := &stubHook{}
	if _, err := Decode("tags[2]: a", WithDecodeHook(h)); err == nil {
		t.Fatal("expected a decode error")
	}
	want := []HookEvent{EventDecodeStart, EventDecodeException}
	if len(h.events) != len(want) {
		t.Fatalf("got %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Fatalf("got %v, want %v", h.events, want)
		}
	}
}

type failingEncodable struct{}

func (failingEncodable) ToonEncode() (any, error) {
	return nil, errFailingEncodable
}

var errFailingEncodable = &stubError{"encodable refused to project itself"}

type stubError struct{ msg string }

func (e *stubError) Error() string { return e.msg }

func TestMustEncodePanicsWhenEncodableFails(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	MustEncode(failingEncodable{})
}

func TestMustDecodePanicsOnMalformedDocument(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	MustDecode("tags[2]: a")
}
