package jsoncodec

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalizeSortsKeys(t *testing.T) {
	out, err := (Codec{}).Canonicalize(context.Background(), []byte(`{"b":1, "a":2}`))
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	expected := `{"a":2,"b":1}`
	if string(out) != expected {
		t.Fatalf("expected %s, got %s", expected, string(out))
	}
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	input := []byte(`{"b":1,"a":2}`)
	if _, err := (Codec{}).Canonicalize(context.Background(), input); err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	if string(input) != `{"b":1,"a":2}` {
		t.Fatalf("input was mutated: %s", input)
	}
}

func TestCanonicalizeRejectsInvalid(t *testing.T) {
	if _, err := (Codec{}).Canonicalize(context.Background(), []byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for truncated input")
	}
}

func TestDecode(t *testing.T) {
	value, err := (Codec{}).Decode([]byte(`{"type":"object","required":["id"],"maxProperties":3}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := map[string]any{
		"type":          "object",
		"required":      []any{"id"},
		"maxProperties": 3.0,
	}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Fatalf("unexpected value (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []string{
		`{"a":1`,
		`not json`,
		`{"a":1,"a":2}`,
		``,
	}
	for _, input := range tests {
		if _, err := (Codec{}).Decode([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestIndentKeepsContent(t *testing.T) {
	input := []byte(`{"b":1,"a":[true]}`)
	out, err := (Codec{}).Indent(input)
	if err != nil {
		t.Fatalf("Indent returned error: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"b\"") {
		t.Fatalf("expected indented output, got %q", out)
	}
	if strings.Index(string(out), `"b"`) > strings.Index(string(out), `"a"`) {
		t.Fatalf("expected member order to be kept, got %q", out)
	}

	want, _ := (Codec{}).Canonicalize(context.Background(), input)
	got, err := (Codec{}).Canonicalize(context.Background(), out)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeSortsNames(t *testing.T) {
	out, err := (Codec{}).Encode(map[string]any{"z": 1, "a": "x"})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if strings.Index(string(out), `"a"`) > strings.Index(string(out), `"z"`) {
		t.Fatalf("expected sorted names, got %q", out)
	}
}
