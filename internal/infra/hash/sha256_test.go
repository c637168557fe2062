package hash

import "testing"

func TestDigest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: ``, want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{input: `{}`, want: "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"},
	}
	for _, tt := range tests {
		if got := (SHA256{}).Digest([]byte(tt.input)); got != tt.want {
			t.Fatalf("Digest(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDigestDiffersForWhitespace(t *testing.T) {
	compact := SHA256{}.Digest([]byte(`{"type":"object"}`))
	spaced := SHA256{}.Digest([]byte(`{"type": "object"}`))
	if compact == spaced {
		t.Fatalf("expected raw bytes to be digested as-is")
	}
}
