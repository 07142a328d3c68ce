package sessionlog

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestLineRingKeepsNewest(t *testing.T) {
	t.Parallel()

	r := NewLineRing(3)
	if got := r.Lines(); len(got) != 0 {
		t.Fatalf("expected empty ring, got %v", got)
	}
	for i := 1; i <= 5; i++ {
		r.Push(fmt.Sprint(i))
	}
	got := strings.Join(r.Lines(), ",")
	if got != "3,4,5" {
		t.Fatalf("expected 3,4,5, got %s", got)
	}
}

func TestLineRingPartial(t *testing.T) {
	t.Parallel()

	r := NewLineRing(4)
	r.Push("a")
	r.Push("b")
	if got := strings.Join(r.Lines(), ","); got != "a,b" {
		t.Fatalf("expected a,b, got %s", got)
	}
}

func TestParseUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		tokens int64
		ok     bool
	}{
		{`{"usage":{"totalTokens":100}}`, 100, true},
		{`{"role":"user","usage":{"totalTokens":42,"input":40}}`, 42, true},
		{`{"usage":{}}`, 0, false},
		{`{"message":"hi"}`, 0, false},
		{`{"usage":null}`, 0, false},
		{`not json`, 0, false},
		{`{"usage":{"totalTokens":"lots"}}`, 0, false},
		{`{"usage":{"totalTokens":12.9}}`, 12, true},
		{`{"usage":{"totalTokens":-5}}`, 0, true},
		{`{"usage":{"totalTokens":1e30}}`, math.MaxInt64, true},
	}

	for _, tt := range tests {
		tokens, ok := ParseUsage(tt.line)
		if tokens != tt.tokens || ok != tt.ok {
			t.Errorf("ParseUsage(%q) = %d, %v; want %d, %v", tt.line, tokens, ok, tt.tokens, tt.ok)
		}
	}
}

func TestEstimateTokensSkipsMalformed(t *testing.T) {
	t.Parallel()

	log := `{"usage":{"totalTokens":100}}
{broken
{"usage":{"totalTokens":100}}
`
	total, err := EstimateTokens(strings.NewReader(log), DefaultTailLines)
	if err != nil {
		t.Fatalf("EstimateTokens failed: %v", err)
	}
	if total != 200 {
		t.Fatalf("expected 200 tokens, got %d", total)
	}
}

func TestEstimateTokensSaturates(t *testing.T) {
	t.Parallel()

	log := `{"usage":{"totalTokens":1e30}}
{"usage":{"totalTokens":9e18}}
{"usage":{"totalTokens":1}}
`
	total, err := EstimateTokens(strings.NewReader(log), DefaultTailLines)
	if err != nil {
		t.Fatalf("EstimateTokens failed: %v", err)
	}
	if total != math.MaxInt64 {
		t.Fatalf("expected saturated total, got %d", total)
	}
}

func TestEstimateTokensOnlyCountsTail(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString(`{"usage":{"totalTokens":1}}` + "\n")
	}
	b.WriteString("\n\n")
	b.WriteString(`{"usage":{"totalTokens":1000}}`) // no trailing newline

	total, err := EstimateTokens(strings.NewReader(b.String()), 20)
	if err != nil {
		t.Fatalf("EstimateTokens failed: %v", err)
	}
	if total != 1000+19 {
		t.Fatalf("expected 1019 tokens, got %d", total)
	}
}

func TestSessionFileNames(t *testing.T) {
	t.Parallel()

	if !IsSessionFile("abc.jsonl") {
		t.Fatal("expected abc.jsonl to be a session file")
	}
	for _, name := range []string{".jsonl", "abc.json", "abc.jsonl.bak"} {
		if IsSessionFile(name) {
			t.Fatalf("did not expect %q to be a session file", name)
		}
	}
	if got := SessionIDFromFilename("abc-123.jsonl"); got != "abc-123" {
		t.Fatalf("expected abc-123, got %q", got)
	}
}
