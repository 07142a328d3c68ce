// Package sessionlog reads agent session logs: append-only files of
// newline-delimited JSON records written by the agent runtimes.
//
// Parsing is best-effort. Only the trailing entries of a file are considered,
// and any entry that is not valid JSON or carries no usage data contributes nothing.
package sessionlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ashureev/agent-dashboard/internal/domain"
)

// Extension is the file suffix of session logs.
const Extension = ".jsonl"

// DefaultTailLines is the number of trailing entries inspected per file.
const DefaultTailLines = 20

type usageEntry struct {
	Usage *struct {
		TotalTokens *float64 `json:"totalTokens"`
	} `json:"usage"`
}

// IsSessionFile reports whether name looks like a session log.
func IsSessionFile(name string) bool {
	return strings.HasSuffix(name, Extension) && len(name) > len(Extension)
}

// SessionIDFromFilename strips the log extension from name.
func SessionIDFromFilename(name string) string {
	return strings.TrimSuffix(name, Extension)
}

// TailLines returns the last n non-blank lines of r, oldest first.
func TailLines(r io.Reader, n int) ([]string, error) {
	ring := NewLineRing(n)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			ring.Push(string(trimmed))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read session log: %w", err)
		}
	}
	return ring.Lines(), nil
}

// ParseUsage extracts usage.totalTokens from one log entry.
// ok is false when the entry is malformed or has no token count.
// Counts are clamped to [0, math.MaxInt64].
func ParseUsage(line string) (tokens int64, ok bool) {
	var entry usageEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return 0, false
	}
	if entry.Usage == nil || entry.Usage.TotalTokens == nil {
		return 0, false
	}
	v := *entry.Usage.TotalTokens
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0, true
	case v >= math.MaxInt64:
		return math.MaxInt64, true
	}
	return int64(v), true
}

// EstimateTokens sums the token usage of the last n entries of r.
func EstimateTokens(r io.Reader, n int) (int64, error) {
	lines, err := TailLines(r, n)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, line := range lines {
		if tokens, ok := ParseUsage(line); ok {
			total = domain.AddTokens(total, tokens)
		}
	}
	return total, nil
}

// EstimateFile opens path and estimates its token usage.
func EstimateFile(path string, n int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	return EstimateTokens(f, n)
}
