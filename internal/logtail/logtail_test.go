package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "launchpad.log")
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return logPath
}

func TestRead(t *testing.T) {
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	logPath := writeLog(t, content.String())

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil for missing file", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestReadEntries_DecodesZapJSON(t *testing.T) {
	logPath := writeLog(t, strings.Join([]string{
		`{"level":"info","ts":"2026-10-19T14:02:03.120+0200","logger":"launchpad","msg":"launch resolved","app":"claude","fallback":true}`,
		``,
		`plain text line`,
		`{"level":"warn","ts":"2026-10-19T14:02:04.000Z","msg":"launch failed","app":"grok"}`,
	}, "\n"))

	entries, err := ReadEntries(logPath, 10)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ReadEntries() returned %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first.Level != "info" || first.Message != "launch resolved" {
		t.Fatalf("first = %+v, want info/launch resolved", first)
	}
	if first.Time.IsZero() {
		t.Fatalf("first.Time is zero, want parsed timestamp")
	}
	if got := first.Summary(); got != "app=claude fallback=true" {
		t.Fatalf("Summary() = %q, want %q", got, "app=claude fallback=true")
	}

	if entries[1].Message != "plain text line" || entries[1].Level != "" {
		t.Fatalf("plain entry = %+v, want raw message without level", entries[1])
	}
	if entries[2].Level != "warn" || entries[2].Fields["app"] != "grok" {
		t.Fatalf("third = %+v, want warn with app=grok", entries[2])
	}
}
