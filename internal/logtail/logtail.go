package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded log record.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
	Raw     string
}

// Summary renders the entry's fields as sorted key=value pairs.
func (e Entry) Summary() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return strings.Join(parts, " ")
}

var reservedKeys = map[string]struct{}{
	"ts": {}, "level": {}, "msg": {}, "logger": {}, "caller": {}, "stacktrace": {},
}

// ReadEntries tails the file like Read and decodes JSON log lines. Lines that
// are not JSON objects are returned with only Message and Raw set.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseEntry(line))
	}
	return entries, nil
}

func parseEntry(line string) Entry {
	entry := Entry{Message: line, Raw: line}

	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return entry
	}
	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = strings.ToLower(level)
	}
	if ts, ok := raw["ts"].(string); ok {
		if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			entry.Time = parsed
		} else if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = parsed
		}
	}
	for k, v := range raw {
		if _, skip := reservedKeys[k]; skip {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[k] = fmt.Sprint(v)
	}
	return entry
}
