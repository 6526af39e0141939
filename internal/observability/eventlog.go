package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Event types written by jobnav.
const (
	EventResolveOK     = "resolve.ok"
	EventResolveFailed = "resolve.failed"
	EventOpenOK        = "open.ok"
	EventOpenFailed    = "open.failed"
)

// Event represents a single observable event in the system.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"` // debug, info, warn, error
	Type    string         `json:"type"`  // e.g. "open.failed"
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventFilter specifies criteria for reading events.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Type  string
	Level string
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// RotateConfig controls when the event log file is rotated.
type RotateConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// MinLevel drops events below this level; empty keeps everything.
	MinLevel string
}

// jsonlEventLog implements EventLog as JSON lines encoded by zerolog into a
// lumberjack-rotated file.
type jsonlEventLog struct {
	path   string
	out    *lumberjack.Logger
	sink   *errorSink
	logger zerolog.Logger
	mu     sync.Mutex
}

// errorSink keeps the last write error from w. zerolog only reports write
// failures through its global ErrorHandler, so Write reads them here.
type errorSink struct {
	w   io.Writer
	err error
}

func (s *errorSink) Write(p []byte) (int, error) {
	if _, err := s.w.Write(p); err != nil {
		s.err = err
	}
	return len(p), nil
}

// NewJSONLEventLog creates a new EventLog backed by a rotated JSONL file at
// the given path. The parent directory is created if needed.
func NewJSONLEventLog(path string, rotate RotateConfig) (EventLog, error) {
	if path == "" {
		return nil, fmt.Errorf("opening event log: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}

	level := zerolog.TraceLevel
	if rotate.MinLevel != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(rotate.MinLevel))
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		level = lvl
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotate.MaxSizeMB,
		MaxBackups: rotate.MaxBackups,
		MaxAge:     rotate.MaxAgeDays,
	}
	sink := &errorSink{w: out}
	return &jsonlEventLog{
		path:   path,
		out:    out,
		sink:   sink,
		logger: zerolog.New(sink).Level(level),
	}, nil
}

// Write appends the event as one JSON line.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lvl, err := zerolog.ParseLevel(strings.ToLower(event.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	e := l.logger.WithLevel(lvl)
	if e == nil {
		// Below the configured minimum level.
		return nil
	}
	e = e.Str("time", event.Time.Format(time.RFC3339Nano)).Str("type", event.Type)
	if len(event.Data) > 0 {
		e = e.Interface("data", event.Data)
	}
	l.sink.err = nil
	e.Msg(event.Message)
	if err := l.sink.err; err != nil {
		return fmt.Errorf("writing event %s: %w", event.Type, err)
	}
	return nil
}

// Read scans the current log file line by line and returns the events
// matching filter. Rotated backups are not read.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // skip malformed lines
		}

		if matchesEventFilter(event, filter) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.out.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

// matchesEventFilter checks whether an event satisfies all filter criteria.
func matchesEventFilter(event Event, filter EventFilter) bool {
	if filter.Since != nil && event.Time.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && event.Time.After(*filter.Until) {
		return false
	}
	if filter.Type != "" && event.Type != filter.Type {
		return false
	}
	if filter.Level != "" && !strings.EqualFold(event.Level, filter.Level) {
		return false
	}
	return true
}
