package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/measurement"
)

// LogEntry represents a single decision log entry
type LogEntry struct {
	Timestamp    time.Time                `json:"timestamp"`
	RequestID    string                   `json:"request_id"`
	Measurements measurement.Measurements `json:"measurements"`
	Category     classifier.Category      `json:"category"`
	Volume       classifier.Volume        `json:"volume_cm3"`
	Bulky        bool                     `json:"bulky"`
	Heavy        bool                     `json:"heavy"`
	Reason       string                   `json:"reason"`
	DurationUs   int64                    `json:"duration_us"`
}

// Logger appends classification decisions as JSON lines
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// Config holds decision log configuration
type Config struct {
	Path string // Log file path (default: logs/decisions.jsonl)
}

// DefaultConfig returns default decision log configuration
func DefaultConfig() Config {
	return Config{
		Path: filepath.Join("logs", "decisions.jsonl"),
	}
}

// New opens the decision log, creating its directory if needed
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// Log writes an entry to the log
func (l *Logger) Log(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.encoder.Encode(entry)
}

// LogDecision logs a classification decision with its inputs
func (l *Logger) LogDecision(requestID string, m measurement.Measurements, d classifier.Decision, took time.Duration) error {
	return l.Log(LogEntry{
		Timestamp:    time.Now().UTC(),
		RequestID:    requestID,
		Measurements: m,
		Category:     d.Category,
		Volume:       d.Volume,
		Bulky:        d.Bulky,
		Heavy:        d.Heavy,
		Reason:       d.Reason,
		DurationUs:   took.Microseconds(),
	})
}

// Close closes the logger
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	if l.file != nil {
		return l.file.Name()
	}
	return ""
}
