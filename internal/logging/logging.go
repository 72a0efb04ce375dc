// Package logging writes leveled, component-tagged lines to stderr and,
// when a file is configured, to a size-rotated log file as well.
//
// A line looks like:
//
//	2026-01-02T15:04:05Z [INFO] [bucket] Generated year bucket | label=1910-19
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError

	levelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts the level names case-insensitively, plus "warning".
// Anything else is info.
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return LevelWarn
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelInfo
}

type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config is the [logging] section.
type Config struct {
	Level      string `mapstructure:"level" toml:"level"`
	File       string `mapstructure:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

// DefaultConfig logs at info to stderr only.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 5,
	}
}

// Logger is safe for concurrent use. The level may be changed while logging.
type Logger struct {
	level atomic.Int32

	mu   sync.Mutex
	out  io.Writer
	file *rotatingFile

	now func() time.Time
}

// New builds a stderr logger, teeing to cfg.File when it is set.
func New(cfg Config) (*Logger, error) {
	l := NewWriter(os.Stderr, ParseLevel(cfg.Level))
	if cfg.File == "" {
		return l, nil
	}

	f, err := openRotatingFile(cfg.File, int64(cfg.MaxSizeMB)<<20, cfg.MaxBackups)
	if err != nil {
		return nil, err
	}
	l.file = f
	return l, nil
}

// NewWriter logs to w alone.
func NewWriter(w io.Writer, level Level) *Logger {
	l := &Logger{out: w, now: time.Now}
	l.level.Store(int32(level))
	return l
}

// Nop discards everything.
func Nop() *Logger {
	return NewWriter(io.Discard, levelOff)
}

func (l *Logger) log(level Level, component, msg string, err error, fields []Field) {
	if int32(level) < l.level.Load() {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", l.now().Format(time.RFC3339), level, component, msg)
	if err != nil {
		fields = append([]Field{F("error", err)}, fields...)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " | %s=%v", f.Key, f.Value)
	}
	sb.WriteByte('\n')
	line := []byte(sb.String())

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(line)
	if l.file != nil {
		if _, werr := l.file.Write(line); werr != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", werr)
		}
	}
}

func (l *Logger) Debug(component, msg string, fields ...Field) {
	l.log(LevelDebug, component, msg, nil, fields)
}

func (l *Logger) Info(component, msg string, fields ...Field) {
	l.log(LevelInfo, component, msg, nil, fields)
}

func (l *Logger) Warn(component, msg string, fields ...Field) {
	l.log(LevelWarn, component, msg, nil, fields)
}

// Error logs msg with err as the first field.
func (l *Logger) Error(component, msg string, err error, fields ...Field) {
	l.log(LevelError, component, msg, err, fields)
}

func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// FilePath is the log file, empty when logging to stderr only.
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.path
}

// Close flushes and closes the log file. Stderr is left open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
