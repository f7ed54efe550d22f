package rowan

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel is the severity of a log line.
type LogLevel uint8

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError

	logLevelCount
)

// LogCategory names the subsystem a log line comes from. Each category is a
// named child of the base zap logger.
type LogCategory uint8

const (
	LogCore LogCategory = iota
	LogEngine
	LogGame
	LogScript

	logCategoryCount
)

func (c LogCategory) String() string {
	switch c {
	case LogCore:
		return "core"
	case LogEngine:
		return "engine"
	case LogGame:
		return "game"
	case LogScript:
		return "script"
	default:
		return "unknown"
	}
}

// logDisplayTime is how long, in seconds, an on-screen entry of each level
// stays visible while it is the newest entry.
var logDisplayTime = [logLevelCount]float32{
	LogInfo:    1,
	LogWarning: 2,
	LogError:   99,
}

// LogEntry is a message kept for on-screen display.
type LogEntry struct {
	Message  string
	Level    LogLevel
	Lifetime float32 // seconds left
	Alpha    float32 // fades from 1 to 0 over the display time

	fade *gween.Tween
}

// Log writes engine diagnostics through zap and optionally keeps the recent
// lines for on-screen display.
type Log struct {
	base     *zap.Logger
	cats     [logCategoryCount]*zap.SugaredLogger
	once     map[uint32]struct{}
	display  List[*LogEntry]
	toScreen bool
}

// NewLog builds a Log on top of base. A nil base logs nothing.
func NewLog(base *zap.Logger) *Log {
	if base == nil {
		base = zap.NewNop()
	}
	l := &Log{base: base, once: make(map[uint32]struct{})}
	for c := LogCategory(0); c < logCategoryCount; c++ {
		l.cats[c] = base.Named(c.String()).Sugar()
	}
	return l
}

// NewNopLog returns a Log that discards everything.
func NewNopLog() *Log {
	return NewLog(nil)
}

// NewProductionLog builds a JSON zap logger at the given level
// ("debug", "info", "warn", "error").
func NewProductionLog(level string) (*Log, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return NewLog(base), nil
}

// Zap returns the underlying zap logger.
func (l *Log) Zap() *zap.Logger {
	return l.base
}

// SetRenderToScreen enables or disables keeping entries for display.
func (l *Log) SetRenderToScreen(enabled bool) {
	l.toScreen = enabled
	if !enabled {
		l.display.Clear()
	}
}

// Write formats and emits a line. It never fails.
func (l *Log) Write(level LogLevel, category LogCategory, format string, args ...any) {
	if l == nil {
		return
	}
	if category >= logCategoryCount {
		category = LogCore
	}
	msg := fmt.Sprintf(format, args...)
	s := l.cats[category]
	switch level {
	case LogWarning:
		s.Warn(msg)
	case LogError:
		s.Error(msg)
	default:
		s.Info(msg)
	}
	if l.toScreen {
		l.display.Insert(newLogEntry(msg, level))
	}
}

// WriteOnce writes a line the first time a given format string is seen and
// ignores it afterwards, whatever the arguments.
func (l *Log) WriteOnce(level LogLevel, category LogCategory, format string, args ...any) {
	if l == nil {
		return
	}
	key := GenerateCRC(format, false)
	if _, seen := l.once[key]; seen {
		return
	}
	l.once[key] = struct{}{}
	l.Write(level, category, format, args...)
}

// Sync flushes buffered zap output.
func (l *Log) Sync() error {
	return l.base.Sync()
}

func newLogEntry(msg string, level LogLevel) *LogEntry {
	if level >= logLevelCount {
		level = LogInfo
	}
	d := logDisplayTime[level]
	return &LogEntry{
		Message:  msg,
		Level:    level,
		Lifetime: d,
		Alpha:    1,
		fade:     gween.New(1, 0, d, ease.InQuad),
	}
}

// Update ages the newest live entry by dt and drops expired entries. Older
// entries wait until everything above them has expired.
func (l *Log) Update(dt float32) {
	aged := false
	for n := l.display.Head(); n != nil; {
		next := n.Next()
		e := n.Value
		if e.Lifetime <= 0 {
			l.display.Remove(n)
			n = next
			continue
		}
		if !aged {
			e.Lifetime -= dt
			e.Alpha, _ = e.fade.Update(dt)
			aged = true
		}
		n = next
	}
}

// Entries returns the displayed entries, newest first.
func (l *Log) Entries() []*LogEntry {
	return l.display.Values()
}
