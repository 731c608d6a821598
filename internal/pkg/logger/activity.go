package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	// ActivityLoggerName is the logger name whose entries are recorded
	ActivityLoggerName = "library"

	// DefaultActivityCapacity is how many entries are kept
	DefaultActivityCapacity = 40
)

// ActivityEntry is one recorded log line
type ActivityEntry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// ActivityLog keeps the most recent service log entries in memory
type ActivityLog struct {
	mu       sync.Mutex
	entries  []ActivityEntry
	capacity int
}

// NewActivityLog creates an activity log holding at most capacity entries
func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityLog{capacity: capacity}
}

// Recent returns up to n of the newest entries, oldest first
func (a *ActivityLog) Recent(n int) []ActivityEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n <= 0 || n > len(a.entries) {
		n = len(a.entries)
	}
	out := make([]ActivityEntry, n)
	copy(out, a.entries[len(a.entries)-n:])
	return out
}

// Len returns the number of entries held
func (a *ActivityLog) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *ActivityLog) record(e ActivityEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, e)
	if over := len(a.entries) - a.capacity; over > 0 {
		a.entries = append(a.entries[:0:0], a.entries[over:]...)
	}
}

// Core returns a zapcore.Core feeding this log
func (a *ActivityLog) Core() zapcore.Core {
	return &activityCore{log: a}
}

type activityCore struct {
	log    *ActivityLog
	fields []zapcore.Field
}

func (c *activityCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= zapcore.InfoLevel
}

func (c *activityCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &activityCore{log: c.log, fields: merged}
}

func (c *activityCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) && ent.LoggerName == ActivityLoggerName {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *activityCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	entry := ActivityEntry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Message: ent.Message,
	}
	if len(enc.Fields) > 0 {
		entry.Fields = enc.Fields
	}
	c.log.record(entry)
	return nil
}

func (c *activityCore) Sync() error {
	return nil
}
