package doubles

import (
	"sync"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// LogSpy captures log calls for assertions. It satisfies the Logger
// interfaces of the engine packages.
type LogSpy struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func (l *LogSpy) Debug(msg string, args ...any) { l.append("DEBUG", msg, args) }
func (l *LogSpy) Info(msg string, args ...any)  { l.append("INFO", msg, args) }
func (l *LogSpy) Warn(msg string, args ...any)  { l.append("WARN", msg, args) }
func (l *LogSpy) Error(msg string, args ...any) { l.append("ERROR", msg, args) }

func (l *LogSpy) append(level string, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// HasMessage reports whether a log call with the given message was captured.
func (l *LogSpy) HasMessage(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.Entries {
		if entry.Msg == msg {
			return true
		}
	}

	return false
}
