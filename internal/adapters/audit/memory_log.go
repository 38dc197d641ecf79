package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	domain "github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// DefaultMaxInMemoryLogs bounds the in-memory buffer; the oldest entries
// are dropped in insertion order once the bound is exceeded
const DefaultMaxInMemoryLogs = 1000

// MemoryLog is the in-memory audit sink. It is safe for concurrent
// appenders: the buffer is guarded by a single mutex and readers get
// defensive copies. File persistence, if configured, is best-effort:
// write errors are swallowed and must never reach callers.
type MemoryLog struct {
	mu        sync.Mutex
	entries   []*domain.Entry
	maxLogs   int
	filePath  string
	observers []domain.Observer
	clock     shared.Clock
}

var _ domain.Sink = (*MemoryLog)(nil)

// Option configures a MemoryLog
type Option func(*MemoryLog)

// WithMaxLogs overrides the in-memory buffer bound
func WithMaxLogs(max int) Option {
	return func(l *MemoryLog) {
		if max > 0 {
			l.maxLogs = max
		}
	}
}

// WithFilePath enables best-effort JSON-lines persistence to the given file
func WithFilePath(path string) Option {
	return func(l *MemoryLog) {
		l.filePath = path
	}
}

// WithObserver subscribes an observer to OnLogAdded callbacks
func WithObserver(observer domain.Observer) Option {
	return func(l *MemoryLog) {
		if observer != nil {
			l.observers = append(l.observers, observer)
		}
	}
}

// WithClock overrides the clock used for SystemAlert timestamps
func WithClock(clock shared.Clock) Option {
	return func(l *MemoryLog) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewMemoryLog creates an in-memory audit log with the default bound
func NewMemoryLog(opts ...Option) *MemoryLog {
	l := &MemoryLog{
		maxLogs: DefaultMaxInMemoryLogs,
		clock:   shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records an entry, drops the oldest entries past the bound,
// best-effort persists to file, and fires OnLogAdded on each observer.
// Nil entries are ignored.
func (l *MemoryLog) Append(entry *domain.Entry) {
	if entry == nil {
		return
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if overflow := len(l.entries) - l.maxLogs; overflow > 0 {
		l.entries = l.entries[overflow:]
	}
	l.mu.Unlock()

	l.appendToFile(entry)

	for _, observer := range l.observers {
		l.notifyOne(observer, entry)
	}
}

// notifyOne fires OnLogAdded, catching observer panics so they cannot
// corrupt the append path
func (l *MemoryLog) notifyOne(observer domain.Observer, entry *domain.Entry) {
	defer func() {
		if r := recover(); r != nil {
			alert, err := domain.NewEntry(domain.EventSystemAlert,
				fmt.Sprintf("log observer failed: %v", r),
				l.clock.Now(), nil)
			if err == nil {
				l.mu.Lock()
				l.entries = append(l.entries, alert)
				if overflow := len(l.entries) - l.maxLogs; overflow > 0 {
					l.entries = l.entries[overflow:]
				}
				l.mu.Unlock()
			}
		}
	}()
	observer.OnLogAdded(entry)
}

// appendToFile writes the entry as one JSON line. Errors are swallowed by
// design: auditing must never crash callers.
func (l *MemoryLog) appendToFile(entry *domain.Entry) {
	if l.filePath == "" {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	f, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// Recent returns up to n entries, newest first
func (l *MemoryLog) Recent(n int) []*domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}

	result := make([]*domain.Entry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, l.entries[i])
	}
	return result
}

// ByType returns entries of the given kind, newest first
func (l *MemoryLog) ByType(eventType domain.EventType) []*domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []*domain.Entry
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].EventType == eventType {
			result = append(result, l.entries[i])
		}
	}
	return result
}

// ByTimeRange returns entries with from <= timestamp <= to, newest first
func (l *MemoryLog) ByTimeRange(from, to time.Time) []*domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []*domain.Entry
	for i := len(l.entries) - 1; i >= 0; i-- {
		ts := l.entries[i].Timestamp
		if !ts.Before(from) && !ts.After(to) {
			result = append(result, l.entries[i])
		}
	}
	return result
}

// Len returns the current number of buffered entries
func (l *MemoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Export writes all buffered entries, oldest first, as a pretty-printed
// JSON array
func (l *MemoryLog) Export(path string) error {
	l.mu.Lock()
	entries := make([]*domain.Entry, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal audit log: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to export audit log: %w", err)
	}
	return nil
}
