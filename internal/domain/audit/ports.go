package audit

import "time"

// Sink receives structured audit events from the matching core.
// Implementations must be safe for concurrent appenders; query results are
// newest-first snapshots.
type Sink interface {
	// Append records an entry. Implementations swallow I/O failures:
	// auditing must never crash callers.
	Append(entry *Entry)

	// Recent returns up to n entries, newest first
	Recent(n int) []*Entry

	// ByType returns entries of the given kind, newest first
	ByType(eventType EventType) []*Entry

	// ByTimeRange returns entries with from <= timestamp <= to, newest first
	ByTimeRange(from, to time.Time) []*Entry
}

// PanicAlert summarizes one starving critical need for observer callbacks
type PanicAlert struct {
	NeedID             string
	Title              string
	Category           string
	HoursWaited        float64
	FulfillmentPercent float64
}

// Observer receives synchronous callbacks from the audit sink and the
// dashboard. Implementations must not block indefinitely; a panicking
// observer is caught and reported, never propagated.
type Observer interface {
	// OnLogAdded fires after each successful append
	OnLogAdded(entry *Entry)

	// OnPanicModeTriggered fires once per dashboard snapshot whose panic
	// set is non-empty, sorted by how far past the threshold each need is
	OnPanicModeTriggered(panicNeeds []PanicAlert)
}
