// Package progress carries execution progress from a running external tool
// to whoever is watching: a console line, an interactive view, or nobody.
// The executor reports through the Sink interface and never branches on
// what kind of observer is attached.
package progress

// Sink receives ordered progress updates for plan executions. For a given
// label the sequence is: one Started, zero or more Spinner/Progress
// updates, then exactly one Finished. Implementations must not block the
// caller for long; the caller is draining a live subprocess.
type Sink interface {
	// Started announces that execution of the labeled plan began.
	Started(label string)
	// Spinner is a liveness tick for tools without fine-grained progress,
	// and the elapsed-time cadence when total duration is unknown.
	Spinner(label string, elapsedSeconds float64, message string)
	// Progress is a percentage update. etaSeconds is negative when no
	// estimate is available.
	Progress(label string, percent float64, etaSeconds float64)
	// Finished reports the terminal outcome for the labeled plan.
	Finished(label string, ok bool, message string)
}

// Discard is a Sink that ignores every event.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Started(string)                   {}
func (discardSink) Spinner(string, float64, string)  {}
func (discardSink) Progress(string, float64, float64) {}
func (discardSink) Finished(string, bool, string)    {}
