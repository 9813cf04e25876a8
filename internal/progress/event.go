package progress

// EventKind discriminates channel events.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventSpinner  EventKind = "spinner"
	EventProgress EventKind = "progress"
	EventFinished EventKind = "finished"
)

// Event is the value form of a sink update, published by ChannelSink for
// consumers that live on the other side of a channel (the interactive UI).
// Label identifies the plan within a batch; it is the plan's source path.
type Event struct {
	Kind    EventKind
	Label   string
	Percent float64
	// ETASeconds is negative when no estimate is available.
	ETASeconds float64
	// ElapsedSeconds accompanies spinner events.
	ElapsedSeconds float64
	Message        string
	OK             bool
}

// ChannelSink forwards events onto an ordered single-producer channel.
// Spinner and Progress updates are dropped when the consumer lags; Started
// and Finished are always delivered so consumers can rely on the lifecycle
// framing.
type ChannelSink struct {
	ch chan Event
}

// NewChannelSink creates a sink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan Event, buffer)}
}

// Events returns the consumer side of the channel.
func (s *ChannelSink) Events() <-chan Event { return s.ch }

// Close releases the channel once no more events will be published.
func (s *ChannelSink) Close() { close(s.ch) }

func (s *ChannelSink) Started(label string) {
	s.ch <- Event{Kind: EventStarted, Label: label}
}

func (s *ChannelSink) Spinner(label string, elapsedSeconds float64, message string) {
	select {
	case s.ch <- Event{Kind: EventSpinner, Label: label, ElapsedSeconds: elapsedSeconds, Message: message}:
	default:
	}
}

func (s *ChannelSink) Progress(label string, percent float64, etaSeconds float64) {
	select {
	case s.ch <- Event{Kind: EventProgress, Label: label, Percent: percent, ETASeconds: etaSeconds}:
	default:
	}
}

func (s *ChannelSink) Finished(label string, ok bool, message string) {
	s.ch <- Event{Kind: EventFinished, Label: label, OK: ok, Message: message}
}
