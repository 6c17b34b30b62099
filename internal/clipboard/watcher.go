package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"textp2srt/internal/logging"
	"textp2srt/internal/manual"
)

// Appender receives each accepted block as one complete record.
type Appender interface {
	Append(data []byte) error
}

// State is the watcher's priming state.
type State int

const (
	Unprimed State = iota
	Primed
)

func (s State) String() string {
	if s == Primed {
		return "primed"
	}
	return "unprimed"
}

// EventKind classifies the outcome of a poll.
type EventKind int

const (
	// EventIdle means nothing changed.
	EventIdle EventKind = iota
	// EventPrimed means the first non-empty snapshot was recorded but not appended.
	EventPrimed
	// EventAdded means a new block was appended.
	EventAdded
)

// Event describes one poll.
type Event struct {
	Kind EventKind
	// Text is the trimmed snapshot for EventPrimed and EventAdded.
	Text string
	// Fallback names the fallback encoding used, if any.
	Fallback string
	// Lossy is set when the snapshot had to be decoded with replacement.
	Lossy bool
	// ReadErr is a source failure; the poll is treated as empty.
	ReadErr error
}

// Watcher polls a Source and appends new snapshots as manual blocks.
type Watcher struct {
	source   Source
	decoder  Decoder
	out      Appender
	interval time.Duration
	logger   *slog.Logger
	notify   func(Event)

	state    State
	lastSeen string
	added    int
	failing  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.interval = d
		}
	}
}

// WithLogger sets the logger used for degraded polls.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithNotify registers a callback invoked after every non-idle poll.
func WithNotify(fn func(Event)) Option {
	return func(w *Watcher) {
		w.notify = fn
	}
}

// NewWatcher constructs an unprimed watcher.
func NewWatcher(source Source, decoder Decoder, out Appender, opts ...Option) *Watcher {
	w := &Watcher{
		source:   source,
		decoder:  decoder,
		out:      out,
		interval: time.Second,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "clipboard")
	return w
}

// State returns the current priming state.
func (w *Watcher) State() State { return w.state }

// Added returns how many blocks were appended so far.
func (w *Watcher) Added() int { return w.added }

// Poll reads the source once and advances the state machine. Only append
// failures are returned as errors.
func (w *Watcher) Poll(ctx context.Context) (Event, error) {
	raw, err := w.source.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Event{}, nil
		}
		w.logger.Debug("clipboard read failed", logging.Error(err))
		return Event{Kind: EventIdle, ReadErr: err}, nil
	}

	decoded := w.decoder.Decode(raw)
	event := Event{Kind: EventIdle, Lossy: decoded.Lossy}
	if decoded.Fallback {
		event.Fallback = decoded.Encoding
	}

	current := decoded.Text
	trimmed := strings.TrimSpace(current)
	if trimmed == "" {
		return event, nil
	}

	switch w.state {
	case Unprimed:
		w.state = Primed
		w.lastSeen = current
		event.Kind = EventPrimed
		event.Text = trimmed
		w.logger.Debug("watcher primed", logging.Int("length", len(trimmed)))
	case Primed:
		if current == w.lastSeen {
			return event, nil
		}
		block := manual.FormatBlock(trimmed)
		if err := w.out.Append([]byte(block + "\n")); err != nil {
			return event, fmt.Errorf("append block: %w", err)
		}
		w.lastSeen = current
		w.added++
		event.Kind = EventAdded
		event.Text = trimmed
		w.logger.Debug("block appended", logging.Int("blocks_added", w.added))
	}
	if decoded.Lossy && event.Kind == EventAdded {
		logging.WarnWithContext(w.logger, "clipboard decoded with replacement characters", "decode_lossy",
			logging.String("encoding", decoded.Encoding),
			logging.String(logging.FieldImpact, "some characters in the captured block may be wrong"),
			logging.String(logging.FieldErrorHint, "set clipboard.encoding to the source application's encoding"),
		)
	}
	return event, nil
}

// shouldNotify reports primes and additions, and only the first of a run of
// consecutive read failures.
func (w *Watcher) shouldNotify(event Event) bool {
	if event.ReadErr != nil {
		first := !w.failing
		w.failing = true
		return first
	}
	w.failing = false
	return event.Kind != EventIdle
}

// Run polls until ctx is cancelled. Cancellation is a clean stop and
// returns nil; every accepted block is already on disk by then.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		event, err := w.Poll(ctx)
		if err != nil {
			return err
		}
		if w.notify != nil && w.shouldNotify(event) {
			w.notify(event)
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}
