package player

import "errors"

// State mirrors the lifecycle states of the underlying streaming pipeline.
type State int

const (
	StateNull State = iota
	StateReady
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StateReady:
		return "ready"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// BusMessageKind classifies messages coming off the pipeline bus.
type BusMessageKind int

const (
	BusEOS BusMessageKind = iota
	BusError
)

// BusMessage is a single notification from the pipeline bus.
type BusMessage struct {
	Kind BusMessageKind
	Err  error
}

// Driver abstracts the media pipeline the queue controller drives. The
// production implementation wraps a GStreamer pipeline; tests substitute
// a fake. Every transition validates the current state and returns a
// descriptive error when the precondition fails.
type Driver interface {
	// State reports the pipeline's current lifecycle state.
	State() State

	// SetSource rewrites the input location. Normally called while the
	// pipeline is in StateNull, before Start.
	SetSource(uri string) error

	// Start transitions Null -> Ready -> Playing (requires a source) or
	// resumes directly from Paused. Starting an already-playing pipeline
	// succeeds without touching it. Returns the active source URI.
	Start() (string, error)

	// Stop transitions Playing/Paused/Ready -> Ready -> Null. Stopping a
	// null pipeline is a no-op.
	Stop() error

	// Pause is only valid from Playing.
	Pause() error

	// Seek applies a flushing seek relative to the current position and
	// returns the resulting absolute position in seconds. Only valid
	// from Playing. Backward seeks never move before position zero.
	Seek(deltaSeconds int64) (uint64, error)

	// Bus returns the stream of pipeline notifications. The channel is
	// never closed during normal operation; it dies with the pipeline.
	Bus() <-chan BusMessage
}

var (
	// ErrQueueEmpty is returned by Start and Skip when the pipeline is
	// idle and there is nothing left to play.
	ErrQueueEmpty = errors.New("no more items left in the queue")

	// ErrNotPlaying is returned by Pause and Seek when there is no
	// active playback to act on.
	ErrNotPlaying = errors.New("video is not currently playing")

	// ErrNoSource is returned by Start when no source URI has been set
	// on the pipeline.
	ErrNoSource = errors.New("no source uri set on pipeline")
)
