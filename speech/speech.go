package speech

import (
	"context"
	"errors"
)

// The speech capability is optional. Consumers check Available and hide
// the feature entirely when the host cannot transcribe audio.
var ErrUnavailable = errors.New("speech recognition is not available")

type EventKind int

const (
	EventInterim EventKind = iota
	EventFinal
	EventError
)

// Event is one element of a listening session's transcript stream: zero
// or more interim transcripts followed by exactly one final transcript or
// one error.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        error
}

type Recognizer interface {
	Available() bool
	// Listen opens one listening session. The session ends after the
	// final transcript or an error; call Listen again to restart.
	Listen(ctx context.Context) (*Session, error)
}

// AudioSink receives the captured audio of one session.
type AudioSink interface {
	SendAudio(audio []byte) error
	Close() error
}

// Session is one listening session: audio in, transcript events out. The
// event channel is closed once the terminal event has been delivered.
type Session struct {
	events <-chan Event
	audio  AudioSink
}

// NewSession assembles a session from an event source and an audio sink.
// Backends use it to wrap their transport streams.
func NewSession(events <-chan Event, audio AudioSink) *Session {
	return &Session{events: events, audio: audio}
}

func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) Send(audio []byte) error {
	return s.audio.SendAudio(audio)
}

func (s *Session) Close() error {
	return s.audio.Close()
}

// DisabledRecognizer is the degraded capability used when no speech
// backend is configured.
type DisabledRecognizer struct{}

var _ Recognizer = &DisabledRecognizer{}

func NewDisabledRecognizer() *DisabledRecognizer {
	return &DisabledRecognizer{}
}

func (d *DisabledRecognizer) Available() bool {
	return false
}

func (d *DisabledRecognizer) Listen(ctx context.Context) (*Session, error) {
	return nil, ErrUnavailable
}
