package chat

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/eapache/queue"
	"github.com/glucomate-org/glucomate/speech"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoPendingUtterance = errors.New("no pending utterance")

// Turn is one completed voice exchange.
type Turn struct {
	ID        string
	User      string
	Assistant string
}

// VoiceConversation couples a speech recognizer with the assistant. Final
// transcripts are queued so the user can keep talking while a reply is in
// flight; utterances reach the assistant strictly in capture order.
type VoiceConversation struct {
	chat       Service
	recognizer speech.Recognizer
	logger     *zap.SugaredLogger

	mu        sync.Mutex
	pending   *queue.Queue
	sessionID string
}

func NewVoiceConversation(chat Service, recognizer speech.Recognizer, logger *zap.SugaredLogger) (*VoiceConversation, error) {
	if !recognizer.Available() {
		return nil, speech.ErrUnavailable
	}
	return &VoiceConversation{
		chat:       chat,
		recognizer: recognizer,
		logger:     logger,
		pending:    queue.New(),
	}, nil
}

// Capture runs one listening session over the audio source and queues the
// final transcript. Interim transcripts are reported through onInterim
// for progress display only.
func (v *VoiceConversation) Capture(ctx context.Context, audio io.Reader, onInterim func(string)) error {
	listening, err := v.recognizer.Listen(ctx)
	if err != nil {
		return err
	}
	defer listening.Close()

	sendErr := make(chan error, 1)
	go func() {
		defer close(sendErr)
		chunk := make([]byte, 4096)
		for {
			n, err := audio.Read(chunk)
			if n > 0 {
				if err := listening.Send(chunk[:n]); err != nil {
					sendErr <- err
					return
				}
			}
			if err == io.EOF {
				sendErr <- listening.Close()
				return
			}
			if err != nil {
				sendErr <- err
				return
			}
		}
	}()

	for event := range listening.Events() {
		switch event.Kind {
		case speech.EventInterim:
			if onInterim != nil {
				onInterim(event.Transcript)
			}
		case speech.EventFinal:
			if event.Transcript != "" {
				v.mu.Lock()
				v.pending.Add(event.Transcript)
				v.mu.Unlock()
			}
			return nil
		case speech.EventError:
			return event.Err
		}
	}
	return <-sendErr
}

// Exchange sends the oldest queued utterance to the assistant and returns
// the completed turn.
func (v *VoiceConversation) Exchange(ctx context.Context) (*Turn, error) {
	v.mu.Lock()
	if v.pending.Length() == 0 {
		v.mu.Unlock()
		return nil, ErrNoPendingUtterance
	}
	utterance := v.pending.Remove().(string)
	sessionID := v.sessionID
	v.mu.Unlock()

	reply, err := v.chat.Send(ctx, utterance, sessionID)
	if err != nil {
		// The utterance goes back to the front so a manual retry does not
		// lose what the user said.
		v.mu.Lock()
		requeued := queue.New()
		requeued.Add(utterance)
		for v.pending.Length() > 0 {
			requeued.Add(v.pending.Remove())
		}
		v.pending = requeued
		v.mu.Unlock()
		return nil, err
	}

	v.mu.Lock()
	v.sessionID = reply.SessionID
	v.mu.Unlock()

	return &Turn{
		ID:        uuid.NewString(),
		User:      utterance,
		Assistant: reply.Text,
	}, nil
}

// Drain exchanges every queued utterance in order.
func (v *VoiceConversation) Drain(ctx context.Context) ([]Turn, error) {
	var turns []Turn
	for {
		turn, err := v.Exchange(ctx)
		if errors.Is(err, ErrNoPendingUtterance) {
			return turns, nil
		}
		if err != nil {
			return turns, err
		}
		turns = append(turns, *turn)
	}
}

// End closes the assistant session, if one was started.
func (v *VoiceConversation) End(ctx context.Context) error {
	v.mu.Lock()
	sessionID := v.sessionID
	v.sessionID = ""
	v.mu.Unlock()

	if sessionID == "" {
		return nil
	}
	return v.chat.End(ctx, sessionID)
}

// Pending reports how many utterances await a reply.
func (v *VoiceConversation) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending.Length()
}
