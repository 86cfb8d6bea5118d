package chat_test

import (
	"context"
	"strings"

	"github.com/glucomate-org/glucomate/chat"
	chatTest "github.com/glucomate-org/glucomate/chat/test"
	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/speech"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type nopSink struct{}

func (nopSink) SendAudio([]byte) error { return nil }
func (nopSink) Close() error           { return nil }

// scriptedRecognizer plays one canned event sequence per Listen call.
type scriptedRecognizer struct {
	scripts [][]speech.Event
	calls   int
}

func (r *scriptedRecognizer) Available() bool {
	return true
}

func (r *scriptedRecognizer) Listen(ctx context.Context) (*speech.Session, error) {
	script := r.scripts[r.calls]
	r.calls++

	events := make(chan speech.Event, len(script))
	for _, event := range script {
		events <- event
	}
	close(events)
	return speech.NewSession(events, nopSink{}), nil
}

func finalEvent(transcript string) speech.Event {
	return speech.Event{Kind: speech.EventFinal, Transcript: transcript}
}

func interimEvent(transcript string) speech.Event {
	return speech.Event{Kind: speech.EventInterim, Transcript: transcript}
}

var _ = Describe("VoiceConversation", func() {
	var ctrl *gomock.Controller
	var chatService *chatTest.MockService

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		chatService = chatTest.NewMockService(ctrl)
	})

	newConversation := func(scripts ...[]speech.Event) *chat.VoiceConversation {
		conversation, err := chat.NewVoiceConversation(chatService, &scriptedRecognizer{scripts: scripts}, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		return conversation
	}

	capture := func(conversation *chat.VoiceConversation, onInterim func(string)) {
		Expect(conversation.Capture(context.Background(), strings.NewReader(""), onInterim)).To(Succeed())
	}

	It("refuses to start without a speech backend", func() {
		_, err := chat.NewVoiceConversation(chatService, speech.NewDisabledRecognizer(), zap.NewNop().Sugar())
		Expect(err).To(MatchError(speech.ErrUnavailable))
	})

	Describe("Capture", func() {
		It("reports interim transcripts and queues the final one", func() {
			conversation := newConversation([]speech.Event{
				interimEvent("how"),
				interimEvent("how high"),
				finalEvent("how high is my blood sugar"),
			})

			var interims []string
			capture(conversation, func(transcript string) {
				interims = append(interims, transcript)
			})

			Expect(interims).To(Equal([]string{"how", "how high"}))
			Expect(conversation.Pending()).To(Equal(1))
		})

		It("queues nothing for an empty final transcript", func() {
			conversation := newConversation([]speech.Event{finalEvent("")})

			capture(conversation, nil)
			Expect(conversation.Pending()).To(BeZero())
		})

		It("surfaces recognition errors", func() {
			conversation := newConversation([]speech.Event{
				{Kind: speech.EventError, Err: speech.ErrUnavailable},
			})

			err := conversation.Capture(context.Background(), strings.NewReader(""), nil)
			Expect(err).To(MatchError(speech.ErrUnavailable))
			Expect(conversation.Pending()).To(BeZero())
		})
	})

	Describe("Exchange", func() {
		It("requires a pending utterance", func() {
			conversation := newConversation()

			_, err := conversation.Exchange(context.Background())
			Expect(err).To(MatchError(chat.ErrNoPendingUtterance))
		})

		It("sends utterances in capture order and threads the session", func() {
			conversation := newConversation(
				[]speech.Event{finalEvent("first question")},
				[]speech.Event{finalEvent("second question")},
			)
			capture(conversation, nil)
			capture(conversation, nil)

			gomock.InOrder(
				chatService.EXPECT().
					Send(gomock.Any(), "first question", "").
					Return(&chat.Reply{SessionID: "s1", Text: "first answer"}, nil),
				chatService.EXPECT().
					Send(gomock.Any(), "second question", "s1").
					Return(&chat.Reply{SessionID: "s1", Text: "second answer"}, nil),
			)

			first, err := conversation.Exchange(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(first.User).To(Equal("first question"))
			Expect(first.Assistant).To(Equal("first answer"))

			second, err := conversation.Exchange(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(second.User).To(Equal("second question"))
			Expect(conversation.Pending()).To(BeZero())
		})

		It("requeues the utterance at the front when the send fails", func() {
			conversation := newConversation(
				[]speech.Event{finalEvent("first question")},
				[]speech.Event{finalEvent("second question")},
			)
			capture(conversation, nil)
			capture(conversation, nil)

			gomock.InOrder(
				chatService.EXPECT().
					Send(gomock.Any(), "first question", "").
					Return(nil, errors.Unavailable),
				chatService.EXPECT().
					Send(gomock.Any(), "first question", "").
					Return(&chat.Reply{SessionID: "s1", Text: "first answer"}, nil),
			)

			_, err := conversation.Exchange(context.Background())
			Expect(err).To(MatchError(errors.Unavailable))
			Expect(conversation.Pending()).To(Equal(2))

			turn, err := conversation.Exchange(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(turn.User).To(Equal("first question"))
		})
	})

	Describe("Drain", func() {
		It("exchanges every queued utterance in order", func() {
			conversation := newConversation(
				[]speech.Event{finalEvent("one")},
				[]speech.Event{finalEvent("two")},
			)
			capture(conversation, nil)
			capture(conversation, nil)

			gomock.InOrder(
				chatService.EXPECT().
					Send(gomock.Any(), "one", "").
					Return(&chat.Reply{SessionID: "s1", Text: "answer one"}, nil),
				chatService.EXPECT().
					Send(gomock.Any(), "two", "s1").
					Return(&chat.Reply{SessionID: "s1", Text: "answer two"}, nil),
			)

			turns, err := conversation.Drain(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(turns).To(HaveLen(2))
			Expect(turns[0].User).To(Equal("one"))
			Expect(turns[1].User).To(Equal("two"))
		})
	})

	Describe("End", func() {
		It("ends the assistant session once one was started", func() {
			conversation := newConversation([]speech.Event{finalEvent("hello")})
			capture(conversation, nil)

			chatService.EXPECT().
				Send(gomock.Any(), "hello", "").
				Return(&chat.Reply{SessionID: "s1", Text: "hi"}, nil)
			chatService.EXPECT().End(gomock.Any(), "s1").Return(nil)

			_, err := conversation.Exchange(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(conversation.End(context.Background())).To(Succeed())
		})

		It("is a no-op without a session", func() {
			conversation := newConversation()
			Expect(conversation.End(context.Background())).To(Succeed())
		})
	})
})
