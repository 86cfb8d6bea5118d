package speech

import (
	"io"

	"cloud.google.com/go/speech/apiv1/speechpb"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/status"
)

// scriptedStream feeds canned streaming responses to the session pump and
// records the audio it receives.
type scriptedStream struct {
	responses []*speechpb.StreamingRecognizeResponse
	errs      []error
	sent      [][]byte
	closed    bool
}

func (s *scriptedStream) Send(req *speechpb.StreamingRecognizeRequest) error {
	if audio := req.GetAudioContent(); audio != nil {
		s.sent = append(s.sent, audio)
	}
	return nil
}

func (s *scriptedStream) Recv() (*speechpb.StreamingRecognizeResponse, error) {
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	if len(s.responses) == 0 {
		return nil, io.EOF
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedStream) CloseSend() error {
	s.closed = true
	return nil
}

func transcriptResponse(transcript string, final bool) *speechpb.StreamingRecognizeResponse {
	return &speechpb.StreamingRecognizeResponse{
		Results: []*speechpb.StreamingRecognitionResult{{
			IsFinal: final,
			Alternatives: []*speechpb.SpeechRecognitionAlternative{{
				Transcript: transcript,
			}},
		}},
	}
}

func collect(session *Session) []Event {
	var events []Event
	for event := range session.Events() {
		events = append(events, event)
	}
	return events
}

var _ = Describe("Stream session", func() {
	It("emits interim transcripts followed by one final transcript", func() {
		stream := &scriptedStream{
			responses: []*speechpb.StreamingRecognizeResponse{
				transcriptResponse("how", false),
				transcriptResponse("how high", false),
				transcriptResponse("how high is my blood sugar", true),
			},
		}

		events := collect(newStreamSession(stream, zap.NewNop().Sugar()))
		Expect(events).To(HaveLen(3))
		Expect(events[0].Kind).To(Equal(EventInterim))
		Expect(events[0].Transcript).To(Equal("how"))
		Expect(events[1].Kind).To(Equal(EventInterim))
		Expect(events[2].Kind).To(Equal(EventFinal))
		Expect(events[2].Transcript).To(Equal("how high is my blood sugar"))
	})

	It("stops after the final transcript even when more responses follow", func() {
		stream := &scriptedStream{
			responses: []*speechpb.StreamingRecognizeResponse{
				transcriptResponse("done", true),
				transcriptResponse("stale", false),
			},
		}

		events := collect(newStreamSession(stream, zap.NewNop().Sugar()))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Kind).To(Equal(EventFinal))
	})

	It("closes the event channel on end of stream", func() {
		events := collect(newStreamSession(&scriptedStream{}, zap.NewNop().Sugar()))
		Expect(events).To(BeEmpty())
	})

	It("surfaces receive errors as a terminal error event", func() {
		stream := &scriptedStream{errs: []error{io.ErrUnexpectedEOF}}

		events := collect(newStreamSession(stream, zap.NewNop().Sugar()))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Kind).To(Equal(EventError))
		Expect(events[0].Err).To(MatchError(io.ErrUnexpectedEOF))
	})

	It("surfaces recognition errors carried in the response", func() {
		stream := &scriptedStream{
			responses: []*speechpb.StreamingRecognizeResponse{{
				Error: &status.Status{Message: "audio too long"},
			}},
		}

		events := collect(newStreamSession(stream, zap.NewNop().Sugar()))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Kind).To(Equal(EventError))
		Expect(events[0].Err).To(MatchError(ContainSubstring("audio too long")))
	})

	It("relays audio to the stream and closes it with the session", func() {
		stream := &scriptedStream{}
		session := newStreamSession(stream, zap.NewNop().Sugar())

		Expect(session.Send([]byte("chunk"))).To(Succeed())
		Expect(session.Close()).To(Succeed())

		Expect(stream.sent).To(HaveLen(1))
		Expect(stream.closed).To(BeTrue())
	})
})
