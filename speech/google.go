package speech

import (
	"context"
	"errors"
	"io"
	"os"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/glucomate-org/glucomate/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	sampleRateHertz = 16000
	audioChannels   = 1
)

// recognizeStream is the slice of the Cloud Speech streaming client the
// session pump needs.
type recognizeStream interface {
	Send(*speechpb.StreamingRecognizeRequest) error
	Recv() (*speechpb.StreamingRecognizeResponse, error)
	CloseSend() error
}

type GoogleRecognizer struct {
	credentialsFile string
	language        string
	client          *speech.Client
	logger          *zap.SugaredLogger
}

var _ Recognizer = &GoogleRecognizer{}

// NewRecognizer picks the Cloud Speech backend when credentials are
// configured and the disabled backend otherwise.
func NewRecognizer(cfg *config.Config, logger *zap.SugaredLogger) Recognizer {
	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		logger.Debug("no speech credentials configured, voice features disabled")
		return NewDisabledRecognizer()
	}
	return &GoogleRecognizer{
		credentialsFile: credentialsFile,
		language:        cfg.SpeechLanguage,
		logger:          logger,
	}
}

func (g *GoogleRecognizer) Available() bool {
	return true
}

func (g *GoogleRecognizer) Listen(ctx context.Context) (*Session, error) {
	if g.client == nil {
		client, err := speech.NewClient(ctx, option.WithCredentialsFile(g.credentialsFile))
		if err != nil {
			return nil, err
		}
		g.client = client
	}

	stream, err := g.client.StreamingRecognize(ctx)
	if err != nil {
		return nil, err
	}

	streamingConfig := &speechpb.StreamingRecognitionConfig{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   sampleRateHertz,
			AudioChannelCount: audioChannels,
			LanguageCode:      g.language,
		},
		InterimResults: true,
	}
	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: streamingConfig,
		},
	}); err != nil {
		return nil, err
	}

	return newStreamSession(stream, g.logger), nil
}

type streamAudio struct {
	stream recognizeStream
}

func (a *streamAudio) SendAudio(audio []byte) error {
	return a.stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: audio,
		},
	})
}

func (a *streamAudio) Close() error {
	return a.stream.CloseSend()
}

func newStreamSession(stream recognizeStream, logger *zap.SugaredLogger) *Session {
	events := make(chan Event)
	go pump(stream, events, logger)
	return NewSession(events, &streamAudio{stream: stream})
}

// pump converts streaming responses into the session's event sequence and
// enforces its termination contract: the channel closes after the first
// final transcript or error.
func pump(stream recognizeStream, events chan<- Event, logger *zap.SugaredLogger) {
	defer close(events)

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			events <- Event{Kind: EventError, Err: err}
			return
		}
		if respErr := resp.GetError(); respErr != nil {
			events <- Event{Kind: EventError, Err: errors.New(respErr.GetMessage())}
			return
		}

		for _, result := range resp.GetResults() {
			if len(result.GetAlternatives()) == 0 {
				continue
			}
			transcript := result.GetAlternatives()[0].GetTranscript()
			if result.GetIsFinal() {
				logger.Debugw("final transcript", "transcript", transcript)
				events <- Event{Kind: EventFinal, Transcript: transcript}
				return
			}
			events <- Event{Kind: EventInterim, Transcript: transcript}
		}
	}
}
