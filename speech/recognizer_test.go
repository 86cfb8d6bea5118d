package speech_test

import (
	"context"

	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/speech"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Recognizer", func() {
	Describe("NewRecognizer", func() {
		It("degrades to the disabled recognizer without credentials", func() {
			GinkgoT().Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

			recognizer := speech.NewRecognizer(config.New(), zap.NewNop().Sugar())
			Expect(recognizer.Available()).To(BeFalse())
		})

		It("picks the cloud backend when credentials are configured", func() {
			GinkgoT().Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/credentials.json")

			recognizer := speech.NewRecognizer(config.New(), zap.NewNop().Sugar())
			Expect(recognizer.Available()).To(BeTrue())
		})
	})

	Describe("DisabledRecognizer", func() {
		It("refuses to listen", func() {
			_, err := speech.NewDisabledRecognizer().Listen(context.Background())
			Expect(err).To(MatchError(speech.ErrUnavailable))
		})
	})
})
