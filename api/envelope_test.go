package api_test

import (
	"strings"

	"github.com/glucomate-org/glucomate/api"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Envelope", func() {
	Describe("DecodeEnvelope", func() {
		It("decodes the standard wrapper", func() {
			envelope := api.DecodeEnvelope(strings.NewReader(`{"success":true,"message":"ok","data":{"id":"1"}}`))

			Expect(envelope.Failed()).To(BeFalse())
			Expect(envelope.Message).To(Equal("ok"))
			Expect(envelope.Data).To(HaveKeyWithValue("id", "1"))
		})

		It("tolerates an empty body", func() {
			envelope := api.DecodeEnvelope(strings.NewReader(""))

			Expect(envelope.Failed()).To(BeFalse())
			Expect(envelope.Message).To(BeEmpty())
		})

		It("tolerates a malformed body", func() {
			envelope := api.DecodeEnvelope(strings.NewReader("<html>bad gateway</html>"))

			Expect(envelope.Failed()).To(BeFalse())
		})
	})

	Describe("Failed", func() {
		It("only counts an explicit false", func() {
			Expect(api.DecodeEnvelope(strings.NewReader(`{"message":"hi"}`)).Failed()).To(BeFalse())
			Expect(api.DecodeEnvelope(strings.NewReader(`{"success":false}`)).Failed()).To(BeTrue())
		})
	})

	Describe("DecodeData", func() {
		It("maps the data object using json tags", func() {
			envelope := api.DecodeEnvelope(strings.NewReader(`{"success":true,"data":{"session_id":"s1"}}`))

			target := struct {
				SessionID string `json:"session_id"`
			}{}
			Expect(envelope.DecodeData(&target)).To(Succeed())
			Expect(target.SessionID).To(Equal("s1"))
		})

		It("falls back to the top level when the wrapper is missing", func() {
			envelope := api.DecodeEnvelope(strings.NewReader(`{"online":true,"model":"glucomate-1"}`))

			target := struct {
				Online bool   `json:"online"`
				Model  string `json:"model"`
			}{}
			Expect(envelope.DecodeData(&target)).To(Succeed())
			Expect(target.Online).To(BeTrue())
			Expect(target.Model).To(Equal("glucomate-1"))
		})

		It("tolerates numbers encoded as strings", func() {
			envelope := api.DecodeEnvelope(strings.NewReader(`{"data":{"count":"3"}}`))

			target := struct {
				Count int `json:"count"`
			}{}
			Expect(envelope.DecodeData(&target)).To(Succeed())
			Expect(target.Count).To(Equal(3))
		})
	})
})
