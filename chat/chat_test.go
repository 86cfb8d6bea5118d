package chat_test

import (
	"context"
	"path/filepath"

	"github.com/glucomate-org/glucomate/api"
	"github.com/glucomate-org/glucomate/chat"
	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/session"
	"github.com/glucomate-org/glucomate/test"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Chat", func() {
	var server *test.ApiServer
	var service chat.Service

	BeforeEach(func() {
		server = test.NewApiServer()
		DeferCleanup(server.Close)

		logger := zap.NewNop().Sugar()
		store := session.NewStore(&config.Config{
			TokenPath: filepath.Join(GinkgoT().TempDir(), "token"),
		}, logger)

		userID := server.RegisterUser("Ada", "Lovelace", "ada@example.com", "password-123")
		Expect(store.SetToken(server.TokenFor(userID, "ada@example.com"))).To(Succeed())

		client, err := api.NewClientBuilder().
			WithHost(server.URL()).
			WithSessionStore(store).
			Build()
		Expect(err).ToNot(HaveOccurred())

		service, err = chat.NewService(client, config.New(), logger)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Status", func() {
		It("reports assistant availability", func() {
			status, err := service.Status(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(status.Online).To(BeTrue())
			Expect(status.Model).To(Equal("glucomate-1"))
		})
	})

	Describe("Send", func() {
		It("starts a session on the first message", func() {
			reply, err := service.Send(context.Background(), "hello", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(reply.SessionID).ToNot(BeEmpty())
			Expect(reply.Text).To(ContainSubstring("hello"))
		})

		It("continues an existing session", func() {
			first, err := service.Send(context.Background(), "hello", "")
			Expect(err).ToNot(HaveOccurred())

			second, err := service.Send(context.Background(), "again", first.SessionID)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.SessionID).To(Equal(first.SessionID))
		})

		It("rejects empty messages locally", func() {
			_, err := service.Send(context.Background(), "", "")
			Expect(err).To(MatchError(errors.BadRequest.Err))
			Expect(server.Requests()).To(BeEmpty())
		})
	})

	Describe("History", func() {
		It("lists sessions and their messages", func() {
			reply, err := service.Send(context.Background(), "hello", "")
			Expect(err).ToNot(HaveOccurred())

			sessions, err := service.Sessions(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(sessions).To(HaveLen(1))
			Expect(sessions[0].SessionID).To(Equal(reply.SessionID))

			messages, err := service.Messages(context.Background(), reply.SessionID)
			Expect(err).ToNot(HaveOccurred())
			Expect(messages).To(HaveLen(2))
			Expect(messages[0].Sender).To(Equal("user"))
			Expect(messages[1].Sender).To(Equal("assistant"))
		})
	})

	Describe("End", func() {
		It("marks the session as ended", func() {
			reply, err := service.Send(context.Background(), "hello", "")
			Expect(err).ToNot(HaveOccurred())

			Expect(service.End(context.Background(), reply.SessionID)).To(Succeed())

			sessions, err := service.Sessions(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(sessions[0].Ended).To(BeTrue())
		})

		It("requires a session id", func() {
			Expect(service.End(context.Background(), "")).To(MatchError(errors.BadRequest.Err))
		})
	})
})
