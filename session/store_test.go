package session_test

import (
	"os"
	"path/filepath"

	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Store", func() {
	var store session.Store
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "nested", "token")
		store = session.NewStore(&config.Config{TokenPath: path}, zap.NewNop().Sugar())
	})

	It("returns no session before a token is stored", func() {
		_, err := store.Token()
		Expect(err).To(MatchError(errors.NoSession))
	})

	It("persists the whole token value", func() {
		Expect(store.SetToken("abc.def.ghi")).To(Succeed())

		token, err := store.Token()
		Expect(err).ToNot(HaveOccurred())
		Expect(token).To(Equal("abc.def.ghi"))
	})

	It("replaces the previous token on write", func() {
		Expect(store.SetToken("first")).To(Succeed())
		Expect(store.SetToken("second")).To(Succeed())

		token, err := store.Token()
		Expect(err).ToNot(HaveOccurred())
		Expect(token).To(Equal("second"))
	})

	It("restricts the token file to the owner", func() {
		Expect(store.SetToken("secret")).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
	})

	It("treats a blank token file as no session", func() {
		Expect(store.SetToken("  \n")).To(Succeed())

		_, err := store.Token()
		Expect(err).To(MatchError(errors.NoSession))
	})

	Describe("Clear", func() {
		It("removes the stored token", func() {
			Expect(store.SetToken("abc")).To(Succeed())
			Expect(store.Clear()).To(Succeed())

			_, err := store.Token()
			Expect(err).To(MatchError(errors.NoSession))
		})

		It("is idempotent", func() {
			Expect(store.Clear()).To(Succeed())
			Expect(store.Clear()).To(Succeed())
		})
	})
})
