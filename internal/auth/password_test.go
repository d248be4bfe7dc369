package auth_test

import (
	"github.com/mercadinho/gestao/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Password Hasher", func() {
	var hasher *auth.PasswordHasher

	BeforeEach(func() {
		// Small parameters to keep the suite fast.
		hasher = auth.NewPasswordHasher(8*1024, 1, 1)
	})

	Describe("Hash", func() {
		It("should produce a PHC-encoded argon2id digest", func() {
			digest, err := hasher.Hash("admin123")
			Expect(err).NotTo(HaveOccurred())
			Expect(digest).To(HavePrefix("$argon2id$"))
		})

		It("should salt each digest independently", func() {
			first, err := hasher.Hash("admin123")
			Expect(err).NotTo(HaveOccurred())
			second, err := hasher.Hash("admin123")
			Expect(err).NotTo(HaveOccurred())
			Expect(first).NotTo(Equal(second))
		})
	})

	Describe("Verify", func() {
		It("should accept the original plaintext", func() {
			digest, err := hasher.Hash("segredo-forte")
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Verify(digest, "segredo-forte")).To(Succeed())
		})

		It("should reject a wrong password with the mismatch error", func() {
			digest, err := hasher.Hash("segredo-forte")
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Verify(digest, "segredo-errado")).To(MatchError(auth.ErrMismatchedPassword))
		})

		It("should distinguish a malformed digest from a mismatch", func() {
			err := hasher.Verify("not-a-digest", "whatever")
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(auth.ErrMismatchedPassword))
		})

		It("should verify digests hashed with different parameters", func() {
			digest, err := auth.NewPasswordHasher(16*1024, 2, 1).Hash("senha")
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Verify(digest, "senha")).To(Succeed())
		})
	})
})
