package auth_test

import (
	"time"

	"github.com/mercadinho/gestao/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Token Service", func() {
	var (
		tokens *auth.TokenService
		issued time.Time
	)

	BeforeEach(func() {
		issued = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		tokens = auth.NewTokenService("uma-chave-secreta-com-32-bytes!!").
			WithClock(func() time.Time { return issued })
	})

	Describe("Issue and Validate", func() {
		It("should round-trip the email", func() {
			token, err := tokens.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			email, issuedAt, err := tokens.Validate(token, auth.ResetPurposeSalt, time.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(email).To(Equal("admin@email.com"))
			Expect(issuedAt.Unix()).To(Equal(issued.Unix()))
		})

		It("should accept a token just inside its max age", func() {
			token, err := tokens.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			tokens.WithClock(func() time.Time { return issued.Add(time.Hour - time.Second) })
			_, _, err = tokens.Validate(token, auth.ResetPurposeSalt, time.Hour)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should expire a token past its max age", func() {
			token, err := tokens.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			tokens.WithClock(func() time.Time { return issued.Add(time.Hour + time.Second) })
			_, _, err = tokens.Validate(token, auth.ResetPurposeSalt, time.Hour)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("should reject a token validated under another purpose salt", func() {
			token, err := tokens.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = tokens.Validate(token, "outro-proposito", time.Hour)
			Expect(err).To(MatchError(auth.ErrTokenInvalid))
		})

		It("should reject a tampered token", func() {
			token, err := tokens.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			tampered := token[:len(token)-2] + "xx"
			_, _, err = tokens.Validate(tampered, auth.ResetPurposeSalt, time.Hour)
			Expect(err).To(MatchError(auth.ErrTokenInvalid))
		})

		It("should reject a token signed with a different secret", func() {
			other := auth.NewTokenService("uma-chave-diferente-com-32-byte!").
				WithClock(func() time.Time { return issued })
			token, err := other.Issue("admin@email.com", auth.ResetPurposeSalt)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = tokens.Validate(token, auth.ResetPurposeSalt, time.Hour)
			Expect(err).To(MatchError(auth.ErrTokenInvalid))
		})
	})
})
