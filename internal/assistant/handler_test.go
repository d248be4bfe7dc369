package assistant_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/mercadinho/gestao/internal/assistant"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Chat Handler", func() {
	var (
		generator *MockGenerator
		handler   *assistant.Handler
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Chat(w, req)
		return w
	}

	BeforeEach(func() {
		generator = &MockGenerator{reply: "resposta detalhada"}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = assistant.NewHandler(assistant.NewService(generator, true, logger))
	})

	It("should answer a greeting without calling upstream", func() {
		w := post(`{"message":"oi"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["reply"]).To(ContainSubstring("assistente de gestão e contabilidade"))
		Expect(generator.called).To(BeFalse())
	})

	It("should answer 400 with the error envelope for an empty message", func() {
		w := post(`{"message":""}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["error"]).To(Equal("Mensagem não fornecida"))
	})

	It("should answer 400 for a malformed body", func() {
		w := post(`{nope`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 500 when the assistant is not configured", func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = assistant.NewHandler(assistant.NewService(generator, false, logger))

		w := post(`{"message":"como faço fluxo de caixa?"}`)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["error"]).To(ContainSubstring("não está configurada"))
	})

	It("should answer 500 with a safe message on upstream failure", func() {
		generator.err = errors.New("dial tcp: connection refused")

		w := post(`{"message":"como faço fluxo de caixa?"}`)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["error"]).To(Equal("Ocorreu um erro interno no assistente."))
	})

	It("should return the model reply for a real question", func() {
		w := post(`{"message":"como faço fluxo de caixa?"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["reply"]).To(Equal("resposta detalhada"))
	})
})
