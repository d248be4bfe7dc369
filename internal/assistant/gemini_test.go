package assistant_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/mercadinho/gestao/internal/assistant"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Gemini Client", func() {
	newClient := func(upstream *httptest.Server) *assistant.GeminiClient {
		return assistant.NewGeminiClient("test-key", "gemini-1.5-flash", 5*time.Second).
			WithBaseURL(upstream.URL)
	}

	It("should send the instruction and message and return the candidate text", func() {
		var captured map[string]any
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/models/gemini-1.5-flash:generateContent"))
			Expect(r.URL.Query().Get("key")).To(Equal("test-key"))
			Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": "resposta do modelo"}}}},
				},
			})
		}))
		defer upstream.Close()

		reply, err := newClient(upstream).Generate(context.Background(), "instrução", "mensagem")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal("resposta do modelo"))

		Expect(captured["system_instruction"]).NotTo(BeNil())
		contents := captured["contents"].([]any)
		Expect(contents).To(HaveLen(1))
	})

	It("should surface the upstream error message on non-200", func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 403, "message": "API key invalid"},
			})
		}))
		defer upstream.Close()

		_, err := newClient(upstream).Generate(context.Background(), "instrução", "mensagem")
		Expect(err).To(MatchError(ContainSubstring("API key invalid")))
	})

	It("should fail on an empty candidate list", func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer upstream.Close()

		_, err := newClient(upstream).Generate(context.Background(), "instrução", "mensagem")
		Expect(err).To(HaveOccurred())
	})

	It("should respect context cancellation", func() {
		started := make(chan struct{})
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// drain the body so the server notices the client disconnect;
			// the fallback timer keeps Close from waiting on this handler
			io.Copy(io.Discard, r.Body)
			close(started)
			select {
			case <-r.Context().Done():
			case <-time.After(3 * time.Second):
			}
		}))
		defer upstream.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		_, err := newClient(upstream).Generate(ctx, "instrução", "mensagem")
		Expect(err).To(MatchError(ContainSubstring("cancel")))
	})
})
