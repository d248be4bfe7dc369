package product_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	"github.com/mercadinho/gestao/internal/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Product Handler", func() {
	var (
		mockRepo *MockRepository
		router   *chi.Mux
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := product.NewService(mockRepo, logger)
		handler := product.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/api/produtos", handler.ListProducts)
		router.Post("/api/produtos", handler.CreateProduct)
		router.Put("/api/produtos/{id}", handler.UpdateProduct)
		router.Delete("/api/produtos/{id}", handler.DeleteProduct)
	})

	Describe("POST /api/produtos", func() {
		It("should create a product and answer 201 with its id", func() {
			body := bytes.NewBufferString(`{"nome":"Arroz","preco":25.0}`)
			req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["id"]).To(BeNumerically(">", 0))
		})

		It("should answer 400 for a missing price", func() {
			body := bytes.NewBufferString(`{"nome":"Arroz"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 400 for a malformed body", func() {
			body := bytes.NewBufferString(`{nope`)
			req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/produtos", func() {
		It("should list products as a JSON array", func() {
			mockRepo.Create(&product.Product{Name: "Arroz", Price: 25.0})

			req := httptest.NewRequest(http.MethodGet, "/api/produtos", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(1))
			Expect(resp[0]["nome"]).To(Equal("Arroz"))
			Expect(resp[0]["categoria_nome"]).To(Equal(product.NoCategoryLabel))
		})
	})

	Describe("PUT /api/produtos/{id}", func() {
		It("should answer 404 for an unknown id", func() {
			body := bytes.NewBufferString(`{"preco":9.9}`)
			req := httptest.NewRequest(http.MethodPut, "/api/produtos/999", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should answer with the update confirmation", func() {
			mockRepo.Create(&product.Product{Name: "Arroz", Price: 25.0})

			body := bytes.NewBufferString(`{"preco":9.9}`)
			req := httptest.NewRequest(http.MethodPut, "/api/produtos/1", body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Produto atualizado com sucesso"))
		})
	})

	Describe("DELETE /api/produtos/{id}", func() {
		It("should answer with the delete confirmation", func() {
			mockRepo.Create(&product.Product{Name: "Arroz", Price: 25.0})

			req := httptest.NewRequest(http.MethodDelete, "/api/produtos/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Produto excluído com sucesso"))
		})

		It("should answer 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/produtos/abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
