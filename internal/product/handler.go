package product

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mercadinho/gestao/internal/transport"
	"github.com/mercadinho/gestao/pkg/logger"
)

type ServiceAPI interface {
	ListProducts() ([]ProductResponse, error)
	CreateProduct(dto CreateProductDTO) (*Product, error)
	UpdateProduct(id int64, dto UpdateProductDTO) (*Product, error)
	DeleteProduct(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts()
	if err != nil {
		h.Logger.Error("ListProducts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProduct: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	p, err := h.Service.CreateProduct(dto)
	if err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, transport.APIResponse{Success: true, ID: p.ID})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProduct: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if _, err := h.Service.UpdateProduct(id, dto); err != nil {
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.APIResponse{Success: true, Message: "Produto atualizado com sucesso"})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteProduct(id); err != nil {
		h.Logger.Error("DeleteProduct: service error", "error", err, "product_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.APIResponse{Success: true, Message: "Produto excluído com sucesso"})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Error("invalid product id", "id", raw)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return id, true
}
