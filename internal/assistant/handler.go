package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mercadinho/gestao/internal"
	"github.com/mercadinho/gestao/pkg/logger"
)

type Handler struct {
	Service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		Service: service,
		logger:  lg,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

type chatError struct {
	Error string `json:"error"`
}

// Chat replies in its own envelope: {"reply": ...} on success and
// {"error": ...} on failure.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Mensagem não fornecida")
		return
	}

	reply, err := h.Service.Respond(r.Context(), req.Message)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			if appErr.Type == internal.ErrorTypeValidation {
				h.writeError(w, http.StatusBadRequest, "Mensagem não fornecida")
				return
			}
			h.writeError(w, http.StatusInternalServerError, appErr.Message)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Ocorreu um erro interno no assistente.")
		return
	}

	h.writeJSON(w, http.StatusOK, chatReply{Reply: reply})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode chat response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, chatError{Error: message})
}
