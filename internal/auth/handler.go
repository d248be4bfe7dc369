package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/mercadinho/gestao/internal/session"
	"github.com/mercadinho/gestao/internal/transport"
	"github.com/mercadinho/gestao/pkg/logger"
)

// Renderer draws a page template with flash notices. Satisfied by
// internal/web.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, page string, data map[string]any)
}

// Handler serves the browser-facing login, logout, and password-reset
// routes. These are form posts with redirects, not JSON.
type Handler struct {
	*transport.BaseHandler
	Service  *Service
	Sessions *session.Manager
	Pages    Renderer
}

func NewHandler(svc *Service, sessions *session.Manager, pages Renderer) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
		Pages:       pages,
	}
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, r, "login", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.AddFlash(w, r, "danger", "Requisição inválida.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("senha")

	user, err := h.Service.Login(email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			h.Sessions.AddFlash(w, r, "danger", "Usuário não encontrado.")
		case errors.Is(err, ErrMismatchedPassword):
			h.Sessions.AddFlash(w, r, "danger", "Senha incorreta.")
		default:
			h.Logger.Error("login failed", "error", err)
			h.Sessions.AddFlash(w, r, "danger", "Não foi possível entrar. Tente novamente.")
		}
		h.Pages.Render(w, r, "login", nil)
		return
	}

	h.Sessions.Authenticate(w, r, user.Name)
	h.Sessions.AddFlash(w, r, "success", fmt.Sprintf("Bem-vindo, %s!", user.Name))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w, r)
	h.Sessions.AddFlash(w, r, "info", "Você saiu do sistema.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, r, "esqueci_senha", nil)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.AddFlash(w, r, "danger", "Requisição inválida.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	if err := h.Service.RequestPasswordReset(email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.Sessions.AddFlash(w, r, "danger", "E-mail não encontrado.")
		} else {
			h.Logger.Error("password reset request failed", "error", err)
			h.Sessions.AddFlash(w, r, "danger", "Não foi possível enviar o e-mail. Tente novamente.")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.Sessions.AddFlash(w, r, "success", "E-mail enviado. Verifique sua caixa de entrada.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := h.Service.ValidateResetToken(token); err != nil {
		h.Logger.Warn("reset link rejected", "error", err)
		h.Sessions.AddFlash(w, r, "danger", "O link de redefinição é inválido ou expirou.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.Pages.Render(w, r, "resetar", map[string]any{"Token": token})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := r.ParseForm(); err != nil {
		h.Sessions.AddFlash(w, r, "danger", "Requisição inválida.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Service.ResetPassword(token, r.PostFormValue("senha")); err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid):
			h.Sessions.AddFlash(w, r, "danger", "O link de redefinição é inválido ou expirou.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			h.Logger.Error("password reset failed", "error", err)
			h.Sessions.AddFlash(w, r, "danger", "Não foi possível redefinir a senha. Tente novamente.")
			h.Pages.Render(w, r, "resetar", map[string]any{"Token": token})
		}
		return
	}

	h.Sessions.AddFlash(w, r, "success", "Senha alterada com sucesso. Faça login com sua nova senha.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
