package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mercadinho/gestao/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded css/js bundle under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// PageData is the payload every template receives.
type PageData struct {
	Title    string
	UserName string
	Flashes  []session.Flash
	Data     map[string]any
}

// Pages renders the server-side HTML surface. Each page template is parsed
// together with the shared layout.
type Pages struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	logger    *slog.Logger
}

var pageNames = []string{
	"login",
	"esqueci_senha",
	"resetar",
	"dashboard",
	"estoque",
	"vendas",
	"financeiro",
	"administracao",
	"cadastros",
	"relatorios",
	"assistente",
	"about",
	"controledevalidade",
}

func NewPages(sessions *session.Manager, logger *slog.Logger) (*Pages, error) {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &Pages{
		templates: templates,
		sessions:  sessions,
		logger:    logger,
	}, nil
}

// Render draws the named page, draining pending flash notices into it.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	tmpl, ok := p.templates[page]
	if !ok {
		p.logger.Error("unknown page template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	payload := PageData{
		Title:    pageTitles[page],
		UserName: p.sessions.UserName(w, r),
		Flashes:  p.sessions.PopFlashes(w, r),
		Data:     data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", payload); err != nil {
		p.logger.Error("failed to render page", "page", page, "error", err)
	}
}

// Page returns a handler that renders a static page.
func (p *Pages) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.Render(w, r, name, nil)
	}
}

// ReportsPage renders the financial analysis overview with its headline
// indicators.
func (p *Pages) ReportsPage(w http.ResponseWriter, r *http.Request) {
	indicators := map[string]any{
		"ReceitaLiquida":     "R$ 15.2M",
		"MargemLiquida":      "18.7%",
		"ROE":                "24.3%",
		"LiquidezCorrente":   "2.8x",
		"CrescimentoReceita": "↗ +12.5% vs ano anterior",
		"CrescimentoMargem":  "↗ +2.1 p.p.",
		"CrescimentoROE":     "↗ +3.8 p.p.",
		"StatusLiquidez":     "↗ Melhoria",
	}
	p.Render(w, r, "relatorios", indicators)
}

var pageTitles = map[string]string{
	"login":              "Login",
	"esqueci_senha":      "Esqueci a Senha",
	"resetar":            "Redefinir Senha",
	"dashboard":          "Dashboard",
	"estoque":            "Estoque",
	"vendas":             "Vendas",
	"financeiro":         "Financeiro",
	"administracao":      "Administração",
	"cadastros":          "Cadastros",
	"relatorios":         "Relatórios",
	"assistente":         "Assistente",
	"about":              "Sobre",
	"controledevalidade": "Controle de Validade",
}
