package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/flash"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/middleware"
	"github.com/BruksfildServices01/agendamento-smul/internal/session"
	ucAgendamento "github.com/BruksfildServices01/agendamento-smul/internal/usecase/agendamento"
)

// ======================================================
// MENU
// ======================================================

type MenuItem struct {
	Chave  string
	Rotulo string
	Href   string
}

// Menu monta a barra lateral para a permissão efetiva.
func Menu(cfg *config.Config, p usuario.Permissao) []MenuItem {
	itens := []MenuItem{{"agendamentos", "Agendamentos", cfg.Path("/")}}

	if usuario.PodeVerDashboard(p) {
		itens = append(itens, MenuItem{"dashboard", "Dashboard", cfg.Path("/dashboard")})
	}
	if usuario.PodeImportar(p) {
		itens = append(itens, MenuItem{"importar", "Importar planilha", cfg.Path("/importar-planilha")})
	}
	if usuario.PodeGerenciarCadastros(p) {
		itens = append(itens,
			MenuItem{"coordenadorias", "Coordenadorias", cfg.Path("/coordenadorias")},
			MenuItem{"motivos", "Motivos", cfg.Path("/motivos")},
			MenuItem{"tipos-agendamento", "Tipos de agendamento", cfg.Path("/tipos-agendamento")},
		)
	}
	if usuario.PodeGerenciarUsuarios(p) {
		itens = append(itens, MenuItem{"usuarios", "Usuários", cfg.Path("/usuarios")})
	}
	if usuario.PodeVerRegistroAcoes(p) {
		itens = append(itens, MenuItem{"registro", "Registro de ações", cfg.Path("/registro-acoes")})
	}
	return itens
}

// ======================================================
// RENDERER
// ======================================================

// Renderer junta os dados comuns do layout (sessão, menu, flash) e
// concentra o padrão post-redirect-get das páginas.
type Renderer struct {
	cfg     *config.Config
	flash   flash.Store
	cookies session.Cookies
}

func NewRenderer(cfg *config.Config, fl flash.Store, cookies session.Cookies) *Renderer {
	return &Renderer{cfg: cfg, flash: fl, cookies: cookies}
}

func (r *Renderer) HTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["BasePath"] = r.cfg.BasePath
	data["Flash"] = r.flash.Pop(c)

	if s := middleware.GetSession(c); s != nil {
		data["Sessao"] = s
		data["Menu"] = Menu(r.cfg, s.Permissao())
		data["OpcoesPersonificacao"] = usuario.OpcoesPersonificacao
	}

	c.HTML(status, "base", data)
}

// Redirect usa 303 para que o navegador troque o POST por GET.
func (r *Renderer) Redirect(c *gin.Context, p string) {
	c.Redirect(http.StatusSeeOther, r.cfg.Path(p))
}

func (r *Renderer) Sucesso(c *gin.Context, destino, titulo, descricao string) {
	r.flash.Success(c, titulo, descricao)
	r.Redirect(c, destino)
}

func (r *Renderer) Alerta(c *gin.Context, destino, titulo, descricao string) {
	r.flash.Warning(c, titulo, descricao)
	r.Redirect(c, destino)
}

// Falha trata o erro de uma ação: sessão recusada pelo backend volta
// ao login; o resto vira um aviso na página de destino.
func (r *Renderer) Falha(c *gin.Context, destino, titulo string, err error) {
	if apiclient.IsUnauthorized(err) {
		r.cookies.Clear(c.Writer)
		r.flash.Error(c, "Sessão expirada", httperr.Message(err))
		r.Redirect(c, "/login")
		return
	}

	if httperr.Status(err) >= http.StatusInternalServerError {
		log.Printf("[WEB] %s %s (req %s): %v",
			c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
	}

	r.flash.Error(c, titulo, httperr.Message(err))
	r.Redirect(c, destino)
}

// ======================================================
// HELPERS
// ======================================================

// ator traduz a sessão para quem executa o caso de uso.
func ator(c *gin.Context) ucAgendamento.Ator {
	s := middleware.GetSession(c)
	return ucAgendamento.Ator{
		UsuarioID: s.UsuarioID(),
		Login:     s.Claims.Login,
		Permissao: s.Permissao(),
		Auth:      s.Auth(),
		RequestID: middleware.GetRequestID(c),
	}
}

func pagina(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("pagina"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginacao guarda os links de anterior/próxima preservando os filtros.
type Paginacao struct {
	Pagina   int
	Total    int
	Anterior string
	Proxima  string
}

func paginacao(c *gin.Context, atual, total int) Paginacao {
	link := func(n int) string {
		q := url.Values{}
		for k, v := range c.Request.URL.Query() {
			q[k] = v
		}
		q.Set("pagina", strconv.Itoa(n))
		return c.Request.URL.Path + "?" + q.Encode()
	}

	p := Paginacao{Pagina: atual, Total: total}
	if atual > 1 {
		p.Anterior = link(atual - 1)
	}
	if atual < total {
		p.Proxima = link(atual + 1)
	}
	return p
}

// evento monta o registro de auditoria das ações feitas fora dos
// casos de uso de agendamento.
func evento(c *gin.Context, action, entity, id string, meta any) audit.Event {
	a := ator(c)
	return audit.Event{
		UsuarioID: a.UsuarioID,
		Login:     a.Login,
		Permissao: string(a.Permissao),
		Action:    action,
		Entity:    entity,
		EntityID:  id,
		RequestID: a.RequestID,
		Metadata:  meta,
	}
}
