package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

const tamanhoPaginaUsuarios = 10

// ======================================================
// HANDLER
// ======================================================

type UsuarioHandler struct {
	api    *apiclient.Cached
	render *Renderer
	audit  *audit.Dispatcher
}

func NewUsuarioHandler(api *apiclient.Cached, render *Renderer, audit *audit.Dispatcher) *UsuarioHandler {
	return &UsuarioHandler{api: api, render: render, audit: audit}
}

func (h *UsuarioHandler) coordenadorias(c *gin.Context) []coordenadoria.Coordenadoria {
	coords, err := h.api.CoordenadoriasListaCompleta(c.Request.Context(), ator(c).Auth)
	if err != nil {
		log.Printf("[USUARIOS] coordenadorias: %v", err)
	}
	return coordenadoria.Ativas(coords)
}

// ======================================================
// LISTA
// ======================================================

func (h *UsuarioHandler) List(c *gin.Context) {
	a := ator(c)

	status := c.Query("status")
	if status != "ATIVO" && status != "INATIVO" {
		status = ""
	}
	permissao := c.Query("permissao")
	if !usuario.Permissao(permissao).IsValid() {
		permissao = ""
	}

	filtro := apiclient.FiltroUsuario{
		Pagina:    pagina(c),
		Limite:    tamanhoPaginaUsuarios,
		Busca:     strings.TrimSpace(c.Query("busca")),
		Status:    status,
		Permissao: permissao,
	}

	data := gin.H{
		"Ativo":          "usuarios",
		"Filtro":         filtro,
		"Permissoes":     usuario.Todas,
		"Opcoes":         usuario.OpcoesAtribuiveis(a.Permissao),
		"Coordenadorias": h.coordenadorias(c),
	}

	p, err := h.api.ListarUsuarios(c.Request.Context(), a.Auth, filtro)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			h.render.Falha(c, "/login", "Sessão expirada", err)
			return
		}
		log.Printf("[USUARIOS] lista: %v", err)
		data["Erro"] = "Não foi possível carregar os usuários."
	} else {
		data["Pagina"] = p
		data["Paginacao"] = paginacao(c, p.Pagina, p.TotalPaginas())
	}

	h.render.HTML(c, http.StatusOK, "usuarios", data)
}

// ======================================================
// NOVO (BUSCA NO DIRETÓRIO)
// ======================================================

func (h *UsuarioHandler) Novo(c *gin.Context) {
	a := ator(c)
	login := strings.TrimSpace(c.Query("login"))

	data := gin.H{
		"Ativo":          "usuarios",
		"LoginBusca":     login,
		"Opcoes":         usuario.OpcoesAtribuiveis(a.Permissao),
		"Coordenadorias": h.coordenadorias(c),
	}

	if login != "" {
		novo, err := h.api.BuscarNovoUsuario(c.Request.Context(), a.Auth, login)
		switch {
		case err == nil:
			data["Novo"] = novo
		case apiclient.IsNotFound(err):
			data["NovoErro"] = "Usuário não encontrado."
		case apiclient.IsUnauthorized(err):
			h.render.Falha(c, "/login", "Sessão expirada", err)
			return
		default:
			data["NovoErro"] = httperr.Message(err)
		}
	}

	h.render.HTML(c, http.StatusOK, "usuario-novo", data)
}

func (h *UsuarioHandler) Create(c *gin.Context) {
	a := ator(c)

	in := usuario.CriarUsuario{
		Nome:            strings.TrimSpace(c.PostForm("nome")),
		Login:           strings.TrimSpace(c.PostForm("login")),
		Email:           validators.NormalizeEmail(c.PostForm("email")),
		Permissao:       usuario.Permissao(c.PostForm("permissao")),
		CoordenadoriaID: strings.TrimSpace(c.PostForm("coordenadoriaId")),
	}
	voltar := "/usuarios/novo?login=" + url.QueryEscape(in.Login)

	if in.Nome == "" || in.Login == "" {
		h.render.Falha(c, voltar, "Erro ao criar usuário", httperr.ErrBusiness("campos_obrigatorios"))
		return
	}
	if in.Email != "" && !validators.IsEmail(in.Email) {
		h.render.Falha(c, voltar, "Erro ao criar usuário", httperr.ErrBusiness("email_invalido"))
		return
	}
	if err := usuario.ValidarVinculo(a.Permissao, in.Permissao, in.CoordenadoriaID); err != nil {
		h.render.Falha(c, voltar, "Erro ao criar usuário", err)
		return
	}

	u, err := h.api.CriarUsuario(c.Request.Context(), a.Auth, in)
	if err != nil {
		h.render.Falha(c, voltar, "Erro ao criar usuário", err)
		return
	}

	h.audit.Dispatch(evento(c, "criar_usuario", "usuario", u.ID, map[string]string{
		"login":     u.Login,
		"permissao": string(in.Permissao),
	}))
	h.render.Sucesso(c, "/usuarios", "Usuário criado", u.NomeExibicao()+" foi cadastrado.")
}

// ======================================================
// ALTERAÇÕES
// ======================================================

// alvo confere se o usuário existe e se o perfil atual dele está ao
// alcance de quem edita.
func (h *UsuarioHandler) alvo(c *gin.Context, id string) (*usuario.Usuario, error) {
	a := ator(c)
	u, err := h.api.BuscarUsuario(c.Request.Context(), a.Auth, id)
	if err != nil {
		return nil, err
	}
	if !usuario.PodeAtribuirPermissao(a.Permissao, u.Permissao) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return u, nil
}

func (h *UsuarioHandler) Update(c *gin.Context) {
	a := ator(c)
	id := c.Param("id")

	if _, err := h.alvo(c, id); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao atualizar usuário", err)
		return
	}

	in := usuario.AtualizarUsuario{
		Permissao:       usuario.Permissao(c.PostForm("permissao")),
		CoordenadoriaID: strings.TrimSpace(c.PostForm("coordenadoriaId")),
		NomeSocial:      strings.TrimSpace(c.PostForm("nomeSocial")),
	}
	if err := usuario.ValidarVinculo(a.Permissao, in.Permissao, in.CoordenadoriaID); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao atualizar usuário", err)
		return
	}

	u, err := h.api.AtualizarUsuario(c.Request.Context(), a.Auth, id, in)
	if err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao atualizar usuário", err)
		return
	}

	h.audit.Dispatch(evento(c, "atualizar_usuario", "usuario", id, map[string]string{
		"permissao": string(in.Permissao),
	}))
	h.render.Sucesso(c, "/usuarios", "Usuário atualizado", u.NomeExibicao())
}

func (h *UsuarioHandler) Desativar(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.alvo(c, id); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao desativar usuário", err)
		return
	}
	if _, err := h.api.DesativarUsuario(c.Request.Context(), ator(c).Auth, id); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao desativar usuário", err)
		return
	}

	h.audit.Dispatch(evento(c, "desativar_usuario", "usuario", id, nil))
	h.render.Sucesso(c, "/usuarios", "Usuário desativado", "")
}

func (h *UsuarioHandler) Autorizar(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.alvo(c, id); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao autorizar usuário", err)
		return
	}
	if _, err := h.api.AutorizarUsuario(c.Request.Context(), ator(c).Auth, id); err != nil {
		h.render.Falha(c, "/usuarios", "Erro ao autorizar usuário", err)
		return
	}

	h.audit.Dispatch(evento(c, "autorizar_usuario", "usuario", id, nil))
	h.render.Sucesso(c, "/usuarios", "Usuário autorizado", "")
}
