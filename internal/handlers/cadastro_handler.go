package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/tipoagendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
)

const tamanhoPaginaCadastro = 10

// CadastroItem é a linha comum das tabelas de coordenadorias, motivos
// e tipos de agendamento.
type CadastroItem struct {
	ID     string
	Sigla  string
	Nome   string
	Email  string
	Texto  string
	Status bool
}

// Recurso descreve um cadastro simples: rótulos da tela e as chamadas
// ao backend.
type Recurso struct {
	Chave    string
	Titulo   string
	Singular string
	// "a" ou "o", para "Coordenadoria Ativada" / "Motivo Ativado"
	Genero   string
	ComSigla bool

	listar    func(ctx context.Context, auth apiclient.Auth, f apiclient.FiltroCadastro) (dto.Paginado[CadastroItem], error)
	salvar    func(ctx context.Context, auth apiclient.Auth, id string, c *gin.Context) error
	ativar    func(ctx context.Context, auth apiclient.Auth, id string) error
	desativar func(ctx context.Context, auth apiclient.Auth, id string) error
}

func (r Recurso) Base() string {
	return "/" + r.Chave
}

func converter[T any](p dto.Paginado[T], fn func(T) CadastroItem) dto.Paginado[CadastroItem] {
	out := dto.Paginado[CadastroItem]{
		Data:   make([]CadastroItem, 0, len(p.Data)),
		Total:  p.Total,
		Pagina: p.Pagina,
		Limite: p.Limite,
	}
	for _, v := range p.Data {
		out.Data = append(out.Data, fn(v))
	}
	return out
}

func ativo() *bool {
	t := true
	return &t
}

// ======================================================
// RECURSOS
// ======================================================

func CoordenadoriasRecurso(api *apiclient.Cached) Recurso {
	return Recurso{
		Chave:    "coordenadorias",
		Titulo:   "Coordenadorias",
		Singular: "Coordenadoria",
		Genero:   "a",
		ComSigla: true,
		listar: func(ctx context.Context, auth apiclient.Auth, f apiclient.FiltroCadastro) (dto.Paginado[CadastroItem], error) {
			p, err := api.ListarCoordenadorias(ctx, auth, f)
			return converter(p, func(v coordenadoria.Coordenadoria) CadastroItem {
				return CadastroItem{ID: v.ID, Sigla: v.Sigla, Nome: v.Nome, Email: v.Email, Status: v.Status}
			}), err
		},
		salvar: func(ctx context.Context, auth apiclient.Auth, id string, c *gin.Context) error {
			in := coordenadoria.Salvar{
				Sigla: c.PostForm("sigla"),
				Nome:  c.PostForm("nome"),
				Email: c.PostForm("email"),
			}
			if err := in.Validate(); err != nil {
				return err
			}
			var err error
			if id == "" {
				_, err = api.CriarCoordenadoria(ctx, auth, in)
			} else {
				_, err = api.AtualizarCoordenadoria(ctx, auth, id, in)
			}
			return err
		},
		ativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.AtualizarCoordenadoria(ctx, auth, id, coordenadoria.Salvar{Status: ativo()})
			return err
		},
		desativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.DesativarCoordenadoria(ctx, auth, id)
			return err
		},
	}
}

func MotivosRecurso(api *apiclient.Cached) Recurso {
	return Recurso{
		Chave:    "motivos",
		Titulo:   "Motivos",
		Singular: "Motivo",
		Genero:   "o",
		listar: func(ctx context.Context, auth apiclient.Auth, f apiclient.FiltroCadastro) (dto.Paginado[CadastroItem], error) {
			p, err := api.ListarMotivos(ctx, auth, f)
			return converter(p, func(v motivo.Motivo) CadastroItem {
				return CadastroItem{ID: v.ID, Texto: v.Texto, Status: v.Status}
			}), err
		},
		salvar: func(ctx context.Context, auth apiclient.Auth, id string, c *gin.Context) error {
			in := motivo.Salvar{Texto: c.PostForm("texto")}
			if err := in.Validate(); err != nil {
				return err
			}
			var err error
			if id == "" {
				_, err = api.CriarMotivo(ctx, auth, in)
			} else {
				_, err = api.AtualizarMotivo(ctx, auth, id, in)
			}
			return err
		},
		ativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.AtualizarMotivo(ctx, auth, id, motivo.Salvar{Status: ativo()})
			return err
		},
		desativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.DesativarMotivo(ctx, auth, id)
			return err
		},
	}
}

func TiposRecurso(api *apiclient.Cached) Recurso {
	return Recurso{
		Chave:    "tipos-agendamento",
		Titulo:   "Tipos de agendamento",
		Singular: "Tipo de agendamento",
		Genero:   "o",
		listar: func(ctx context.Context, auth apiclient.Auth, f apiclient.FiltroCadastro) (dto.Paginado[CadastroItem], error) {
			p, err := api.ListarTipos(ctx, auth, f)
			return converter(p, func(v tipoagendamento.TipoAgendamento) CadastroItem {
				return CadastroItem{ID: v.ID, Texto: v.Texto, Status: v.Status}
			}), err
		},
		salvar: func(ctx context.Context, auth apiclient.Auth, id string, c *gin.Context) error {
			in := tipoagendamento.Salvar{Texto: c.PostForm("texto")}
			if err := in.Validate(); err != nil {
				return err
			}
			var err error
			if id == "" {
				_, err = api.CriarTipo(ctx, auth, in)
			} else {
				_, err = api.AtualizarTipo(ctx, auth, id, in)
			}
			return err
		},
		ativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.AtualizarTipo(ctx, auth, id, tipoagendamento.Salvar{Status: ativo()})
			return err
		},
		desativar: func(ctx context.Context, auth apiclient.Auth, id string) error {
			_, err := api.DesativarTipo(ctx, auth, id)
			return err
		},
	}
}

// ======================================================
// HANDLER
// ======================================================

type CadastroHandler struct {
	recurso Recurso
	render  *Renderer
	audit   *audit.Dispatcher
}

func NewCadastroHandler(recurso Recurso, render *Renderer, audit *audit.Dispatcher) *CadastroHandler {
	return &CadastroHandler{recurso: recurso, render: render, audit: audit}
}

func (h *CadastroHandler) List(c *gin.Context) {
	a := ator(c)

	status := c.Query("status")
	if status != "ATIVO" && status != "INATIVO" {
		status = ""
	}

	filtro := apiclient.FiltroCadastro{
		Pagina: pagina(c),
		Limite: tamanhoPaginaCadastro,
		Busca:  strings.TrimSpace(c.Query("busca")),
		Status: status,
	}

	data := gin.H{
		"Ativo":   h.recurso.Chave,
		"Recurso": h.recurso,
		"Filtro":  filtro,
	}

	p, err := h.recurso.listar(c.Request.Context(), a.Auth, filtro)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			h.render.Falha(c, "/login", "Sessão expirada", err)
			return
		}
		data["Erro"] = "Não foi possível carregar " + strings.ToLower(h.recurso.Titulo) + "."
	} else {
		data["Pagina"] = p
		data["Paginacao"] = paginacao(c, p.Pagina, p.TotalPaginas())
	}

	h.render.HTML(c, http.StatusOK, "cadastros", data)
}

func (h *CadastroHandler) Create(c *gin.Context) {
	h.salvar(c, "")
}

func (h *CadastroHandler) Update(c *gin.Context) {
	h.salvar(c, c.Param("id"))
}

func (h *CadastroHandler) salvar(c *gin.Context, id string) {
	r := h.recurso

	if err := r.salvar(c.Request.Context(), ator(c).Auth, id, c); err != nil {
		h.render.Falha(c, r.Base(), "Erro ao salvar", err)
		return
	}

	acao, titulo := "criar", r.Singular+" criad"+r.Genero
	if id != "" {
		acao, titulo = "atualizar", r.Singular+" atualizad"+r.Genero
	}
	h.audit.Dispatch(evento(c, acao+"_"+r.Chave, r.Chave, id, nil))

	h.render.Sucesso(c, r.Base(), titulo, "")
}

// Toggle alterna o status: ativo é desativado pelo DELETE do backend
// e inativo volta com status=true.
func (h *CadastroHandler) Toggle(c *gin.Context) {
	r := h.recurso
	id := c.Param("id")
	auth := ator(c).Auth
	estavaAtivo := c.PostForm("ativo") == "true"

	var err error
	acao, titulo := "ativar", r.Singular+" Ativad"+r.Genero
	if estavaAtivo {
		acao, titulo = "desativar", r.Singular+" Desativad"+r.Genero
		err = r.desativar(c.Request.Context(), auth, id)
	} else {
		err = r.ativar(c.Request.Context(), auth, id)
	}
	if err != nil {
		h.render.Falha(c, r.Base(), "Erro ao alterar status", err)
		return
	}

	h.audit.Dispatch(evento(c, acao+"_"+r.Chave, r.Chave, id, nil))
	h.render.Sucesso(c, r.Base(), titulo, "")
}

func (h *CadastroHandler) Base() string {
	return h.recurso.Base()
}
