package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
	"github.com/BruksfildServices01/agendamento-smul/internal/middleware"
	ucAgendamento "github.com/BruksfildServices01/agendamento-smul/internal/usecase/agendamento"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type AgendamentoHandler struct {
	api    *apiclient.Cached
	render *Renderer

	listar           *ucAgendamento.Listar
	criar            *ucAgendamento.Criar
	atribuir         *ucAgendamento.AtribuirTecnico
	confirmar        *ucAgendamento.ConfirmarAtendimento
	agendarReuniao   *ucAgendamento.AgendarReuniao
	confirmarReuniao *ucAgendamento.ConfirmarReuniao
	excluir          *ucAgendamento.Excluir
	exportar         *ucAgendamento.Exportar
}

func NewAgendamentoHandler(
	api *apiclient.Cached,
	render *Renderer,
	listar *ucAgendamento.Listar,
	criar *ucAgendamento.Criar,
	atribuir *ucAgendamento.AtribuirTecnico,
	confirmar *ucAgendamento.ConfirmarAtendimento,
	agendarReuniao *ucAgendamento.AgendarReuniao,
	confirmarReuniao *ucAgendamento.ConfirmarReuniao,
	excluir *ucAgendamento.Excluir,
	exportar *ucAgendamento.Exportar,
) *AgendamentoHandler {
	return &AgendamentoHandler{
		api:              api,
		render:           render,
		listar:           listar,
		criar:            criar,
		atribuir:         atribuir,
		confirmar:        confirmar,
		agendarReuniao:   agendarReuniao,
		confirmarReuniao: confirmarReuniao,
		excluir:          excluir,
		exportar:         exportar,
	}
}

func listarInput(c *gin.Context) ucAgendamento.ListarInput {
	_, informada := c.GetQuery("data")
	return ucAgendamento.ListarInput{
		Pagina:        pagina(c),
		Busca:         c.Query("busca"),
		Status:        c.Query("status"),
		Data:          c.Query("data"),
		DataInformada: informada,
	}
}

func detalhePath(id string) string {
	return "/agendamentos/" + id
}

// ======================================================
// LISTA (HOME)
// ======================================================

func (h *AgendamentoHandler) Home(c *gin.Context) {
	s := middleware.GetSession(c)
	p := s.Permissao()

	titulo, mostrarTabela := usuario.TituloHome(p)
	in := listarInput(c)

	data := gin.H{
		"Ativo":         "agendamentos",
		"Titulo":        titulo,
		"MostrarTabela": mostrarTabela,
		"Filtro":        in,
		"DataFiltro":    in.DataEfetiva(),
		"Statuses":      domain.Todos,
		"PodeCriar":     usuario.PodeCriarAgendamento(p),
		"PodeExportar":  usuario.PodeExportar(p),
		"PodeExcluir":   usuario.PodeExcluirAgendamento(p),
	}

	if mostrarTabela {
		lista, err := h.listar.Execute(c.Request.Context(), ator(c), in)
		if err != nil {
			if apiclient.IsUnauthorized(err) {
				h.render.Falha(c, "/login", "Sessão expirada", err)
				return
			}
			log.Printf("[WEB] lista de agendamentos: %v", err)
			data["Erro"] = "Não foi possível carregar os agendamentos."
		} else {
			data["Lista"] = lista
			data["Paginacao"] = paginacao(c, lista.Pagina.Pagina, lista.Pagina.TotalPaginas())
			data["ExportarURL"] = h.render.cfg.Path("/agendamentos/exportar") + "?" + c.Request.URL.RawQuery
		}
	}

	h.render.HTML(c, http.StatusOK, "home", data)
}

// ======================================================
// DETALHE
// ======================================================

func (h *AgendamentoHandler) Detalhe(c *gin.Context) {
	a := ator(c)
	ctx := c.Request.Context()

	ag, err := h.api.BuscarAgendamento(ctx, a.Auth, c.Param("id"))
	if err != nil {
		h.render.Falha(c, "/", "Agendamento não encontrado", err)
		return
	}

	acoes := domain.CalcularAcoes(*ag, a.Permissao, a.UsuarioID)

	var tecnicos []usuario.Tecnico
	if acoes.PodeAtribuir {
		if tecnicos, err = h.api.TecnicosPorCoordenadoria(ctx, a.Auth, ag.CoordenadoriaID); err != nil {
			log.Printf("[WEB] técnicos da coordenadoria %s: %v", ag.CoordenadoriaID, err)
		}
	}

	var motivos []motivo.Motivo
	if acoes.PodeRegistrarResultado() {
		ms, err := h.api.MotivosListaCompleta(ctx, a.Auth)
		if err != nil {
			log.Printf("[WEB] motivos: %v", err)
		}
		motivos = motivo.Ativos(ms)
	}

	h.render.HTML(c, http.StatusOK, "detalhe", gin.H{
		"Ativo":       "agendamentos",
		"Agendamento": dto.NovaLinha(*ag, acoes),
		"Tecnicos":    tecnicos,
		"Motivos":     motivos,
		"PodeExcluir": usuario.PodeExcluirAgendamento(a.Permissao),
	})
}

// ======================================================
// NOVO
// ======================================================

func (h *AgendamentoHandler) Novo(c *gin.Context) {
	a := ator(c)
	if !usuario.PodeCriarAgendamento(a.Permissao) {
		h.render.Redirect(c, "/")
		return
	}

	coords, err := h.api.CoordenadoriasListaCompleta(c.Request.Context(), a.Auth)
	if err != nil {
		log.Printf("[WEB] coordenadorias: %v", err)
	}

	h.render.HTML(c, http.StatusOK, "novo", gin.H{
		"Ativo":          "agendamentos",
		"Coordenadorias": coordenadoria.Ativas(coords),
	})
}

func (h *AgendamentoHandler) Criar(c *gin.Context) {
	duracao, _ := strconv.Atoi(c.PostForm("duracao"))

	ag, err := h.criar.Execute(c.Request.Context(), ator(c), ucAgendamento.CriarInput{
		Municipe:        c.PostForm("municipe"),
		RG:              c.PostForm("rg"),
		CPF:             c.PostForm("cpf"),
		Processo:        c.PostForm("processo"),
		DataHora:        c.PostForm("dataHora"),
		Duracao:         duracao,
		Resumo:          c.PostForm("resumo"),
		Email:           c.PostForm("email"),
		CoordenadoriaID: c.PostForm("coordenadoriaId"),
		TecnicoRF:       c.PostForm("tecnicoRF"),
	})
	if err != nil {
		h.render.Falha(c, "/agendamentos/novo", "Erro ao criar agendamento", err)
		return
	}

	h.render.Sucesso(c, detalhePath(ag.ID), "Agendamento criado",
		fmt.Sprintf("Processo %s registrado.", ag.Processo))
}

// ======================================================
// AÇÕES DA LINHA
// ======================================================

// voltar devolve o usuário para a página de onde veio a ação (lista ou
// detalhe); só aceita caminhos da própria aplicação.
func (h *AgendamentoHandler) voltar(c *gin.Context, id string) string {
	if c.PostForm("origem") == "lista" {
		return "/"
	}
	return detalhePath(id)
}

func (h *AgendamentoHandler) Atribuir(c *gin.Context) {
	id := c.Param("id")
	destino := h.voltar(c, id)

	_, tecnico, err := h.atribuir.Execute(c.Request.Context(), ator(c), id, c.PostForm("tecnicoId"))
	if err != nil {
		h.render.Falha(c, destino, "Erro ao atribuir técnico", err)
		return
	}

	h.render.Sucesso(c, destino, "Técnico atribuído", tecnico.Nome+" foi atribuído ao agendamento.")
}

func (h *AgendamentoHandler) Confirmar(c *gin.Context) {
	id := c.Param("id")
	destino := h.voltar(c, id)

	ag, err := h.confirmar.Execute(c.Request.Context(), ator(c), ucAgendamento.ConfirmarAtendimentoInput{
		ID:        id,
		Realizado: c.PostForm("realizado") == "true",
		MotivoID:  c.PostForm("motivoId"),
	})
	if err != nil {
		h.render.Falha(c, destino, "Erro ao confirmar atendimento", err)
		return
	}

	h.render.Sucesso(c, destino, "Atendimento registrado", "Status: "+ag.Status.Label()+".")
}

// ======================================================
// REUNIÃO (TEAMS)
// ======================================================

func (h *AgendamentoHandler) ReuniaoPage(c *gin.Context) {
	id := c.Param("id")

	ag, link, err := h.agendarReuniao.Execute(c.Request.Context(), ator(c), id)
	if err != nil {
		h.render.Falha(c, "/", "Não é possível agendar a reunião", err)
		return
	}

	h.render.HTML(c, http.StatusOK, "reuniao", gin.H{
		"Ativo":       "agendamentos",
		"Agendamento": dto.NovaLinha(*ag, domain.Acoes{}),
		"Link":        link,
	})
}

func (h *AgendamentoHandler) ConfirmarReuniao(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.confirmarReuniao.Execute(c.Request.Context(), ator(c), id, c.PostForm("confirmado") == "true")
	if err != nil {
		h.render.Falha(c, "/", "Erro ao confirmar reunião", err)
		return
	}
	if !ok {
		h.render.Alerta(c, "/", "Reunião não confirmada", "O status do agendamento não foi alterado.")
		return
	}

	h.render.Sucesso(c, "/", "Reunião agendada", "O agendamento foi marcado como Agendado.")
}

// ======================================================
// EXCLUIR / EXPORTAR
// ======================================================

func (h *AgendamentoHandler) Excluir(c *gin.Context) {
	id := c.Param("id")

	if err := h.excluir.Execute(c.Request.Context(), ator(c), id); err != nil {
		h.render.Falha(c, detalhePath(id), "Erro ao excluir agendamento", err)
		return
	}

	h.render.Sucesso(c, "/", "Agendamento excluído", "")
}

func (h *AgendamentoHandler) Exportar(c *gin.Context) {
	conteudo, nome, err := h.exportar.Execute(c.Request.Context(), ator(c), listarInput(c))
	if err != nil {
		h.render.Falha(c, "/", "Erro ao exportar", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nome))
	c.Data(http.StatusOK, xlsxContentType, conteudo)
}
