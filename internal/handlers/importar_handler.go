package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/flash"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
	ucAgendamento "github.com/BruksfildServices01/agendamento-smul/internal/usecase/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

type ImportarHandler struct {
	api      *apiclient.Cached
	render   *Renderer
	importar *ucAgendamento.ImportarPlanilha
}

func NewImportarHandler(
	api *apiclient.Cached,
	render *Renderer,
	importar *ucAgendamento.ImportarPlanilha,
) *ImportarHandler {
	return &ImportarHandler{api: api, render: render, importar: importar}
}

func (h *ImportarHandler) Page(c *gin.Context) {
	a := ator(c)

	coords, err := h.api.CoordenadoriasListaCompleta(c.Request.Context(), a.Auth)
	if err != nil {
		log.Printf("[WEB] coordenadorias: %v", err)
	}

	h.render.HTML(c, http.StatusOK, "importar", gin.H{
		"Ativo":          "importar",
		"Coordenadorias": coordenadoria.Ativas(coords),
		"Colunas":        planilha.ColunasObrigatorias,
		"TamanhoMaximo":  "10MB",
	})
}

func (h *ImportarHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("arquivo")
	if err != nil {
		h.render.Falha(c, "/importar-planilha", "Erro na importação", httperr.ErrBusiness("arquivo_ausente"))
		return
	}

	// o tamanho é conferido antes de ler o conteúdo
	if err := validators.ValidatePlanilha(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		h.render.Falha(c, "/importar-planilha", "Erro na importação", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.render.Falha(c, "/importar-planilha", "Erro na importação", err)
		return
	}
	defer f.Close()

	conteudo, err := io.ReadAll(io.LimitReader(f, validators.MaxPlanilhaBytes+1))
	if err != nil {
		h.render.Falha(c, "/importar-planilha", "Erro na importação", err)
		return
	}

	res, err := h.importar.Execute(c.Request.Context(), ator(c), ucAgendamento.ImportarPlanilhaInput{
		Nome:            fh.Filename,
		ContentType:     fh.Header.Get("Content-Type"),
		Tamanho:         int64(len(conteudo)),
		Conteudo:        conteudo,
		CoordenadoriaID: c.PostForm("coordenadoriaId"),
	})
	if err != nil {
		h.render.Falha(c, "/importar-planilha", "Erro na importação", err)
		return
	}

	tipo, titulo, descricao := res.Aviso()
	h.render.flash.Set(c, flash.Flash{
		Tipo:      flash.Tipo(tipo),
		Titulo:    titulo,
		Descricao: descricao,
	})

	if res.Importados > 0 {
		h.render.Redirect(c, "/")
		return
	}
	h.render.Redirect(c, "/importar-planilha")
}
