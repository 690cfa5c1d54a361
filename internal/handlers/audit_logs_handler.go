package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/infra/repository"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler lista o registro de ações gravado por esta
// aplicação. Sem DATABASE_URL o repositório é nil e a página avisa.
type AuditLogsHandler struct {
	repo   *repository.AuditLogGormRepository
	render *Renderer
}

func NewAuditLogsHandler(repo *repository.AuditLogGormRepository, render *Renderer) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, render: render}
}

func parseDia(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := timezone.ParseDate(v)
	if err != nil {
		return nil
	}
	return &t
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	data := gin.H{
		"Ativo":      "registro",
		"Disponivel": h.repo != nil,
	}

	if h.repo == nil {
		h.render.HTML(c, http.StatusOK, "registro", data)
		return
	}

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	f := repository.AuditLogFilter{
		Action: strings.TrimSpace(c.Query("action")),
		Entity: strings.TrimSpace(c.Query("entity")),
		Login:  strings.TrimSpace(c.Query("login")),
		From:   parseDia(c.Query("from")),
		To:     parseDia(c.Query("to")),
		Page:   pagina(c),
	}
	f.Normalize()

	data["Filtro"] = gin.H{
		"Action": f.Action,
		"Entity": f.Entity,
		"Login":  f.Login,
		"From":   c.Query("from"),
		"To":     c.Query("to"),
	}

	logs, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		log.Printf("[AUDIT] listagem: %v", err)
		data["Erro"] = "Não foi possível carregar o registro de ações."
		h.render.HTML(c, http.StatusOK, "registro", data)
		return
	}

	totalPaginas := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	if totalPaginas < 1 {
		totalPaginas = 1
	}

	data["Logs"] = logs
	data["Total"] = total
	data["Paginacao"] = paginacao(c, f.Page, totalPaginas)

	h.render.HTML(c, http.StatusOK, "registro", data)
}
