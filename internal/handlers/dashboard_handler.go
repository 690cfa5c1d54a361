package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/dashboard"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

type DashboardHandler struct {
	api    *apiclient.Cached
	render *Renderer
	now    func() time.Time
}

func NewDashboardHandler(api *apiclient.Cached, render *Renderer) *DashboardHandler {
	return &DashboardHandler{api: api, render: render, now: timezone.Now}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	a := ator(c)

	if !usuario.PodeVerDashboard(a.Permissao) {
		h.render.HTML(c, http.StatusForbidden, "dashboard", gin.H{
			"Ativo":     "dashboard",
			"Permitido": false,
			"Mensagem":  "Você não tem permissão para acessar o dashboard.",
		})
		return
	}

	ano, _ := strconv.Atoi(c.Query("ano"))
	mes, _ := strconv.Atoi(c.Query("mes"))
	now := h.now()
	periodo := dashboard.NovoPeriodo(now, c.Query("tipo"), ano, mes, c.Query("semana"))

	// o filtro de coordenadoria só vale para ADM/DEV; os demais já
	// recebem do backend apenas a própria coordenadoria
	filtroCoord := a.Permissao.IsAdmOuDev()
	coordID := ""
	var coords []coordenadoria.Coordenadoria
	if filtroCoord {
		coordID = c.Query("coordenadoriaId")
		var err error
		if coords, err = h.api.CoordenadoriasListaCompleta(c.Request.Context(), a.Auth); err != nil {
			log.Printf("[DASHBOARD] coordenadorias: %v", err)
		}
	}

	data := gin.H{
		"Ativo":           "dashboard",
		"Permitido":       true,
		"Periodo":         periodo,
		"Anos":            dashboard.AnosDisponiveis(now),
		"Meses":           dashboard.Meses,
		"FiltroCoord":     filtroCoord,
		"Coordenadorias":  coords,
		"CoordenadoriaID": coordID,
	}

	d, err := h.api.Dashboard(c.Request.Context(), a.Auth, periodo.Query(coordID))
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			h.render.Falha(c, "/login", "Sessão expirada", err)
			return
		}
		log.Printf("[DASHBOARD] %s: %v", periodo.Rotulo(), err)
		data["Erro"] = "Não foi possível carregar os indicadores."
		h.render.HTML(c, http.StatusOK, "dashboard", data)
		return
	}

	titulo, sub := dashboard.TituloSerie(periodo.Tipo)
	data["KPIs"] = dashboard.CalcularKPIs(d)
	data["Serie"] = dashboard.SeriePrincipal(d, periodo.Tipo)
	data["SerieTitulo"] = titulo
	data["SerieSub"] = sub
	data["PorAno"] = dashboard.SeriePorAno(d)
	data["Motivos"] = dashboard.SerieMotivos(d)

	h.render.HTML(c, http.StatusOK, "dashboard", data)
}
