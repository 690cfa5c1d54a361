package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/httpresp"
)

// TecnicosHandler alimenta o select de técnicos quando a coordenadoria
// muda no formulário.
type TecnicosHandler struct {
	api *apiclient.Cached
}

func NewTecnicosHandler(api *apiclient.Cached) *TecnicosHandler {
	return &TecnicosHandler{api: api}
}

func (h *TecnicosHandler) List(c *gin.Context) {
	id := c.Param("coordenadoriaId")
	if id == "" {
		httperr.BadRequest(c, "coordenadoria_obrigatoria", httperr.BusinessMessage("coordenadoria_obrigatoria"))
		return
	}

	ts, err := h.api.TecnicosPorCoordenadoria(c.Request.Context(), ator(c).Auth, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, ts)
}
