package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// RequirePermissao manda para a home quem não tem a permissão
// efetiva exigida pela página; rotas /api recebem 403 em JSON.
func RequirePermissao(cfg *config.Config, allow func(usuario.Permissao) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s != nil && allow(s.Permissao()) {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, cfg.Path("/api/")) {
			httperr.Forbidden(c, "forbidden", httperr.BusinessMessage("forbidden"))
			c.Abort()
			return
		}
		c.Redirect(http.StatusSeeOther, cfg.Path("/"))
		c.Abort()
	}
}
