package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/session"
)

const ContextSession = "sessao"

// SessionMiddleware exige o cookie de sessão. Páginas sem sessão vão
// para o login; rotas /api recebem 401 em JSON.
func SessionMiddleware(cfg *config.Config, cookies session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cfg.SessionCookie)
		if err != nil || raw == "" {
			unauthorized(c, cfg)
			return
		}

		claims, err := session.Parse(cfg.SessionSecret, raw)
		if err != nil {
			cookies.Clear(c.Writer)
			unauthorized(c, cfg)
			return
		}

		impersonate, _ := c.Cookie(session.ImpersonateCookie)
		c.Set(ContextSession, session.New(claims, impersonate))

		c.Next()
	}
}

func unauthorized(c *gin.Context, cfg *config.Config) {
	if strings.HasPrefix(c.Request.URL.Path, cfg.Path("/api/")) {
		httperr.Unauthorized(c, "unauthorized", "Sua sessão expirou. Por favor, faça login novamente.")
		c.Abort()
		return
	}
	c.Redirect(http.StatusSeeOther, cfg.Path("/login"))
	c.Abort()
}

// GetSession devolve a sessão colocada pelo SessionMiddleware.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// OptionalSession lê a sessão sem exigir login; usado na tela de
// login para mandar quem já está autenticado para a home.
func OptionalSession(cfg *config.Config, c *gin.Context) *session.Session {
	raw, err := c.Cookie(cfg.SessionCookie)
	if err != nil || raw == "" {
		return nil
	}
	claims, err := session.Parse(cfg.SessionSecret, raw)
	if err != nil {
		return nil
	}
	impersonate, _ := c.Cookie(session.ImpersonateCookie)
	return session.New(claims, impersonate)
}
