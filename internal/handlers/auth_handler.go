package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/middleware"
	"github.com/BruksfildServices01/agendamento-smul/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	cfg     *config.Config
	api     *apiclient.Cached
	cookies session.Cookies
	render  *Renderer
	audit   *audit.Dispatcher
	now     func() time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	api *apiclient.Cached,
	cookies session.Cookies,
	render *Renderer,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		cfg:     cfg,
		api:     api,
		cookies: cookies,
		render:  render,
		audit:   audit,
		now:     time.Now,
	}
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.OptionalSession(h.cfg, c) != nil {
		h.render.Redirect(c, "/")
		return
	}
	h.render.HTML(c, http.StatusOK, "login", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	login := strings.TrimSpace(c.PostForm("login"))
	senha := c.PostForm("senha")

	if login == "" || senha == "" {
		h.loginErro(c, http.StatusBadRequest, login, "Informe usuário e senha.")
		return
	}

	tokens, err := h.api.Login(c.Request.Context(), login, senha)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Usuário ou senha inválidos."
		if !apiclient.IsUnauthorized(err) && !apiclient.IsStatus(err, http.StatusBadRequest) {
			log.Printf("[AUTH] login %s: %v", login, err)
			status = http.StatusBadGateway
			msg = httperr.Message(err)
		}
		h.loginErro(c, status, login, msg)
		return
	}

	token, claims, err := session.Issue(h.cfg.SessionSecret, tokens.AccessToken, h.now())
	if err != nil {
		log.Printf("[AUTH] token do backend recusado para %s: %v", login, err)
		h.loginErro(c, http.StatusBadGateway, login, "Não foi possível iniciar a sessão.")
		return
	}

	h.cookies.Write(c.Writer, token, claims)

	h.audit.Dispatch(audit.Event{
		UsuarioID: claims.Subject,
		Login:     claims.Login,
		Permissao: string(claims.Permissao),
		Action:    "login",
		Entity:    "usuario",
		EntityID:  claims.Subject,
		RequestID: middleware.GetRequestID(c),
	})

	h.render.Redirect(c, "/")
}

func (h *AuthHandler) loginErro(c *gin.Context, status int, login, msg string) {
	h.render.HTML(c, status, "login", gin.H{
		"Login": login,
		"Erro":  msg,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	h.render.Redirect(c, "/login")
}

// TooManyAttempts responde ao limite de tentativas de login.
func (h *AuthHandler) TooManyAttempts(c *gin.Context) {
	h.loginErro(c, http.StatusTooManyRequests, c.PostForm("login"),
		"Muitas tentativas. Aguarde alguns instantes e tente novamente.")
}

// ======================================================
// PERSONIFICAÇÃO
// ======================================================

// Personificar troca a permissão efetiva de um DEV; vazio volta ao
// perfil real.
func (h *AuthHandler) Personificar(c *gin.Context) {
	s := middleware.GetSession(c)
	if !s.PodePersonificar() {
		h.render.Falha(c, "/", "Ação não permitida", httperr.ErrBusiness("forbidden"))
		return
	}

	p := usuario.Permissao(c.PostForm("permissao"))
	if p == usuario.DEV {
		p = ""
	}
	if p != "" && !usuario.PodePersonificarComo(p) {
		h.render.Falha(c, "/", "Ação não permitida", httperr.ErrBusiness("permissao_invalida"))
		return
	}

	h.cookies.WriteImpersonate(c.Writer, string(p), s.ExpiresAt.Time)

	if p == "" {
		h.render.Sucesso(c, "/", "Personificação encerrada", "Você voltou ao seu perfil.")
		return
	}
	h.render.Sucesso(c, "/", "Personificação ativa", "Visualizando como: "+p.Label())
}
