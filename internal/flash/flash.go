package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const CookieName = "agendamento_flash"

type Tipo string

const (
	Sucesso Tipo = "success"
	Erro    Tipo = "error"
	Alerta  Tipo = "warning"
)

// Flash é o aviso exibido uma única vez na próxima página.
type Flash struct {
	Tipo      Tipo   `json:"t"`
	Titulo    string `json:"ti"`
	Descricao string `json:"d,omitempty"`
}

// Store grava o aviso num cookie curto, escopado ao BASE_PATH.
type Store struct {
	Path   string
	Secure bool
}

func (s Store) cookiePath() string {
	if s.Path == "" {
		return "/"
	}
	return s.Path
}

func (s Store) Set(c *gin.Context, f Flash) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     s.cookiePath(),
		MaxAge:   60,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s Store) Success(c *gin.Context, titulo, descricao string) {
	s.Set(c, Flash{Tipo: Sucesso, Titulo: titulo, Descricao: descricao})
}

func (s Store) Error(c *gin.Context, titulo, descricao string) {
	s.Set(c, Flash{Tipo: Erro, Titulo: titulo, Descricao: descricao})
}

func (s Store) Warning(c *gin.Context, titulo, descricao string) {
	s.Set(c, Flash{Tipo: Alerta, Titulo: titulo, Descricao: descricao})
}

// Pop lê e apaga o aviso pendente.
func (s Store) Pop(c *gin.Context) *Flash {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     s.cookiePath(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil || f.Titulo == "" {
		return nil
	}
	return &f
}
