package session

import (
	"net/http"
	"time"
)

const ImpersonateCookie = "impersonate_permissao"

// Cookies escreve o cookie de sessão e o de personificação, ambos
// HttpOnly e restritos ao BASE_PATH.
type Cookies struct {
	Name   string
	Path   string
	Secure bool
}

func (ck Cookies) path() string {
	if ck.Path == "" {
		return "/"
	}
	return ck.Path
}

func (ck Cookies) set(w http.ResponseWriter, name, value string, expires time.Time) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     ck.path(),
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if expires.IsZero() {
		c.MaxAge = -1
	} else {
		c.Expires = expires
	}
	http.SetCookie(w, c)
}

func (ck Cookies) Write(w http.ResponseWriter, token string, c *Claims) {
	ck.set(w, ck.Name, token, c.ExpiresAt.Time)
}

// Clear encerra a sessão e descarta a personificação.
func (ck Cookies) Clear(w http.ResponseWriter) {
	ck.set(w, ck.Name, "", time.Time{})
	ck.set(w, ImpersonateCookie, "", time.Time{})
}

// WriteImpersonate guarda a escolha do DEV; vazio volta ao perfil real.
func (ck Cookies) WriteImpersonate(w http.ResponseWriter, p string, until time.Time) {
	if p == "" {
		ck.set(w, ImpersonateCookie, "", time.Time{})
		return
	}
	ck.set(w, ImpersonateCookie, p, until)
}
