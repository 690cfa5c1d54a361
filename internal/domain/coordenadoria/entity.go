package coordenadoria

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

type Coordenadoria struct {
	ID           string     `json:"id"`
	Sigla        string     `json:"sigla"`
	Nome         string     `json:"nome,omitempty"`
	Email        string     `json:"email,omitempty"`
	Status       bool       `json:"status"`
	CriadoEm     *time.Time `json:"criadoEm,omitempty"`
	AtualizadoEm *time.Time `json:"atualizadoEm,omitempty"`
}

// Rotulo prefere o nome completo e cai na sigla.
func (c Coordenadoria) Rotulo() string {
	if c.Nome != "" {
		return c.Nome
	}
	return c.Sigla
}

type Salvar struct {
	Sigla  string `json:"sigla,omitempty"`
	Nome   string `json:"nome,omitempty"`
	Email  string `json:"email,omitempty"`
	Status *bool  `json:"status,omitempty"`
}

// Validate aplica as regras do formulário: sigla com ao menos 2
// caracteres e e-mail opcional, mas bem formado.
func (s *Salvar) Validate() error {
	s.Sigla = strings.TrimSpace(s.Sigla)
	s.Nome = strings.TrimSpace(s.Nome)
	s.Email = validators.NormalizeEmail(s.Email)

	if len([]rune(s.Sigla)) < 2 {
		return httperr.ErrBusiness("sigla_curta")
	}
	if s.Email != "" && !validators.IsEmail(s.Email) {
		return httperr.ErrBusiness("email_invalido")
	}
	return nil
}

// Ativas filtra as coordenadorias oferecidas nos selects.
func Ativas(cs []Coordenadoria) []Coordenadoria {
	out := make([]Coordenadoria, 0, len(cs))
	for _, c := range cs {
		if c.Status {
			out = append(out, c)
		}
	}
	return out
}
