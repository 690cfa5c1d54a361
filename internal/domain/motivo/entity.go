package motivo

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// Motivo explica por que um agendamento não foi realizado.
type Motivo struct {
	ID           string     `json:"id"`
	Texto        string     `json:"texto"`
	Status       bool       `json:"status"`
	CriadoEm     *time.Time `json:"criadoEm,omitempty"`
	AtualizadoEm *time.Time `json:"atualizadoEm,omitempty"`
}

type Salvar struct {
	Texto  string `json:"texto,omitempty"`
	Status *bool  `json:"status,omitempty"`
}

func (s *Salvar) Validate() error {
	s.Texto = strings.TrimSpace(s.Texto)
	if s.Texto == "" {
		return httperr.ErrBusiness("texto_obrigatorio")
	}
	return nil
}

// Ativos filtra a lista completa para o seletor de não realização.
func Ativos(ms []Motivo) []Motivo {
	out := make([]Motivo, 0, len(ms))
	for _, m := range ms {
		if m.Status {
			out = append(out, m)
		}
	}
	return out
}

func Contem(ms []Motivo, id string) bool {
	for _, m := range ms {
		if m.ID == id {
			return true
		}
	}
	return false
}
