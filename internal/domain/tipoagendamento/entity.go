package tipoagendamento

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

type TipoAgendamento struct {
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
