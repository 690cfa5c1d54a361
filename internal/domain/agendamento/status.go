package agendamento

import "github.com/BruksfildServices01/agendamento-smul/internal/httperr"

type Status string

const (
	StatusSolicitado   Status = "SOLICITADO"
	StatusAgendado     Status = "AGENDADO"
	StatusConcluido    Status = "CONCLUIDO"
	StatusAtendido     Status = "ATENDIDO"
	StatusNaoRealizado Status = "NAO_REALIZADO"
	StatusCancelado    Status = "CANCELADO"
)

// Todos segue a ordem do filtro da lista.
var Todos = []Status{
	StatusSolicitado,
	StatusAgendado,
	StatusConcluido,
	StatusAtendido,
	StatusNaoRealizado,
	StatusCancelado,
}

var statusLabels = map[Status]string{
	StatusSolicitado:   "Solicitado",
	StatusAgendado:     "Agendado",
	StatusConcluido:    "Concluído",
	StatusAtendido:     "Atendido",
	StatusNaoRealizado: "Não Realizado",
	StatusCancelado:    "Cancelado",
}

var statusBadges = map[Status]string{
	StatusSolicitado:   "badge-secondary",
	StatusAgendado:     "badge-info",
	StatusConcluido:    "badge-default",
	StatusAtendido:     "badge-success",
	StatusNaoRealizado: "badge-destructive",
	StatusCancelado:    "badge-outline",
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Badge() string {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return "badge-outline"
}

// IsPendente: ainda aguarda a confirmação do técnico.
func (s Status) IsPendente() bool {
	return s == StatusAgendado || s == StatusConcluido
}

// IsConfirmado: o técnico já registrou o resultado.
func (s Status) IsConfirmado() bool {
	return s == StatusAtendido || s == StatusNaoRealizado
}

// ==============================
// GUARDS DE RESULTADO
// ==============================

// ResultadoValido confere o status enviado no formulário de
// confirmação de atendimento.
func ResultadoValido(s Status, motivoID string) error {
	switch s {
	case StatusAtendido:
		return nil
	case StatusNaoRealizado:
		if motivoID == "" {
			return httperr.ErrBusiness("motivo_obrigatorio")
		}
		return nil
	default:
		return httperr.ErrBusiness("invalid_state")
	}
}
