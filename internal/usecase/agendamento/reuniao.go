package agendamento

import (
	"context"

	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// ======================================================
// AGENDAR REUNIÃO
// ======================================================

type AgendarReuniao struct {
	gw Gateway
}

func NewAgendarReuniao(gw Gateway) *AgendarReuniao {
	return &AgendarReuniao{gw: gw}
}

// Execute devolve o link do Teams. Nada muda no backend até o
// usuário confirmar que a reunião foi criada.
func (uc *AgendarReuniao) Execute(
	ctx context.Context,
	ator Ator,
	id string,
) (*domain.Agendamento, string, error) {

	ag, acoes, err := carregar(ctx, uc.gw, ator, id)
	if err != nil {
		return nil, "", err
	}
	if acoes.SemTecnico {
		return nil, "", httperr.ErrBusiness("sem_tecnico")
	}
	if err := exigir(acoes.PodeAgendarReuniao); err != nil {
		return nil, "", err
	}

	link := domain.LinkTeams(*ag)
	if link == "" {
		return nil, "", httperr.ErrBusiness("sem_participantes")
	}
	return ag, link, nil
}

// ======================================================
// CONFIRMAR REUNIÃO
// ======================================================

type ConfirmarReuniao struct {
	gw    Gateway
	audit *audit.Dispatcher
}

func NewConfirmarReuniao(gw Gateway, audit *audit.Dispatcher) *ConfirmarReuniao {
	return &ConfirmarReuniao{gw: gw, audit: audit}
}

// Execute marca AGENDADO quando o usuário responde "Sim". "Não" não
// altera nada e devolve false.
func (uc *ConfirmarReuniao) Execute(
	ctx context.Context,
	ator Ator,
	id string,
	confirmado bool,
) (bool, error) {

	if !confirmado {
		return false, nil
	}

	_, acoes, err := carregar(ctx, uc.gw, ator, id)
	if err != nil {
		return false, err
	}
	if err := exigir(acoes.PodeAgendarReuniao); err != nil {
		return false, err
	}

	if _, err := uc.gw.AtualizarAgendamento(ctx, ator.Auth, id, domain.Atualizar{Status: domain.StatusAgendado}); err != nil {
		return false, err
	}

	uc.audit.Dispatch(ator.event("agendar_reuniao", id, nil))
	return true, nil
}
