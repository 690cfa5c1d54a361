package agendamento

import (
	"context"

	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

type Excluir struct {
	gw    Gateway
	audit *audit.Dispatcher
}

func NewExcluir(gw Gateway, audit *audit.Dispatcher) *Excluir {
	return &Excluir{gw: gw, audit: audit}
}

func (uc *Excluir) Execute(ctx context.Context, ator Ator, id string) error {
	if !usuario.PodeExcluirAgendamento(ator.Permissao) {
		return httperr.ErrBusiness("forbidden")
	}

	ok, err := uc.gw.ExcluirAgendamento(ctx, ator.Auth, id)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("invalid_state")
	}

	uc.audit.Dispatch(ator.event("excluir_agendamento", id, nil))
	return nil
}
