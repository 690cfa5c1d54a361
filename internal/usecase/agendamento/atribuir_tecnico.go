package agendamento

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

type AtribuirTecnico struct {
	gw    Gateway
	audit *audit.Dispatcher
}

func NewAtribuirTecnico(gw Gateway, audit *audit.Dispatcher) *AtribuirTecnico {
	return &AtribuirTecnico{gw: gw, audit: audit}
}

func (uc *AtribuirTecnico) Execute(
	ctx context.Context,
	ator Ator,
	id string,
	tecnicoID string,
) (*domain.Agendamento, *usuario.Tecnico, error) {

	tecnicoID = strings.TrimSpace(tecnicoID)
	if tecnicoID == "" {
		return nil, nil, httperr.ErrBusiness("tecnico_invalido")
	}

	ag, acoes, err := carregar(ctx, uc.gw, ator, id)
	if err != nil {
		return nil, nil, err
	}
	if err := exigir(acoes.PodeAtribuir); err != nil {
		return nil, nil, err
	}

	// o técnico precisa ser da coordenadoria do agendamento
	tecnicos, err := uc.gw.TecnicosPorCoordenadoria(ctx, ator.Auth, ag.CoordenadoriaID)
	if err != nil {
		return nil, nil, err
	}

	var escolhido *usuario.Tecnico
	for i := range tecnicos {
		if tecnicos[i].ID == tecnicoID {
			escolhido = &tecnicos[i]
			break
		}
	}
	if escolhido == nil {
		return nil, nil, httperr.ErrBusiness("tecnico_invalido")
	}

	updated, err := uc.gw.AtualizarAgendamento(ctx, ator.Auth, id, domain.Atualizar{TecnicoID: tecnicoID})
	if err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(ator.event("atribuir_tecnico", id, map[string]string{
		"tecnico_id":       tecnicoID,
		"tecnico_anterior": ag.TecnicoID,
	}))

	return updated, escolhido, nil
}
