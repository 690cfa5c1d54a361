package agendamento

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmarAtendimentoInput struct {
	ID        string
	Realizado bool
	MotivoID  string
}

func (in ConfirmarAtendimentoInput) status() domain.Status {
	if in.Realizado {
		return domain.StatusAtendido
	}
	return domain.StatusNaoRealizado
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmarAtendimento struct {
	gw    Gateway
	audit *audit.Dispatcher
}

func NewConfirmarAtendimento(gw Gateway, audit *audit.Dispatcher) *ConfirmarAtendimento {
	return &ConfirmarAtendimento{gw: gw, audit: audit}
}

func (uc *ConfirmarAtendimento) Execute(
	ctx context.Context,
	ator Ator,
	in ConfirmarAtendimentoInput,
) (*domain.Agendamento, error) {

	in.MotivoID = strings.TrimSpace(in.MotivoID)
	if in.Realizado {
		in.MotivoID = ""
	}

	status := in.status()
	if err := domain.ResultadoValido(status, in.MotivoID); err != nil {
		return nil, err
	}

	ag, acoes, err := carregar(ctx, uc.gw, ator, in.ID)
	if err != nil {
		return nil, err
	}
	if acoes.SemTecnico {
		return nil, httperr.ErrBusiness("sem_tecnico")
	}
	if err := exigir(acoes.PodeRegistrarResultado()); err != nil {
		return nil, err
	}

	if !in.Realizado {
		motivos, err := uc.gw.MotivosListaCompleta(ctx, ator.Auth)
		if err != nil {
			return nil, err
		}
		if !motivo.Contem(motivo.Ativos(motivos), in.MotivoID) {
			return nil, httperr.ErrBusiness("motivo_obrigatorio")
		}
	}

	updated, err := uc.gw.AtualizarAgendamento(ctx, ator.Auth, in.ID, domain.Atualizar{
		Status:   status,
		MotivoID: in.MotivoID,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ator.event("confirmar_atendimento", in.ID, map[string]string{
		"status_anterior": string(ag.Status),
		"status":          string(status),
		"motivo_id":       in.MotivoID,
	}))

	return updated, nil
}
