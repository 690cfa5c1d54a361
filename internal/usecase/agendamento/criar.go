package agendamento

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

// formato do <input type="datetime-local">
const DataHoraForm = "2006-01-02T15:04"

// ======================================================
// INPUT
// ======================================================

type CriarInput struct {
	Municipe        string
	RG              string
	CPF             string
	Processo        string
	DataHora        string
	Duracao         int
	Resumo          string
	Email           string
	CoordenadoriaID string
	TecnicoRF       string
}

// ======================================================
// USE CASE
// ======================================================

type Criar struct {
	gw    Gateway
	audit *audit.Dispatcher
}

func NewCriar(gw Gateway, audit *audit.Dispatcher) *Criar {
	return &Criar{gw: gw, audit: audit}
}

func (uc *Criar) Execute(
	ctx context.Context,
	ator Ator,
	in CriarInput,
) (*domain.Agendamento, error) {

	if !usuario.PodeCriarAgendamento(ator.Permissao) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	payload, err := in.payload()
	if err != nil {
		return nil, err
	}

	ag, err := uc.gw.CriarAgendamento(ctx, ator.Auth, payload)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ator.event("criar_agendamento", ag.ID, map[string]string{
		"processo": payload.Processo,
	}))

	return ag, nil
}

// payload valida o formulário e converte o horário digitado para o
// relógio gravado pelo backend.
func (in CriarInput) payload() (domain.Criar, error) {
	municipe := strings.TrimSpace(in.Municipe)
	processo := strings.TrimSpace(in.Processo)
	dataHora := strings.TrimSpace(in.DataHora)

	if municipe == "" || processo == "" || dataHora == "" {
		return domain.Criar{}, httperr.ErrBusiness("campos_obrigatorios")
	}

	inicio, err := time.ParseInLocation(DataHoraForm, dataHora, timezone.Local())
	if err != nil {
		return domain.Criar{}, httperr.ErrBusiness("data_invalida")
	}

	email := validators.NormalizeEmail(in.Email)
	if email != "" && !validators.IsEmail(email) {
		return domain.Criar{}, httperr.ErrBusiness("email_invalido")
	}

	out := domain.Criar{
		Municipe:        municipe,
		RG:              strings.TrimSpace(in.RG),
		CPF:             validators.OnlyDigits(in.CPF),
		Processo:        processo,
		DataHora:        timezone.ISO(timezone.AsStored(inicio)),
		Resumo:          strings.TrimSpace(in.Resumo),
		Email:           email,
		CoordenadoriaID: strings.TrimSpace(in.CoordenadoriaID),
		TecnicoRF:       strings.TrimSpace(in.TecnicoRF),
	}

	if in.Duracao > 0 {
		d := in.Duracao
		out.Duracao = &d
		out.DataFim = timezone.ISO(timezone.AsStored(inicio.Add(time.Duration(d) * time.Minute)))
	}

	return out, nil
}
