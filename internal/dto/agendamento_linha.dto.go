package dto

import (
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

// AgendamentoLinha é uma linha da tabela já com as ações calculadas.
type AgendamentoLinha struct {
	agendamento.Agendamento
	Acoes agendamento.Acoes

	CPFMascarado string
	DataHoraFmt  string
}

func NovaLinha(a agendamento.Agendamento, ac agendamento.Acoes) AgendamentoLinha {
	return AgendamentoLinha{
		Agendamento:  a,
		Acoes:        ac,
		CPFMascarado: validators.MaskCPF(a.CPF),
		DataHoraFmt:  agendamento.FormatarDataHora(a.DataHora),
	}
}

func (l AgendamentoLinha) NomeTecnico() string {
	if l.Tecnico == nil {
		return ""
	}
	return l.Tecnico.Nome
}

// ListaAgendamentos é o que a página inicial precisa para renderizar
// a tabela e os formulários de cada linha.
type ListaAgendamentos struct {
	Pagina Paginado[AgendamentoLinha]
	Data   string

	// técnicos por coordenadoria, só das linhas atribuíveis
	Tecnicos map[string][]usuario.Tecnico
	Motivos  []motivo.Motivo
}

func (l ListaAgendamentos) TecnicosDe(coordenadoriaID string) []usuario.Tecnico {
	return l.Tecnicos[coordenadoriaID]
}
