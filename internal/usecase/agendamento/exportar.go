package agendamento

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

const (
	MaxLinhasExportacao = 1000
	paginaExportacao    = 100
)

var colunasExportacao = []string{
	"Processo",
	"Munícipe",
	"RG",
	"CPF",
	"Data/Hora",
	"Coordenadoria",
	"Técnico",
	"Tipo",
	"Status",
	"Motivo",
	"Resumo",
}

type Exportar struct {
	gw  Gateway
	now func() time.Time
}

func NewExportar(gw Gateway) *Exportar {
	return &Exportar{gw: gw, now: timezone.Now}
}

// Execute devolve o .xlsx e o nome sugerido para download.
func (uc *Exportar) Execute(
	ctx context.Context,
	ator Ator,
	in ListarInput,
) ([]byte, string, error) {

	if !usuario.PodeExportar(ator.Permissao) {
		return nil, "", httperr.ErrBusiness("forbidden")
	}

	data := in.DataEfetiva()
	filtro := domain.Filtro{
		Pagina:     1,
		Limite:     paginaExportacao,
		Busca:      in.Busca,
		Status:     in.Status,
		DataInicio: data,
		DataFim:    data,
	}
	if !domain.Status(filtro.Status).IsValid() {
		filtro.Status = ""
	}

	var rows [][]string
	for len(rows) < MaxLinhasExportacao {
		pagina, err := uc.gw.ListarAgendamentos(ctx, ator.Auth, filtro)
		if err != nil {
			return nil, "", err
		}
		for _, ag := range pagina.Data {
			if len(rows) == MaxLinhasExportacao {
				break
			}
			rows = append(rows, linhaExportacao(ag))
		}
		if len(pagina.Data) == 0 || !pagina.TemProxima() {
			break
		}
		filtro.Pagina++
	}

	b, err := planilha.Escrever(colunasExportacao, rows)
	if err != nil {
		return nil, "", err
	}

	nome := fmt.Sprintf("agendamentos-%s.xlsx", uc.now().Format("20060102-1504"))
	return b, nome, nil
}

func linhaExportacao(ag domain.Agendamento) []string {
	var tecnico, tipo, motivo string
	if ag.Tecnico != nil {
		tecnico = ag.Tecnico.Nome
	}
	if ag.TipoAgendamento != nil {
		tipo = ag.TipoAgendamento.Texto
	}
	if ag.Motivo != nil {
		motivo = ag.Motivo.Texto
	}

	return []string{
		ag.Processo,
		ag.Municipe,
		ag.RG,
		validators.MaskCPF(ag.CPF),
		domain.FormatarDataHora(ag.DataHora),
		ag.NomeCoordenadoria(),
		tecnico,
		tipo,
		ag.Status.Label(),
		motivo,
		ag.Resumo,
	}
}
