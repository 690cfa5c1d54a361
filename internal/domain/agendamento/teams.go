package agendamento

import (
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

const (
	teamsNovaReuniaoURL  = "https://teams.microsoft.com/l/meeting/new"
	dominioInstitucional = "smul.prefeitura.sp.gov.br"
)

// LinkTeams monta o deep link de nova reunião do Teams. Devolve ""
// quando não há nenhum participante para convidar.
func LinkTeams(a Agendamento) string {
	var participantes []string
	if e := strings.TrimSpace(a.Email); e != "" {
		participantes = append(participantes, e)
	}
	if a.Tecnico != nil && a.Tecnico.Login != "" {
		participantes = append(participantes, a.Tecnico.Login+"@"+dominioInstitucional)
	}
	if len(participantes) == 0 {
		return ""
	}

	coordenadoria := a.NomeCoordenadoria()
	assunto := strings.TrimSpace("Agendamento Técnico - " + coordenadoria + " - Processo: " + a.Processo)

	inicio := timezone.AsLocal(a.DataHora)
	fim := inicio.Add(time.Hour)
	if a.DataFim != nil {
		fim = timezone.AsLocal(*a.DataFim)
	}

	tecnico, tipo := "", ""
	if a.Tecnico != nil {
		tecnico = a.Tecnico.Nome
	}
	if a.TipoAgendamento != nil {
		tipo = a.TipoAgendamento.Texto
	}

	// CRLF: o Teams só respeita quebras de linha nesse formato
	conteudo := strings.Join([]string{
		"Agendamento técnico",
		"",
		"Munícipe: " + ouTraco(a.Municipe),
		"Processo: " + ouTraco(a.Processo),
		"Coordenadoria: " + ouTraco(coordenadoria),
		"Técnico: " + ouTraco(tecnico),
		"Tipo: " + ouTraco(tipo),
		"",
		"Observações:",
	}, "\r\n")

	return teamsNovaReuniaoURL +
		"?subject=" + encodeURIComponent(assunto) +
		"&content=" + encodeURIComponent(conteudo) +
		"&startTime=" + encodeURIComponent(timezone.ISO(inicio)) +
		"&endTime=" + encodeURIComponent(timezone.ISO(fim)) +
		"&attendees=" + encodeURIComponent(strings.Join(participantes, ","))
}

func ouTraco(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// url.QueryEscape troca espaço por "+", o que o Teams exibe
// literalmente no assunto.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
