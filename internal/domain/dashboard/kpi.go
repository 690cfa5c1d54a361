package dashboard

import (
	"strconv"
	"unicode/utf8"
)

// KPIs são os indicadores já formatados com uma casa decimal.
type KPIs struct {
	Total              int
	PctRealizados      string
	PctNaoRealizados   string
	TaxaAbsenteismo    string
	MediaPorDia        string
	DiasComAgendamento int
}

func umaCasa(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func CalcularKPIs(d Dashboard) KPIs {
	k := KPIs{
		Total:              d.TotalGeral,
		PctRealizados:      "0",
		PctNaoRealizados:   "0",
		TaxaAbsenteismo:    "0",
		MediaPorDia:        "0",
		DiasComAgendamento: d.DiasComAgendamentos,
	}
	if d.TotalGeral <= 0 {
		return k
	}

	total := float64(d.TotalGeral)
	k.PctRealizados = umaCasa(float64(d.Realizados) / total * 100)
	k.PctNaoRealizados = umaCasa(float64(d.NaoRealizados) / total * 100)
	k.TaxaAbsenteismo = umaCasa(float64(d.ApenasNaoRealizado) / total * 100)
	if d.DiasComAgendamentos > 0 {
		k.MediaPorDia = umaCasa(total / float64(d.DiasComAgendamentos))
	}
	return k
}

// Barra é um ponto de gráfico já rotulado.
type Barra struct {
	Rotulo string
	Total  int
	// Altura relativa (0..100) ao maior valor da série
	Pct int
}

func escalar(bs []Barra) []Barra {
	maior := 0
	for _, b := range bs {
		if b.Total > maior {
			maior = b.Total
		}
	}
	if maior == 0 {
		return bs
	}
	for i := range bs {
		bs[i].Pct = bs[i].Total * 100 / maior
	}
	return bs
}

// SeriePrincipal escolhe a série do gráfico principal conforme o
// período: dias da semana, semanas do mês ou meses do ano.
func SeriePrincipal(d Dashboard, tipo TipoPeriodo) []Barra {
	var out []Barra
	switch tipo {
	case Semana:
		for _, p := range d.PorDia {
			out = append(out, Barra{Rotulo: p.Label, Total: p.Total})
		}
	case Mes:
		for _, p := range d.PorSemana {
			out = append(out, Barra{Rotulo: p.Label, Total: p.Total})
		}
	default:
		for _, p := range d.PorMes {
			out = append(out, Barra{Rotulo: NomeMes(p.Mes), Total: p.Total})
		}
	}
	return escalar(out)
}

func SeriePorAno(d Dashboard) []Barra {
	out := make([]Barra, 0, len(d.PorAno))
	for _, p := range d.PorAno {
		out = append(out, Barra{Rotulo: strconv.Itoa(p.Ano), Total: p.Total})
	}
	return escalar(out)
}

const maxRotuloMotivo = 30

// RotuloMotivo corta textos longos em 30 caracteres + "…".
func RotuloMotivo(s string) string {
	if utf8.RuneCountInString(s) <= maxRotuloMotivo {
		return s
	}
	return string([]rune(s)[:maxRotuloMotivo]) + "…"
}

func SerieMotivos(d Dashboard) []Barra {
	out := make([]Barra, 0, len(d.MotivosNaoRealizacao))
	for _, m := range d.MotivosNaoRealizacao {
		out = append(out, Barra{Rotulo: RotuloMotivo(m.MotivoTexto), Total: m.Total})
	}
	return escalar(out)
}

func TituloSerie(tipo TipoPeriodo) (string, string) {
	switch tipo {
	case Semana:
		return "Agendamentos por dia", "7 dias da semana (seg–dom)"
	case Mes:
		return "Agendamentos por semana", "4 semanas do mês"
	default:
		return "Agendamentos por mês", "12 meses do ano"
	}
}
