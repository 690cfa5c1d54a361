package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

type TipoPeriodo string

const (
	Semana TipoPeriodo = "semana"
	Mes    TipoPeriodo = "mes"
	Ano    TipoPeriodo = "ano"
)

func (t TipoPeriodo) IsValid() bool {
	return t == Semana || t == Mes || t == Ano
}

var Meses = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// NomeMes devolve a abreviação de 1..12; fora disso, o número.
func NomeMes(m int) string {
	if m < 1 || m > 12 {
		return strconv.Itoa(m)
	}
	return Meses[m-1]
}

// Periodo é a seleção feita na tela do dashboard.
type Periodo struct {
	Tipo         TipoPeriodo
	Ano          int
	Mes          int
	SemanaInicio time.Time // sempre uma segunda-feira, 00:00 local
}

// Segunda devolve a segunda-feira da semana de d, à meia-noite.
func Segunda(d time.Time) time.Time {
	d = d.In(timezone.Local())
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // domingo pertence à semana iniciada 6 dias antes
	}
	y, m, day := d.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, timezone.Local())
}

// NovoPeriodo parte da data de referência e normaliza valores
// ausentes ou inválidos. O padrão é o ano corrente.
func NovoPeriodo(ref time.Time, tipo string, ano, mes int, semana string) Periodo {
	ref = ref.In(timezone.Local())

	p := Periodo{
		Tipo:         TipoPeriodo(tipo),
		Ano:          ano,
		Mes:          mes,
		SemanaInicio: Segunda(ref),
	}
	if !p.Tipo.IsValid() {
		p.Tipo = Ano
	}
	if p.Ano < 1900 || p.Ano > 9999 {
		p.Ano = ref.Year()
	}
	if p.Mes < 1 || p.Mes > 12 {
		p.Mes = int(ref.Month())
	}
	if semana != "" {
		if d, err := timezone.ParseDate(semana); err == nil {
			p.SemanaInicio = Segunda(d)
		}
	}
	return p
}

// Intervalo devolve início e fim (inclusive, com 999ms) em horário local.
func (p Periodo) Intervalo() (time.Time, time.Time) {
	loc := timezone.Local()
	const fimDoDia = 999 * int(time.Millisecond)

	switch p.Tipo {
	case Semana:
		inicio := p.SemanaInicio
		y, m, d := inicio.AddDate(0, 0, 6).Date()
		return inicio, time.Date(y, m, d, 23, 59, 59, fimDoDia, loc)
	case Mes:
		inicio := time.Date(p.Ano, time.Month(p.Mes), 1, 0, 0, 0, 0, loc)
		// dia 0 do mês seguinte = último dia do mês
		ultimo := time.Date(p.Ano, time.Month(p.Mes)+1, 0, 0, 0, 0, 0, loc).Day()
		return inicio, time.Date(p.Ano, time.Month(p.Mes), ultimo, 23, 59, 59, fimDoDia, loc)
	default:
		return time.Date(p.Ano, time.January, 1, 0, 0, 0, 0, loc),
			time.Date(p.Ano, time.December, 31, 23, 59, 59, fimDoDia, loc)
	}
}

// Query monta os parâmetros de agendamentos/dashboard.
func (p Periodo) Query(coordenadoriaID string) url.Values {
	inicio, fim := p.Intervalo()

	q := url.Values{}
	q.Set("tipoPeriodo", string(p.Tipo))
	q.Set("ano", strconv.Itoa(p.Ano))
	switch p.Tipo {
	case Mes:
		q.Set("mes", strconv.Itoa(p.Mes))
	case Semana:
		q.Set("semanaInicio", p.SemanaInicio.Format(timezone.DateLayout))
	}
	q.Set("dataInicio", timezone.ISO(inicio))
	q.Set("dataFim", timezone.ISO(fim))
	if coordenadoriaID != "" {
		q.Set("coordenadoriaId", coordenadoriaID)
	}
	return q
}

// RotuloSemana formata "dd/MM – dd/MM".
func (p Periodo) RotuloSemana() string {
	dom := p.SemanaInicio.AddDate(0, 0, 6)
	return fmt.Sprintf("%s – %s", p.SemanaInicio.Format("02/01"), dom.Format("02/01"))
}

// Rotulo é o subtítulo do período selecionado.
func (p Periodo) Rotulo() string {
	switch p.Tipo {
	case Semana:
		return p.RotuloSemana()
	case Mes:
		return fmt.Sprintf("%s/%d", NomeMes(p.Mes), p.Ano)
	default:
		return fmt.Sprintf("Ano %d", p.Ano)
	}
}

func (p Periodo) SemanaAnterior() string {
	return p.SemanaInicio.AddDate(0, 0, -7).Format(timezone.DateLayout)
}

func (p Periodo) ProximaSemana() string {
	return p.SemanaInicio.AddDate(0, 0, 7).Format(timezone.DateLayout)
}

// AnosDisponiveis lista o ano corrente e os quatro anteriores.
func AnosDisponiveis(ref time.Time) []int {
	y := ref.In(timezone.Local()).Year()
	anos := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		anos = append(anos, y-i)
	}
	return anos
}
