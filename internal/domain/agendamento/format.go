package agendamento

import (
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

const dataHoraLayout = "02/01/2006 às 15:04"

// FormatarDataHora exibe o relógio gravado como horário local
// (dd/MM/yyyy às HH:mm).
func FormatarDataHora(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return timezone.AsLocal(t).Format(dataHoraLayout)
}

func FormatarData(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return timezone.AsLocal(t).Format("02/01/2006")
}
