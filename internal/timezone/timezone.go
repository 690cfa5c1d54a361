package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout = "2006-01-02"
	isoMillis  = "2006-01-02T15:04:05.000Z"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Local() *time.Location {
	return Location(DefaultTimezone)
}

func Now() time.Time {
	return time.Now().In(Local())
}

// Today devolve a data local corrente no formato yyyy-MM-dd.
func Today() string {
	return Now().Format(DateLayout)
}

// --------------------------------------------------
// Relógio gravado pelo backend
// --------------------------------------------------

// O backend grava o horário local como se fosse UTC. AsLocal lê
// esse relógio de parede como horário de São Paulo.
func AsLocal(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), Local())
}

// AsStored faz o caminho inverso: o relógio local digitado vira o
// mesmo relógio em UTC, como o backend espera.
func AsStored(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ISO formata em UTC com milissegundos (ex.: 2025-03-10T13:00:00.000Z).
func ISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Local())
}
