package timezone

import (
	"testing"
	"time"
)

func TestAsLocal(t *testing.T) {
	stored := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	got := AsLocal(stored)

	if got.Hour() != 10 || got.Minute() != 30 || got.Day() != 10 {
		t.Fatalf("relógio alterado: %v", got)
	}
	if got.Location().String() != DefaultTimezone {
		t.Errorf("location = %s", got.Location())
	}
	// São Paulo está em UTC-3 desde 2019
	if ISO(got) != "2025-03-10T13:30:00.000Z" {
		t.Errorf("ISO = %s", ISO(got))
	}
}

func TestAsStoredRoundTrip(t *testing.T) {
	local := time.Date(2025, 7, 1, 8, 0, 0, 0, Local())

	stored := AsStored(local)
	if stored.Location() != time.UTC || stored.Hour() != 8 {
		t.Fatalf("AsStored = %v", stored)
	}
	if back := AsLocal(stored); !back.Equal(local) {
		t.Errorf("ida e volta = %v, want %v", back, local)
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("Nao/Existe").String() != DefaultTimezone {
		t.Error("fuso inválido deve cair no padrão")
	}
	if IsValid("") {
		t.Error("vazio não é válido")
	}
}
