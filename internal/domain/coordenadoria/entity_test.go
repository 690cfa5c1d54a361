package coordenadoria

import (
	"testing"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

func TestSalvarValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Salvar
		code string
	}{
		{"ok", Salvar{Sigla: " CAEPP ", Email: "CAEPP@Prefeitura.sp.gov.br"}, ""},
		{"sigla curta", Salvar{Sigla: " A "}, "sigla_curta"},
		{"email invalido", Salvar{Sigla: "GTEC", Email: "gtec@"}, "email_invalido"},
		{"email opcional", Salvar{Sigla: "GTEC"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSalvarValidateNormaliza(t *testing.T) {
	s := Salvar{Sigla: " CAEPP ", Nome: " Coordenadoria ", Email: " A@B.COM "}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.Sigla != "CAEPP" || s.Nome != "Coordenadoria" {
		t.Errorf("campos não aparados: %+v", s)
	}
	if s.Email != "a@b.com" {
		t.Errorf("Email = %q", s.Email)
	}
}

func TestAtivas(t *testing.T) {
	cs := []Coordenadoria{
		{ID: "1", Sigla: "A", Status: true},
		{ID: "2", Sigla: "B"},
		{ID: "3", Sigla: "C", Status: true},
	}
	got := Ativas(cs)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Ativas() = %+v", got)
	}
	if (Coordenadoria{Sigla: "GTEC"}).Rotulo() != "GTEC" {
		t.Error("Rotulo sem nome deve usar a sigla")
	}
}
