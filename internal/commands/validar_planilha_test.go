package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
)

func TestValidarPlanilhaSemArgumentos(t *testing.T) {
	var out bytes.Buffer
	if code := ValidarPlanilha(nil, &out); code != 2 {
		t.Errorf("code = %d", code)
	}
	if !strings.Contains(out.String(), "Uso:") {
		t.Errorf("saída = %q", out.String())
	}
}

func TestValidarPlanilha(t *testing.T) {
	dir := t.TempDir()

	valida, err := planilha.Escrever(planilha.ColunasObrigatorias, [][]string{{"1234567"}})
	if err != nil {
		t.Fatal(err)
	}
	okPath := filepath.Join(dir, "lote.xlsx")
	if err := os.WriteFile(okPath, valida, 0o600); err != nil {
		t.Fatal(err)
	}

	incompleta, err := planilha.Escrever([]string{"RF"}, [][]string{{"1234567"}})
	if err != nil {
		t.Fatal(err)
	}
	ruimPath := filepath.Join(dir, "incompleta.xlsx")
	if err := os.WriteFile(ruimPath, incompleta, 0o600); err != nil {
		t.Fatal(err)
	}

	txtPath := filepath.Join(dir, "notas.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("ok", func(t *testing.T) {
		var out bytes.Buffer
		if code := ValidarPlanilha([]string{okPath}, &out); code != 0 {
			t.Fatalf("code = %d saída = %q", code, out.String())
		}
		if !strings.Contains(out.String(), "1 linha(s) de dados") {
			t.Errorf("saída = %q", out.String())
		}
	})

	t.Run("colunas ausentes", func(t *testing.T) {
		var out bytes.Buffer
		if code := ValidarPlanilha([]string{ruimPath}, &out); code != 1 {
			t.Fatalf("code = %d", code)
		}
		if !strings.Contains(out.String(), "colunas obrigatórias") {
			t.Errorf("saída = %q", out.String())
		}
	})

	t.Run("tipo inválido", func(t *testing.T) {
		var out bytes.Buffer
		if code := ValidarPlanilha([]string{txtPath, okPath}, &out); code != 1 {
			t.Errorf("code = %d", code)
		}
	})
}
