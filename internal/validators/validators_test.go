package validators

import (
	"testing"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

func TestMaskCPF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345678901", "123.XXX.XXX-01"},
		{"123.456.789-01", "123.XXX.XXX-01"},
		{"1234", "1234"},
		{"", "-"},
		{"   ", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MaskCPF(tt.in); got != tt.want {
				t.Errorf("MaskCPF(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"coord@prefeitura.sp.gov.br", true},
		{"sem-arroba", false},
		{"a@b", false},
		{"@dominio.com", false},
		{"Nome <a@b.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsEmail(tt.in); got != tt.want {
				t.Errorf("IsEmail(%q) = %v", tt.in, got)
			}
		})
	}
}

func TestValidatePlanilha(t *testing.T) {
	const xlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	tests := []struct {
		name     string
		filename string
		mime     string
		size     int64
		wantCode string
	}{
		{"sem arquivo", "", "", 0, "arquivo_ausente"},
		{"vazio", "a.xlsx", xlsx, 0, "arquivo_vazio"},
		{"grande", "a.xlsx", xlsx, MaxPlanilhaBytes + 1, "arquivo_grande"},
		{"no limite", "a.xlsx", xlsx, MaxPlanilhaBytes, ""},
		{"mime com parametro", "dados", "application/vnd.ms-excel; charset=binary", 10, ""},
		{"extensao xls sem mime", "dados.XLS", "application/octet-stream", 10, ""},
		{"csv", "dados.csv", "text/csv", 10, "arquivo_tipo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanilha(tt.filename, tt.mime, tt.size)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("erro inesperado: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
