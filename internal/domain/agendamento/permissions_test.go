package agendamento

import (
	"testing"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
)

func novo(status Status, tecnicoID string, coord string) Agendamento {
	a := Agendamento{ID: "a1", Status: status, CoordenadoriaID: coord}
	if tecnicoID != "" {
		a.TecnicoID = tecnicoID
		a.Tecnico = &TecnicoRef{ID: tecnicoID, Nome: "Téc", Login: "d123"}
	}
	return a
}

func TestCalcularAcoesAtribuir(t *testing.T) {
	tests := []struct {
		name string
		a    Agendamento
		p    usuario.Permissao
		want bool
	}{
		{"pf com coordenadoria", novo(StatusSolicitado, "", "c1"), usuario.PontoFocal, true},
		{"coord com coordenadoria", novo(StatusAgendado, "t1", "c1"), usuario.Coordenador, true},
		{"pf sem coordenadoria", novo(StatusSolicitado, "", ""), usuario.PontoFocal, false},
		{"adm pendente", novo(StatusAgendado, "t1", "c1"), usuario.ADM, false},
		{"adm atendido", novo(StatusAtendido, "t1", "c1"), usuario.ADM, true},
		{"dev nao realizado", novo(StatusNaoRealizado, "t1", "c1"), usuario.DEV, true},
		{"tec nunca", novo(StatusSolicitado, "", "c1"), usuario.TEC, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcularAcoes(tt.a, tt.p, "t1").PodeAtribuir; got != tt.want {
				t.Errorf("PodeAtribuir = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcularAcoesConfirmar(t *testing.T) {
	tests := []struct {
		name      string
		a         Agendamento
		p         usuario.Permissao
		usuarioID string
		want      bool
	}{
		{"tec dono agendado", novo(StatusAgendado, "t1", "c1"), usuario.TEC, "t1", true},
		{"tec dono concluido", novo(StatusConcluido, "t1", "c1"), usuario.TEC, "t1", true},
		{"tec de outro", novo(StatusAgendado, "t2", "c1"), usuario.TEC, "t1", false},
		{"tec dono solicitado", novo(StatusSolicitado, "t1", "c1"), usuario.TEC, "t1", false},
		{"coord dono", novo(StatusAgendado, "t1", "c1"), usuario.Coordenador, "t1", true},
		{"pf dono", novo(StatusAgendado, "t1", "c1"), usuario.PontoFocal, "t1", false},
		{"sem tecnico", novo(StatusAgendado, "", "c1"), usuario.ADM, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcularAcoes(tt.a, tt.p, tt.usuarioID).PodeConfirmar; got != tt.want {
				t.Errorf("PodeConfirmar = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcularAcoesAlterar(t *testing.T) {
	tests := []struct {
		name      string
		a         Agendamento
		p         usuario.Permissao
		usuarioID string
		want      bool
	}{
		{"tec dono atendido", novo(StatusAtendido, "t1", "c1"), usuario.TEC, "t1", true},
		{"tec outro atendido", novo(StatusAtendido, "t2", "c1"), usuario.TEC, "t1", false},
		{"adm nao realizado", novo(StatusNaoRealizado, "t2", "c1"), usuario.ADM, "x", true},
		{"pf atendido", novo(StatusAtendido, "t2", "c1"), usuario.PontoFocal, "x", true},
		{"portaria atendido", novo(StatusAtendido, "t2", "c1"), usuario.Portaria, "x", false},
		{"adm pendente", novo(StatusAgendado, "t2", "c1"), usuario.ADM, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcularAcoes(tt.a, tt.p, tt.usuarioID).PodeAlterar; got != tt.want {
				t.Errorf("PodeAlterar = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalcularAcoesReuniao(t *testing.T) {
	pf := CalcularAcoes(novo(StatusSolicitado, "t1", "c1"), usuario.PontoFocal, "x")
	if !pf.PodeAgendarReuniao || !pf.MostrarReuniao {
		t.Errorf("pf solicitado = %+v", pf)
	}

	semTec := CalcularAcoes(novo(StatusSolicitado, "", "c1"), usuario.Coordenador, "x")
	if semTec.PodeAgendarReuniao || !semTec.MostrarReuniao {
		t.Errorf("sem técnico deve mostrar desabilitado: %+v", semTec)
	}

	adm := CalcularAcoes(novo(StatusSolicitado, "t1", "c1"), usuario.ADM, "x")
	if adm.PodeAgendarReuniao || adm.MostrarReuniao {
		t.Errorf("adm não agenda reunião: %+v", adm)
	}
}

func TestCalcularAcoesDestaqueENenhuma(t *testing.T) {
	if !CalcularAcoes(novo(StatusSolicitado, "", "c1"), usuario.TEC, "x").Destacar {
		t.Error("sem técnico deve destacar")
	}
	if !CalcularAcoes(novo(StatusAgendado, "t1", "c1"), usuario.TEC, "x").Destacar {
		t.Error("agendado deve destacar")
	}
	if CalcularAcoes(novo(StatusAtendido, "t1", "c1"), usuario.TEC, "x").Destacar {
		t.Error("atendido com técnico não destaca")
	}

	if !CalcularAcoes(novo(StatusCancelado, "t1", "c1"), usuario.Portaria, "x").Nenhuma {
		t.Error("portaria sem ações deve exibir traço")
	}
	if CalcularAcoes(novo(StatusCancelado, "t1", "c1"), usuario.PontoFocal, "x").Nenhuma {
		t.Error("pf sempre vê o botão de reunião")
	}
}

func TestResultadoValido(t *testing.T) {
	if err := ResultadoValido(StatusAtendido, ""); err != nil {
		t.Errorf("atendido: %v", err)
	}
	if err := ResultadoValido(StatusNaoRealizado, ""); err == nil {
		t.Error("não realizado sem motivo deve falhar")
	}
	if err := ResultadoValido(StatusNaoRealizado, "m1"); err != nil {
		t.Errorf("não realizado com motivo: %v", err)
	}
	if err := ResultadoValido(StatusCancelado, ""); err == nil {
		t.Error("cancelado não é resultado")
	}
}
