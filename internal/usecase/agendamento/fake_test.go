package agendamento

import (
	"context"
	"sync"
	"testing"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
)

// fakeGateway guarda os agendamentos em memória e registra as
// chamadas de escrita.
type fakeGateway struct {
	agendamentos map[string]domain.Agendamento
	lista        []domain.Agendamento
	tecnicos     map[string][]usuario.Tecnico
	motivos      []motivo.Motivo

	filtros      []domain.Filtro
	atualizacoes map[string]domain.Atualizar
	criados      []domain.Criar
	importados   []apiclient.Arquivo
	tecnicosReq  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		agendamentos: map[string]domain.Agendamento{},
		tecnicos:     map[string][]usuario.Tecnico{},
		atualizacoes: map[string]domain.Atualizar{},
	}
}

func (f *fakeGateway) ListarAgendamentos(_ context.Context, _ apiclient.Auth, fl domain.Filtro) (dto.Paginado[domain.Agendamento], error) {
	f.filtros = append(f.filtros, fl)

	ini := (fl.Pagina - 1) * fl.Limite
	fim := ini + fl.Limite
	if ini > len(f.lista) {
		ini = len(f.lista)
	}
	if fim > len(f.lista) {
		fim = len(f.lista)
	}
	return dto.Paginado[domain.Agendamento]{
		Data:   f.lista[ini:fim],
		Total:  len(f.lista),
		Pagina: fl.Pagina,
		Limite: fl.Limite,
	}, nil
}

func (f *fakeGateway) BuscarAgendamento(_ context.Context, _ apiclient.Auth, id string) (*domain.Agendamento, error) {
	ag, ok := f.agendamentos[id]
	if !ok {
		return nil, &apiclient.APIError{Op: "buscar", Status: 404, Message: "Agendamento não encontrado"}
	}
	return &ag, nil
}

func (f *fakeGateway) CriarAgendamento(_ context.Context, _ apiclient.Auth, in domain.Criar) (*domain.Agendamento, error) {
	f.criados = append(f.criados, in)
	return &domain.Agendamento{ID: "novo", Processo: in.Processo}, nil
}

func (f *fakeGateway) AtualizarAgendamento(_ context.Context, _ apiclient.Auth, id string, in domain.Atualizar) (*domain.Agendamento, error) {
	f.atualizacoes[id] = in
	ag := f.agendamentos[id]
	if in.Status != "" {
		ag.Status = in.Status
	}
	if in.TecnicoID != "" {
		ag.TecnicoID = in.TecnicoID
	}
	return &ag, nil
}

func (f *fakeGateway) ExcluirAgendamento(_ context.Context, _ apiclient.Auth, id string) (bool, error) {
	_, ok := f.agendamentos[id]
	delete(f.agendamentos, id)
	return ok, nil
}

func (f *fakeGateway) ImportarPlanilha(_ context.Context, _ apiclient.Auth, a apiclient.Arquivo, _ string) (domain.ResultadoImportacao, error) {
	f.importados = append(f.importados, a)
	return domain.ResultadoImportacao{Importados: 2}, nil
}

func (f *fakeGateway) TecnicosPorCoordenadoria(_ context.Context, _ apiclient.Auth, id string) ([]usuario.Tecnico, error) {
	f.tecnicosReq++
	return f.tecnicos[id], nil
}

func (f *fakeGateway) MotivosListaCompleta(_ context.Context, _ apiclient.Auth) ([]motivo.Motivo, error) {
	return f.motivos, nil
}

// --------------------------------------------------
// auditoria
// --------------------------------------------------

type recWriter struct {
	mu     sync.Mutex
	events []audit.Event
}

func (w *recWriter) Write(_ context.Context, ev audit.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return nil
}

func newAudit(t *testing.T) (*audit.Dispatcher, *recWriter) {
	t.Helper()
	w := &recWriter{}
	d := audit.NewDispatcher(w)
	t.Cleanup(d.Close)
	return d, w
}

func ator(p usuario.Permissao, id string) Ator {
	return Ator{
		UsuarioID: id,
		Login:     "login-" + id,
		Permissao: p,
		Auth:      apiclient.Auth{Token: "tok"},
	}
}
