package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/dashboard"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
)

// listar é o GET paginado comum a todos os recursos.
func listar[T any](ctx context.Context, c *Client, auth Auth, path string, q url.Values) (dto.Paginado[T], error) {
	var out dto.Paginado[T]
	if err := c.do(ctx, auth, http.MethodGet, path, q, nil, &out); err != nil {
		return out, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return out, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func paginacao(pagina, limite int) url.Values {
	if pagina <= 0 {
		pagina = 1
	}
	if limite <= 0 {
		limite = 10
	}
	q := url.Values{}
	q.Set("pagina", strconv.Itoa(pagina))
	q.Set("limite", strconv.Itoa(limite))
	return q
}

func (c *Client) ListarAgendamentos(ctx context.Context, auth Auth, f agendamento.Filtro) (dto.Paginado[agendamento.Agendamento], error) {
	q := paginacao(f.Pagina, f.Limite)
	setIf(q, "busca", f.Busca)
	setIf(q, "status", f.Status)
	setIf(q, "dataInicio", f.DataInicio)
	setIf(q, "dataFim", f.DataFim)
	setIf(q, "coordenadoriaId", f.CoordenadoriaID)
	setIf(q, "tecnicoId", f.TecnicoID)

	return listar[agendamento.Agendamento](ctx, c, auth, "agendamentos/buscar-tudo", q)
}

func (c *Client) AgendamentosDoDia(ctx context.Context, auth Auth) ([]agendamento.Agendamento, error) {
	var out []agendamento.Agendamento
	err := c.do(ctx, auth, http.MethodGet, "agendamentos/buscar-do-dia", nil, nil, &out)
	return out, err
}

func (c *Client) BuscarAgendamento(ctx context.Context, auth Auth, id string) (*agendamento.Agendamento, error) {
	var out agendamento.Agendamento
	if err := c.do(ctx, auth, http.MethodGet, pathID("agendamentos/buscar-por-id/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CriarAgendamento(ctx context.Context, auth Auth, in agendamento.Criar) (*agendamento.Agendamento, error) {
	var out agendamento.Agendamento
	if err := c.do(ctx, auth, http.MethodPost, "agendamentos/criar", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AtualizarAgendamento(ctx context.Context, auth Auth, id string, in agendamento.Atualizar) (*agendamento.Agendamento, error) {
	var out agendamento.Agendamento
	if err := c.do(ctx, auth, http.MethodPatch, pathID("agendamentos/atualizar/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExcluirAgendamento(ctx context.Context, auth Auth, id string) (bool, error) {
	var out struct {
		Excluido bool `json:"excluido"`
	}
	err := c.do(ctx, auth, http.MethodDelete, pathID("agendamentos/excluir/", id), nil, nil, &out)
	return out.Excluido, err
}

func (c *Client) ImportarPlanilha(ctx context.Context, auth Auth, arquivo Arquivo, coordenadoriaID string) (agendamento.ResultadoImportacao, error) {
	var out agendamento.ResultadoImportacao
	arquivo.Campo = "arquivo"
	err := c.doMultipart(ctx, auth, "agendamentos/importar-planilha", arquivo,
		map[string]string{"coordenadoriaId": coordenadoriaID}, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, auth Auth, q url.Values) (dashboard.Dashboard, error) {
	var out dashboard.Dashboard
	err := c.do(ctx, auth, http.MethodGet, "agendamentos/dashboard", q, nil, &out)
	return out, err
}
