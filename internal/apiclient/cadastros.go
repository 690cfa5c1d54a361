package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/tipoagendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
)

// FiltroCadastro serve às listas de coordenadorias, motivos e tipos.
// Status aceita "ATIVO" ou "INATIVO".
type FiltroCadastro struct {
	Pagina int
	Limite int
	Busca  string
	Status string
}

func (f FiltroCadastro) query() url.Values {
	q := paginacao(f.Pagina, f.Limite)
	setIf(q, "busca", f.Busca)
	setIf(q, "status", f.Status)
	return q
}

type desativado struct {
	Desativado bool `json:"desativado"`
}

// ======================================================
// COORDENADORIAS
// ======================================================

func (c *Client) ListarCoordenadorias(ctx context.Context, auth Auth, f FiltroCadastro) (dto.Paginado[coordenadoria.Coordenadoria], error) {
	return listar[coordenadoria.Coordenadoria](ctx, c, auth, "coordenadorias/buscar-tudo", f.query())
}

func (c *Client) BuscarCoordenadoria(ctx context.Context, auth Auth, id string) (*coordenadoria.Coordenadoria, error) {
	var out coordenadoria.Coordenadoria
	if err := c.do(ctx, auth, http.MethodGet, pathID("coordenadorias/buscar-por-id/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CoordenadoriasListaCompleta(ctx context.Context, auth Auth) ([]coordenadoria.Coordenadoria, error) {
	var out []coordenadoria.Coordenadoria
	err := c.do(ctx, auth, http.MethodGet, "coordenadorias/lista-completa", nil, nil, &out)
	return out, err
}

func (c *Client) CriarCoordenadoria(ctx context.Context, auth Auth, in coordenadoria.Salvar) (*coordenadoria.Coordenadoria, error) {
	var out coordenadoria.Coordenadoria
	if err := c.do(ctx, auth, http.MethodPost, "coordenadorias/criar", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AtualizarCoordenadoria(ctx context.Context, auth Auth, id string, in coordenadoria.Salvar) (*coordenadoria.Coordenadoria, error) {
	var out coordenadoria.Coordenadoria
	if err := c.do(ctx, auth, http.MethodPatch, pathID("coordenadorias/atualizar/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DesativarCoordenadoria(ctx context.Context, auth Auth, id string) (bool, error) {
	var out desativado
	err := c.do(ctx, auth, http.MethodDelete, pathID("coordenadorias/desativar/", id), nil, nil, &out)
	return out.Desativado, err
}

// ======================================================
// MOTIVOS
// ======================================================

func (c *Client) ListarMotivos(ctx context.Context, auth Auth, f FiltroCadastro) (dto.Paginado[motivo.Motivo], error) {
	return listar[motivo.Motivo](ctx, c, auth, "motivos/buscar-tudo", f.query())
}

func (c *Client) MotivosListaCompleta(ctx context.Context, auth Auth) ([]motivo.Motivo, error) {
	var out []motivo.Motivo
	err := c.do(ctx, auth, http.MethodGet, "motivos/lista-completa", nil, nil, &out)
	return out, err
}

func (c *Client) CriarMotivo(ctx context.Context, auth Auth, in motivo.Salvar) (*motivo.Motivo, error) {
	var out motivo.Motivo
	if err := c.do(ctx, auth, http.MethodPost, "motivos/criar", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AtualizarMotivo(ctx context.Context, auth Auth, id string, in motivo.Salvar) (*motivo.Motivo, error) {
	var out motivo.Motivo
	if err := c.do(ctx, auth, http.MethodPatch, pathID("motivos/atualizar/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DesativarMotivo(ctx context.Context, auth Auth, id string) (bool, error) {
	var out desativado
	err := c.do(ctx, auth, http.MethodDelete, pathID("motivos/desativar/", id), nil, nil, &out)
	return out.Desativado, err
}

// ======================================================
// TIPOS DE AGENDAMENTO
// ======================================================

func (c *Client) ListarTipos(ctx context.Context, auth Auth, f FiltroCadastro) (dto.Paginado[tipoagendamento.TipoAgendamento], error) {
	return listar[tipoagendamento.TipoAgendamento](ctx, c, auth, "tipos-agendamento/buscar-tudo", f.query())
}

func (c *Client) TiposListaCompleta(ctx context.Context, auth Auth) ([]tipoagendamento.TipoAgendamento, error) {
	var out []tipoagendamento.TipoAgendamento
	err := c.do(ctx, auth, http.MethodGet, "tipos-agendamento/lista-completa", nil, nil, &out)
	return out, err
}

func (c *Client) CriarTipo(ctx context.Context, auth Auth, in tipoagendamento.Salvar) (*tipoagendamento.TipoAgendamento, error) {
	var out tipoagendamento.TipoAgendamento
	if err := c.do(ctx, auth, http.MethodPost, "tipos-agendamento/criar", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AtualizarTipo(ctx context.Context, auth Auth, id string, in tipoagendamento.Salvar) (*tipoagendamento.TipoAgendamento, error) {
	var out tipoagendamento.TipoAgendamento
	if err := c.do(ctx, auth, http.MethodPatch, pathID("tipos-agendamento/atualizar/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DesativarTipo(ctx context.Context, auth Auth, id string) (bool, error) {
	var out desativado
	err := c.do(ctx, auth, http.MethodDelete, pathID("tipos-agendamento/desativar/", id), nil, nil, &out)
	return out.Desativado, err
}
