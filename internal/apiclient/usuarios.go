package apiclient

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
)

type FiltroUsuario struct {
	Pagina    int
	Limite    int
	Busca     string
	Status    string
	Permissao string
}

func (c *Client) ListarUsuarios(ctx context.Context, auth Auth, f FiltroUsuario) (dto.Paginado[usuario.Usuario], error) {
	q := paginacao(f.Pagina, f.Limite)
	setIf(q, "busca", f.Busca)
	setIf(q, "status", f.Status)
	setIf(q, "permissao", f.Permissao)
	return listar[usuario.Usuario](ctx, c, auth, "usuarios/buscar-tudo", q)
}

func (c *Client) BuscarUsuario(ctx context.Context, auth Auth, id string) (*usuario.Usuario, error) {
	var out usuario.Usuario
	if err := c.do(ctx, auth, http.MethodGet, pathID("usuarios/buscar-por-id/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuscarNovoUsuario consulta o diretório de rede pelo login.
func (c *Client) BuscarNovoUsuario(ctx context.Context, auth Auth, login string) (*usuario.NovoUsuario, error) {
	var out usuario.NovoUsuario
	if err := c.do(ctx, auth, http.MethodGet, pathID("usuarios/buscar-novo/", login), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UsuariosListaCompleta(ctx context.Context, auth Auth) ([]usuario.Usuario, error) {
	var out []usuario.Usuario
	err := c.do(ctx, auth, http.MethodGet, "usuarios/lista-completa", nil, nil, &out)
	return out, err
}

func (c *Client) TecnicosPorCoordenadoria(ctx context.Context, auth Auth, coordenadoriaID string) ([]usuario.Tecnico, error) {
	var out []usuario.Tecnico
	err := c.do(ctx, auth, http.MethodGet, pathID("usuarios/buscar-tecnicos-por-coordenadoria/", coordenadoriaID), nil, nil, &out)
	return out, err
}

func (c *Client) CriarUsuario(ctx context.Context, auth Auth, in usuario.CriarUsuario) (*usuario.Usuario, error) {
	var out usuario.Usuario
	if err := c.do(ctx, auth, http.MethodPost, "usuarios/criar", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AtualizarUsuario(ctx context.Context, auth Auth, id string, in usuario.AtualizarUsuario) (*usuario.Usuario, error) {
	var out usuario.Usuario
	if err := c.do(ctx, auth, http.MethodPatch, pathID("usuarios/atualizar/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DesativarUsuario(ctx context.Context, auth Auth, id string) (bool, error) {
	var out desativado
	err := c.do(ctx, auth, http.MethodDelete, pathID("usuarios/desativar/", id), nil, nil, &out)
	return out.Desativado, err
}

func (c *Client) AutorizarUsuario(ctx context.Context, auth Auth, id string) (bool, error) {
	var out struct {
		Autorizado bool `json:"autorizado"`
	}
	err := c.do(ctx, auth, http.MethodPatch, pathID("usuarios/autorizar/", id), nil, nil, &out)
	return out.Autorizado, err
}

// ValidaUsuario devolve o cadastro do dono do token.
func (c *Client) ValidaUsuario(ctx context.Context, auth Auth) (*usuario.Usuario, error) {
	var out usuario.Usuario
	if err := c.do(ctx, auth, http.MethodGet, "usuarios/valida-usuario", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
