package apiclient

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/tipoagendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
)

const (
	TagCoordenadorias = "coordenadorias"
	TagMotivos        = "motivos"
	TagTipos          = "tipos-agendamento"
	TagTecnicos       = "tecnicos"
)

// Cached guarda as listas de apoio (lista-completa e técnicos) e
// invalida a tag do recurso a cada escrita bem sucedida. Falhas do
// cache nunca derrubam a chamada: caem direto no backend.
type Cached struct {
	*Client
	store cache.Store
	ttl   time.Duration
}

func NewCached(c *Client, store cache.Store, ttl time.Duration) *Cached {
	return &Cached{Client: c, store: store, ttl: ttl}
}

func cachedList[T any](
	ctx context.Context,
	c *Cached,
	key string,
	tag string,
	load func() ([]T, error),
) ([]T, error) {

	var out []T
	if ok, err := cache.GetJSON(ctx, c.store, key, &out); err != nil {
		log.Printf("[CACHE] leitura %s: %v", key, err)
	} else if ok {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, c.store, key, out, c.ttl, tag); err != nil {
		log.Printf("[CACHE] escrita %s: %v", key, err)
	}
	return out, nil
}

func (c *Cached) invalidate(ctx context.Context, tag string) {
	if err := c.store.Invalidate(ctx, tag); err != nil {
		log.Printf("[CACHE] invalidar %s: %v", tag, err)
	}
}

// ======================================================
// LEITURAS
// ======================================================

func (c *Cached) CoordenadoriasListaCompleta(ctx context.Context, auth Auth) ([]coordenadoria.Coordenadoria, error) {
	return cachedList(ctx, c, "coordenadorias:lista", TagCoordenadorias, func() ([]coordenadoria.Coordenadoria, error) {
		return c.Client.CoordenadoriasListaCompleta(ctx, auth)
	})
}

func (c *Cached) MotivosListaCompleta(ctx context.Context, auth Auth) ([]motivo.Motivo, error) {
	return cachedList(ctx, c, "motivos:lista", TagMotivos, func() ([]motivo.Motivo, error) {
		return c.Client.MotivosListaCompleta(ctx, auth)
	})
}

func (c *Cached) TiposListaCompleta(ctx context.Context, auth Auth) ([]tipoagendamento.TipoAgendamento, error) {
	return cachedList(ctx, c, "tipos-agendamento:lista", TagTipos, func() ([]tipoagendamento.TipoAgendamento, error) {
		return c.Client.TiposListaCompleta(ctx, auth)
	})
}

func (c *Cached) TecnicosPorCoordenadoria(ctx context.Context, auth Auth, coordenadoriaID string) ([]usuario.Tecnico, error) {
	return cachedList(ctx, c, "tecnicos:"+coordenadoriaID, TagTecnicos, func() ([]usuario.Tecnico, error) {
		return c.Client.TecnicosPorCoordenadoria(ctx, auth, coordenadoriaID)
	})
}

// ======================================================
// ESCRITAS
// ======================================================

func (c *Cached) CriarCoordenadoria(ctx context.Context, auth Auth, in coordenadoria.Salvar) (*coordenadoria.Coordenadoria, error) {
	out, err := c.Client.CriarCoordenadoria(ctx, auth, in)
	if err == nil {
		c.invalidate(ctx, TagCoordenadorias)
	}
	return out, err
}

func (c *Cached) AtualizarCoordenadoria(ctx context.Context, auth Auth, id string, in coordenadoria.Salvar) (*coordenadoria.Coordenadoria, error) {
	out, err := c.Client.AtualizarCoordenadoria(ctx, auth, id, in)
	if err == nil {
		c.invalidate(ctx, TagCoordenadorias)
	}
	return out, err
}

func (c *Cached) DesativarCoordenadoria(ctx context.Context, auth Auth, id string) (bool, error) {
	ok, err := c.Client.DesativarCoordenadoria(ctx, auth, id)
	if err == nil {
		c.invalidate(ctx, TagCoordenadorias)
	}
	return ok, err
}

func (c *Cached) CriarMotivo(ctx context.Context, auth Auth, in motivo.Salvar) (*motivo.Motivo, error) {
	out, err := c.Client.CriarMotivo(ctx, auth, in)
	if err == nil {
		c.invalidate(ctx, TagMotivos)
	}
	return out, err
}

func (c *Cached) AtualizarMotivo(ctx context.Context, auth Auth, id string, in motivo.Salvar) (*motivo.Motivo, error) {
	out, err := c.Client.AtualizarMotivo(ctx, auth, id, in)
	if err == nil {
		c.invalidate(ctx, TagMotivos)
	}
	return out, err
}

func (c *Cached) DesativarMotivo(ctx context.Context, auth Auth, id string) (bool, error) {
	ok, err := c.Client.DesativarMotivo(ctx, auth, id)
	if err == nil {
		c.invalidate(ctx, TagMotivos)
	}
	return ok, err
}

func (c *Cached) CriarTipo(ctx context.Context, auth Auth, in tipoagendamento.Salvar) (*tipoagendamento.TipoAgendamento, error) {
	out, err := c.Client.CriarTipo(ctx, auth, in)
	if err == nil {
		c.invalidate(ctx, TagTipos)
	}
	return out, err
}

func (c *Cached) AtualizarTipo(ctx context.Context, auth Auth, id string, in tipoagendamento.Salvar) (*tipoagendamento.TipoAgendamento, error) {
	out, err := c.Client.AtualizarTipo(ctx, auth, id, in)
	if err == nil {
		c.invalidate(ctx, TagTipos)
	}
	return out, err
}

func (c *Cached) DesativarTipo(ctx context.Context, auth Auth, id string) (bool, error) {
	ok, err := c.Client.DesativarTipo(ctx, auth, id)
	if err == nil {
		c.invalidate(ctx, TagTipos)
	}
	return ok, err
}

func (c *Cached) CriarUsuario(ctx context.Context, auth Auth, in usuario.CriarUsuario) (*usuario.Usuario, error) {
	out, err := c.Client.CriarUsuario(ctx, auth, in)
	if err == nil {
		c.invalidate(ctx, TagTecnicos)
	}
	return out, err
}

func (c *Cached) AtualizarUsuario(ctx context.Context, auth Auth, id string, in usuario.AtualizarUsuario) (*usuario.Usuario, error) {
	out, err := c.Client.AtualizarUsuario(ctx, auth, id, in)
	if err == nil {
		c.invalidate(ctx, TagTecnicos)
	}
	return out, err
}

func (c *Cached) DesativarUsuario(ctx context.Context, auth Auth, id string) (bool, error) {
	ok, err := c.Client.DesativarUsuario(ctx, auth, id)
	if err == nil {
		c.invalidate(ctx, TagTecnicos)
	}
	return ok, err
}

func (c *Cached) AutorizarUsuario(ctx context.Context, auth Auth, id string) (bool, error) {
	ok, err := c.Client.AutorizarUsuario(ctx, auth, id)
	if err == nil {
		c.invalidate(ctx, TagTecnicos)
	}
	return ok, err
}
