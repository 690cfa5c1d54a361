package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-smul/internal/avatar"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
	"github.com/BruksfildServices01/agendamento-smul/internal/middleware"
)

const (
	avatarTTL = time.Hour
	avatarTag = "avatar"
)

// AvatarHandler serve a miniatura webp da foto do usuário logado,
// guardada no cache por uma hora.
type AvatarHandler struct {
	store  cache.Store
	client *http.Client
}

func NewAvatarHandler(store cache.Store, client *http.Client) *AvatarHandler {
	return &AvatarHandler{store: store, client: client}
}

func (h *AvatarHandler) Show(c *gin.Context) {
	s := middleware.GetSession(c)
	ctx := c.Request.Context()
	key := "avatar:" + s.UsuarioID()

	if img, ok, err := h.store.Get(ctx, key); err != nil {
		log.Printf("[CACHE] leitura %s: %v", key, err)
	} else if ok {
		h.write(c, img)
		return
	}

	raw, err := avatar.Load(ctx, h.client, s.Avatar())
	if err != nil {
		if !errors.Is(err, avatar.ErrSemAvatar) {
			log.Printf("[AVATAR] %s: %v", s.Login, err)
		}
		c.Status(http.StatusNotFound)
		return
	}

	img, err := avatar.Thumbnail(raw, avatar.Size)
	if err != nil {
		log.Printf("[AVATAR] miniatura de %s: %v", s.Login, err)
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.store.Set(ctx, key, img, avatarTTL, avatarTag); err != nil {
		log.Printf("[CACHE] escrita %s: %v", key, err)
	}
	h.write(c, img)
}

func (h *AvatarHandler) write(c *gin.Context, img []byte) {
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/webp", img)
}
