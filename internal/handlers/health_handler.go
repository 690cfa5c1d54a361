package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health responde ok mesmo sem banco: a auditoria é opcional.
func (h *HealthHandler) Health(c *gin.Context) {
	auditoria := "desativada"

	if h.db != nil {
		auditoria = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			auditoria = "indisponivel"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"auditoria": auditoria,
	})
}
