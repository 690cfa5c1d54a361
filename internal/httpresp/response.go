package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Lista é o envelope das respostas JSON de coleção.
type Lista[T any] struct {
	Dados []T `json:"dados"`
	Total int `json:"total"`
}

// List nunca devolve "dados": null; a lista vazia sai como [].
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, Lista[T]{
		Dados: data,
		Total: len(data),
	})
}
