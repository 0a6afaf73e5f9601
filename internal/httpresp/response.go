package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse é o envelope das listagens (agenda do dia e auditoria).
// Page e Limit só aparecem nas listagens paginadas.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page,omitempty"`
	Limit int   `json:"limit,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// List responde a lista inteira; uma lista vazia sai como [] e não null.
func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  nonNil(data),
		Total: int64(len(data)),
	})
}

// Paged responde uma página; total é a contagem sem paginação.
func Paged[T any](c *gin.Context, data []T, total int64, page, limit int) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  nonNil(data),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func nonNil[T any](data []T) []T {
	if data == nil {
		return []T{}
	}
	return data
}
