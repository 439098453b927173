package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 0
	defaultPageSize = 20
	maxPageSize     = 100
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// getPaginationParams obtiene y valida los parámetros de paginación.
// Las páginas empiezan en 0.
func getPaginationParams(c *gin.Context, fallbackSize int) (page, pageSize int) {
	if fallbackSize < 1 || fallbackSize > maxPageSize {
		fallbackSize = defaultPageSize
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 0 {
		page = defaultPage
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(fallbackSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		pageSize = fallbackSize
	}

	return page, pageSize
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
