package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"product-feed/internal/session"
	"product-feed/internal/variant"
)

type VariantHandler struct {
	sessions *session.Registry
}

func NewVariantHandler(sessions *session.Registry) *VariantHandler {
	return &VariantHandler{sessions: sessions}
}

type VariantRequest struct {
	Selections []session.Selection `json:"selections" binding:"omitempty,dive"`
}

// POST /v1/products/:id/variant?session_id=
// El producto debe estar cargado en la sesión. Sin cuerpo retorna la selección actual.
func (h *VariantHandler) SelectVariant(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session_id is required"})
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	s, err := h.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := s.SelectVariant(c.Param("id"), req.Selections)
	switch {
	case errors.Is(err, session.ErrProductNotLoaded):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, variant.ErrUnknownOption):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not resolve variant"})
	default:
		c.JSON(http.StatusOK, view)
	}
}
