package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"product-feed/internal/models"
	"product-feed/internal/session"
	"product-feed/internal/window"
)

type SessionHandler struct {
	sessions *session.Registry
}

func NewSessionHandler(sessions *session.Registry) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type SessionResponse struct {
	ID           string             `json:"id"`
	Empty        bool               `json:"empty"`
	State        window.WindowState `json:"state"`
	Window       []int              `json:"window"`
	Items        []models.FeedItem  `json:"items"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

type IndexRequest struct {
	Index *int `json:"index" binding:"required,gte=0"`
}

type VisibilitySignal struct {
	Handle string  `json:"handle" binding:"required"`
	Index  *int    `json:"index" binding:"omitempty,gte=0"`
	Ratio  float64 `json:"ratio" binding:"gte=0,lte=1"`
}

type VisibilityRequest struct {
	Signals []VisibilitySignal `json:"signals" binding:"required,dive"`
}

// toResponse arma la respuesta. Con all=false solo incluye los items de la ventana.
func toResponse(s *session.Session, all bool) SessionResponse {
	state := s.Window.State()
	resp := SessionResponse{
		ID:           s.ID,
		Empty:        state.Empty(),
		State:        state,
		Window:       s.Window.Window(),
		ErrorMessage: state.ErrorMessage(),
	}

	if all {
		resp.Items = s.Window.Items()
		return resp
	}
	resp.Items = make([]models.FeedItem, 0, len(resp.Window))
	for _, i := range resp.Window {
		if item, ok := s.Window.Item(i); ok {
			resp.Items = append(resp.Items, item)
		}
	}
	return resp
}

// lookup escribe 404 si la sesión no existe
func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return s, true
}

// POST /v1/feed/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pageTimeout)
	defer cancel()

	s, err := h.sessions.Create(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not open feed session"})
		return
	}

	resp := toResponse(s, true)
	if resp.Empty {
		// sin items: la vista ofrece recargar
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /v1/feed/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(s, false))
}

// PUT /v1/feed/sessions/:id/index
func (h *SessionHandler) SetIndex(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req IndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.Window.SetCurrentIndex(*req.Index)
	c.JSON(http.StatusOK, toResponse(s, false))
}

// POST /v1/feed/sessions/:id/visibility
func (h *SessionHandler) ReportVisibility(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	signals := make([]window.Signal, len(req.Signals))
	for i, sig := range req.Signals {
		signals[i] = window.Signal{Handle: sig.Handle, Index: sig.Index, Ratio: sig.Ratio}
	}
	s.Window.ReportVisibilityBatch(signals)

	c.JSON(http.StatusOK, toResponse(s, false))
}

// DELETE /v1/feed/sessions/:id/error
func (h *SessionHandler) DismissError(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	s.Window.DismissError()
	c.JSON(http.StatusOK, SuccessResponse{Message: "error dismissed"})
}

// DELETE /v1/feed/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not close session"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session closed"})
}
