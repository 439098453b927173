package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"product-feed/internal/models"
)

const pageTimeout = 15 * time.Second

// PageSource es la parte del agregador que expone el API
type PageSource interface {
	FetchPage(ctx context.Context, pageIndex, pageSize int) []models.FeedItem
}

type FeedHandler struct {
	pages    PageSource
	pageSize int
}

func NewFeedHandler(pages PageSource, pageSize int) *FeedHandler {
	return &FeedHandler{pages: pages, pageSize: pageSize}
}

type FeedPageResponse struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.FeedItem `json:"items"`
}

// GET /v1/feed
// Una página vacía significa "no hay más o no disponible".
func (h *FeedHandler) GetFeed(c *gin.Context) {
	page, pageSize := getPaginationParams(c, h.pageSize)

	ctx, cancel := context.WithTimeout(c.Request.Context(), pageTimeout)
	defer cancel()

	items := h.pages.FetchPage(ctx, page, pageSize)
	c.JSON(http.StatusOK, FeedPageResponse{
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}
