package routes

import (
	"product-feed/internal/handlers"
	"product-feed/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, pages handlers.PageSource, sessions *session.Registry, pageSize int) {
	feed := handlers.NewFeedHandler(pages, pageSize)
	sh := handlers.NewSessionHandler(sessions)
	vh := handlers.NewVariantHandler(sessions)

	router.GET("/healthz", handlers.Health(sessions))

	v1 := router.Group("/v1")
	{
		v1.GET("/feed", feed.GetFeed)

		v1.POST("/feed/sessions", sh.CreateSession)
		v1.GET("/feed/sessions/:id", sh.GetSession)
		v1.PUT("/feed/sessions/:id/index", sh.SetIndex)
		v1.POST("/feed/sessions/:id/visibility", sh.ReportVisibility)
		v1.DELETE("/feed/sessions/:id/error", sh.DismissError)
		v1.DELETE("/feed/sessions/:id", sh.DeleteSession)

		v1.POST("/products/:id/variant", vh.SelectVariant)
	}
}
