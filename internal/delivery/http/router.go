package http

import (
	"github.com/gin-gonic/gin"

	"github.com/beaconhq/beacon-backend/internal/delivery/http/handler"
	"github.com/beaconhq/beacon-backend/internal/delivery/http/middleware"
)

type Router struct {
	feedHandler    *handler.FeedHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	feedHandler *handler.FeedHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		feedHandler:    feedHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		feed := v1.Group("/feed")
		{
			feed.POST("/mentor", r.feedHandler.MentorFeed)
			feed.POST("/mentee", r.feedHandler.MenteeFeed)
		}

		match := v1.Group("/match")
		{
			match.POST("/connect", r.matchHandler.Connect)
			match.POST("/respond", r.matchHandler.Respond)
			match.GET("/sent", r.matchHandler.Sent)
			match.GET("/received", r.matchHandler.Received)
		}

		v1.GET("/conversations", r.matchHandler.Conversations)
	}

	return router
}
