package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaconhq/beacon-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.UseCase
}

func NewFeedHandler(feedUseCase *feed.UseCase) *FeedHandler {
	return &FeedHandler{feedUseCase: feedUseCase}
}

// MentorFeed handles POST /feed/mentor: ranked mentee candidates for the
// authenticated mentor.
func (h *FeedHandler) MentorFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.feedUseCase.GenerateMentorFeed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": items})
}

// MenteeFeed handles POST /feed/mentee: ranked mentor candidates for the
// authenticated mentee.
func (h *FeedHandler) MenteeFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.feedUseCase.GenerateMenteeFeed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": items})
}
