package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaconhq/beacon-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
}

func NewMatchHandler(matchUseCase *match.UseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// ConnectRequest carries the scores shown in the feed at the moment the
// mentor chose to connect.
type ConnectRequest struct {
	MenteeID       string  `json:"mentee_id" binding:"required"`
	BilateralScore float64 `json:"bilateral_score"`
	MentorScore    float64 `json:"mentor_score"`
	MenteeScore    float64 `json:"mentee_score"`
	GoalAlignment  float64 `json:"goal_alignment"`
	GoalReasoning  string  `json:"goal_reasoning"`
}

// Connect handles POST /match/connect: the mentor initiates a pending
// request.
func (h *MatchHandler) Connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.matchUseCase.Initiate(c.Request.Context(), userID, match.InitiateRequest{
		MenteeID:       req.MenteeID,
		BilateralScore: req.BilateralScore,
		MentorScore:    req.MentorScore,
		MenteeScore:    req.MenteeScore,
		GoalAlignment:  req.GoalAlignment,
		GoalReasoning:  req.GoalReasoning,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"match": created})
}

type RespondRequest struct {
	MatchID  string `json:"match_id" binding:"required"`
	Response string `json:"response" binding:"required,oneof=accepted declined"`
}

// Respond handles POST /match/respond: the addressed mentee accepts or
// declines a pending request.
func (h *MatchHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.matchUseCase.Respond(c.Request.Context(), req.MatchID, userID, req.Response == "accepted")
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"match": result.Match}
	if result.Conversation != nil {
		resp["conversation_id"] = result.Conversation.ID
	}
	c.JSON(http.StatusOK, resp)
}

// Sent handles GET /match/sent for the mentor's outgoing requests.
func (h *MatchHandler) Sent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListSent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Received handles GET /match/received for the mentee's incoming
// requests.
func (h *MatchHandler) Received(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListReceived(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Conversations handles GET /conversations for either participant.
func (h *MatchHandler) Conversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	convs, err := h.matchUseCase.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}
