package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
)

// DefaultExpiryWindow is how long a mentee has to answer a pending
// request.
const DefaultExpiryWindow = 14 * 24 * time.Hour

type UseCase struct {
	matchRepo    repository.MatchRepository
	convRepo     repository.ConversationRepository
	profileRepo  repository.ProfileRepository
	logger       *zap.Logger
	expiryWindow time.Duration

	// onInitiated lets the container hook feed-cache invalidation without
	// a dependency cycle.
	onInitiated func(ctx context.Context, mentorID string)

	now func() time.Time
}

func NewUseCase(
	matchRepo repository.MatchRepository,
	convRepo repository.ConversationRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.Logger,
	expiryWindow time.Duration,
) *UseCase {
	if expiryWindow <= 0 {
		expiryWindow = DefaultExpiryWindow
	}
	return &UseCase{
		matchRepo:    matchRepo,
		convRepo:     convRepo,
		profileRepo:  profileRepo,
		logger:       logger,
		expiryWindow: expiryWindow,
		now:          time.Now,
	}
}

// OnInitiated registers a callback fired after a successful Initiate.
func (uc *UseCase) OnInitiated(fn func(ctx context.Context, mentorID string)) {
	uc.onInitiated = fn
}

// InitiateRequest carries the scores computed when the mentor saw the
// candidate in their feed.
type InitiateRequest struct {
	MenteeID       string
	BilateralScore float64
	MentorScore    float64
	MenteeScore    float64
	GoalAlignment  float64
	GoalReasoning  string
}

// Initiate creates a pending connection request from a mentor to a
// mentee. A pair with an existing active match yields
// domain.ErrDuplicateMatch.
func (uc *UseCase) Initiate(ctx context.Context, mentorID string, req InitiateRequest) (*domain.Match, error) {
	mentor, err := uc.profileRepo.GetProfile(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.IsMentor {
		return nil, domain.ErrProfileNotFound
	}
	mentee, err := uc.profileRepo.GetProfile(ctx, req.MenteeID)
	if err != nil {
		return nil, err
	}
	if !mentee.IsMentee {
		return nil, domain.ErrProfileNotFound
	}

	if _, err := uc.matchRepo.GetActiveByPair(ctx, mentorID, req.MenteeID); err == nil {
		return nil, domain.ErrDuplicateMatch
	} else if err != domain.ErrMatchNotFound {
		return nil, err
	}

	now := uc.now()
	var reasoning *string
	if req.GoalReasoning != "" {
		reasoning = &req.GoalReasoning
	}

	match := &domain.Match{
		ID:              uuid.NewString(),
		MentorID:        mentorID,
		MenteeID:        req.MenteeID,
		Status:          domain.MatchStatusPending,
		BilateralScore:  req.BilateralScore,
		MentorScore:     req.MentorScore,
		MenteeScore:     req.MenteeScore,
		GoalAlignment:   req.GoalAlignment,
		GoalReasoning:   reasoning,
		MentorDecidedAt: &now,
		ExpiresAt:       now.Add(uc.expiryWindow),
	}

	// The repository enforces pair uniqueness as well; the pre-check above
	// only cannot see a row inserted between check and create.
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	uc.logger.Info("match initiated",
		zap.String("match_id", match.ID),
		zap.String("mentor_id", mentorID),
		zap.String("mentee_id", req.MenteeID),
		zap.Float64("bilateral_score", req.BilateralScore),
	)

	if uc.onInitiated != nil {
		uc.onInitiated(ctx, mentorID)
	}
	return match, nil
}

// RespondResult is the outcome of a mentee's answer; Conversation is set
// only on accept.
type RespondResult struct {
	Match        *domain.Match
	Conversation *domain.Conversation
}

// Respond applies the mentee's decision to a pending match. Only the
// addressed mentee may respond; any terminal match, including a pending
// one past its expiry, is rejected with domain.ErrMatchNotPending. The
// status change is a compare-and-set, so two concurrent responses cannot
// both win.
func (uc *UseCase) Respond(ctx context.Context, matchID, responderID string, accept bool) (*RespondResult, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.MenteeID != responderID {
		return nil, domain.ErrNotMatchParticipant
	}
	if match.Status != domain.MatchStatusPending {
		return nil, domain.ErrMatchNotPending
	}

	now := uc.now()
	if match.Overdue(now) {
		// Lazily sweep the overdue row before rejecting the response.
		if _, err := uc.matchRepo.TransitionFromPending(ctx, matchID, domain.MatchStatusExpired, nil); err != nil && err != domain.ErrMatchNotPending {
			return nil, err
		}
		return nil, domain.ErrMatchNotPending
	}

	to := domain.MatchStatusDeclined
	if accept {
		to = domain.MatchStatusAccepted
	}

	updated, err := uc.matchRepo.TransitionFromPending(ctx, matchID, to, &now)
	if err != nil {
		return nil, err
	}

	result := &RespondResult{Match: updated}

	if accept {
		conv, err := uc.convRepo.CreateIfAbsent(ctx, &domain.Conversation{
			ID:       uuid.NewString(),
			MatchID:  updated.ID,
			MentorID: updated.MentorID,
			MenteeID: updated.MenteeID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		result.Conversation = conv
	}

	uc.logger.Info("match responded",
		zap.String("match_id", matchID),
		zap.String("status", string(updated.Status)),
	)
	return result, nil
}

// ExpireOverdue sweeps every pending match past its response window.
func (uc *UseCase) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := uc.matchRepo.ExpireOverdue(ctx, uc.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Info("expired overdue matches", zap.Int64("count", n))
	}
	return n, nil
}

// RunExpirySweeper periodically expires overdue matches until the context
// is cancelled.
func (uc *UseCase) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.ExpireOverdue(ctx); err != nil {
				uc.logger.Error("expiry sweep failed", zap.Error(err))
			}
		}
	}
}

// SentMatch is a mentor's outgoing request with the mentee summary.
type SentMatch struct {
	*domain.Match
	MenteeName     string  `json:"mentee_name"`
	MenteePosition *string `json:"mentee_position"`
	MenteeCompany  *string `json:"mentee_company"`
}

// ReceivedMatch is a mentee's incoming request with the mentor summary.
type ReceivedMatch struct {
	*domain.Match
	MentorName     string  `json:"mentor_name"`
	MentorPosition *string `json:"mentor_position"`
	MentorCompany  *string `json:"mentor_company"`
	MentorIndustry *string `json:"mentor_industry"`
	MentorLocation *string `json:"mentor_location"`
}

func (uc *UseCase) ListSent(ctx context.Context, mentorID string) ([]*SentMatch, error) {
	matches, err := uc.matchRepo.ListSent(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent matches: %w", err)
	}

	out := make([]*SentMatch, 0, len(matches))
	for _, m := range matches {
		sent := &SentMatch{Match: m, MenteeName: "Unknown"}
		if p, err := uc.profileRepo.GetProfile(ctx, m.MenteeID); err == nil {
			sent.MenteeName = p.FullName
			sent.MenteePosition = p.CurrentPosition
			sent.MenteeCompany = p.CurrentCompany
		}
		out = append(out, sent)
	}
	return out, nil
}

func (uc *UseCase) ListReceived(ctx context.Context, menteeID string) ([]*ReceivedMatch, error) {
	matches, err := uc.matchRepo.ListReceived(ctx, menteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received matches: %w", err)
	}

	out := make([]*ReceivedMatch, 0, len(matches))
	for _, m := range matches {
		// Only requests the mentor actually sent show up for the mentee.
		if m.MentorDecidedAt == nil {
			continue
		}
		recv := &ReceivedMatch{Match: m, MentorName: "Unknown"}
		if p, err := uc.profileRepo.GetProfile(ctx, m.MentorID); err == nil {
			recv.MentorName = p.FullName
			recv.MentorPosition = p.CurrentPosition
			recv.MentorCompany = p.CurrentCompany
			recv.MentorIndustry = p.CurrentIndustry
			recv.MentorLocation = p.Location
		}
		out = append(out, recv)
	}
	return out, nil
}

// ListConversations returns the conversations the user participates in.
func (uc *UseCase) ListConversations(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	return uc.convRepo.ListForUser(ctx, userID)
}
