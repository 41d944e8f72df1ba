package feed

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beaconhq/beacon-backend/internal/alignment"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/matching"
	"github.com/beaconhq/beacon-backend/internal/repository"
)

// Options bound the feed pipeline: how many candidates to pull, how many
// goal-alignment calls may be in flight, and the threshold/size of the
// returned feed.
type Options struct {
	Threshold     float64
	Limit         int
	PoolSize      int
	MaxConcurrent int
}

func DefaultOptions() Options {
	return Options{
		Threshold:     50.0,
		Limit:         5,
		PoolSize:      200,
		MaxConcurrent: 8,
	}
}

// Item is one scored candidate in a feed.
type Item struct {
	CandidateID           string   `json:"candidate_id"`
	FullName              string   `json:"full_name"`
	University            string   `json:"university,omitempty"`
	Location              string   `json:"location,omitempty"`
	CurrentPosition       string   `json:"current_position,omitempty"`
	CurrentCompany        string   `json:"current_company,omitempty"`
	CurrentIndustry       string   `json:"current_industry,omitempty"`
	ExperienceYears       float64  `json:"experience_years"`
	HelpTags              []string `json:"help_tags,omitempty"`
	Goals                 string   `json:"goals,omitempty"`
	BilateralScore        float64  `json:"bilateral_score"`
	MentorScore           float64  `json:"mentor_score"`
	MenteeScore           float64  `json:"mentee_score"`
	GoalAlignment         float64  `json:"goal_alignment"`
	GoalReasoning         string   `json:"goal_reasoning"`
	AcceptanceProbability float64  `json:"acceptance_probability"`
}

type UseCase struct {
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	scorer      *matching.Scorer
	aligner     alignment.Scorer
	cache       Cache
	logger      *zap.Logger
	opts        Options
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	scorer *matching.Scorer,
	aligner alignment.Scorer,
	cache Cache,
	logger *zap.Logger,
	opts Options,
) *UseCase {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultOptions().PoolSize
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultOptions().MaxConcurrent
	}
	return &UseCase{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		scorer:      scorer,
		aligner:     aligner,
		cache:       cache,
		logger:      logger,
		opts:        opts,
	}
}

// pair holds everything needed to score one mentor/mentee combination.
type pair struct {
	mentor *domain.Profile
	prefs  *domain.MentorPreferences
	mentee *domain.Profile
	needs  *domain.MenteeNeeds
}

// GenerateMentorFeed ranks mentee candidates for a mentor: score every
// eligible, not-yet-matched candidate, keep those at or above the
// threshold, order deterministically, truncate.
func (uc *UseCase) GenerateMentorFeed(ctx context.Context, mentorID string) ([]Item, error) {
	key := MentorFeedKey(mentorID)
	if uc.cache != nil {
		if items, ok := uc.cache.Get(ctx, key); ok {
			return items, nil
		}
	}

	mentor, err := uc.profileRepo.GetProfile(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor profile: %w", err)
	}
	if !mentor.IsMentor {
		return nil, domain.ErrProfileNotFound
	}
	prefs, err := uc.profileRepo.GetMentorPreferences(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor preferences: %w", err)
	}

	excluded, err := uc.excludedSet(ctx, mentorID, true)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.profileRepo.ListMenteeCandidates(ctx, uc.opts.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentee candidates: %w", err)
	}

	var pairs []pair
	for _, cand := range candidates {
		if cand.ID == mentorID {
			continue
		}
		if _, done := excluded[cand.ID]; done {
			continue
		}
		needs := uc.menteeNeedsOrEmpty(ctx, cand.ID)
		if ok, _ := matching.EligibleMatch(mentor, prefs, cand, needs); !ok {
			continue
		}
		pairs = append(pairs, pair{mentor: mentor, prefs: prefs, mentee: cand, needs: needs})
	}

	items, err := uc.scorePairs(ctx, pairs, func(p pair, it Item) Item {
		it.CandidateID = p.mentee.ID
		it.FullName = p.mentee.FullName
		it.University = matching.ExtractUniversity(p.mentee)
		it.Location = deref(p.mentee.Location)
		it.CurrentPosition = deref(p.mentee.CurrentPosition)
		it.CurrentCompany = deref(p.mentee.CurrentCompany)
		it.CurrentIndustry = deref(p.mentee.CurrentIndustry)
		it.ExperienceYears = matching.TotalExperience(p.mentee)
		it.HelpTags = p.needs.HelpTags
		it.Goals = p.needs.Goals
		return it
	})
	if err != nil {
		return nil, err
	}

	items = uc.rank(items)
	if uc.cache != nil {
		uc.cache.Set(ctx, key, items)
	}
	return items, nil
}

// GenerateMenteeFeed is the symmetric operation: rank mentor candidates
// for a mentee. Each candidate mentor is scored with their own stored
// weights; the ranking rules are identical.
func (uc *UseCase) GenerateMenteeFeed(ctx context.Context, menteeID string) ([]Item, error) {
	key := MenteeFeedKey(menteeID)
	if uc.cache != nil {
		if items, ok := uc.cache.Get(ctx, key); ok {
			return items, nil
		}
	}

	mentee, err := uc.profileRepo.GetProfile(ctx, menteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentee profile: %w", err)
	}
	if !mentee.IsMentee {
		return nil, domain.ErrProfileNotFound
	}
	needs := uc.menteeNeedsOrEmpty(ctx, menteeID)

	excluded, err := uc.excludedSet(ctx, menteeID, false)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.profileRepo.ListMentorCandidates(ctx, uc.opts.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor candidates: %w", err)
	}

	var pairs []pair
	for _, cand := range candidates {
		if cand.ID == menteeID {
			continue
		}
		if _, done := excluded[cand.ID]; done {
			continue
		}
		prefs, err := uc.profileRepo.GetMentorPreferences(ctx, cand.ID)
		if err != nil {
			uc.logger.Warn("skipping mentor without preferences",
				zap.String("mentor_id", cand.ID), zap.Error(err))
			continue
		}
		if ok, _ := matching.EligibleMatch(cand, prefs, mentee, needs); !ok {
			continue
		}
		pairs = append(pairs, pair{mentor: cand, prefs: prefs, mentee: mentee, needs: needs})
	}

	items, err := uc.scorePairs(ctx, pairs, func(p pair, it Item) Item {
		it.CandidateID = p.mentor.ID
		it.FullName = p.mentor.FullName
		it.University = matching.ExtractUniversity(p.mentor)
		it.Location = deref(p.mentor.Location)
		it.CurrentPosition = deref(p.mentor.CurrentPosition)
		it.CurrentCompany = deref(p.mentor.CurrentCompany)
		it.CurrentIndustry = deref(p.mentor.CurrentIndustry)
		it.ExperienceYears = matching.TotalExperience(p.mentor)
		it.HelpTags = p.prefs.HelpTags
		return it
	})
	if err != nil {
		return nil, err
	}

	items = uc.rank(items)
	if uc.cache != nil {
		uc.cache.Set(ctx, key, items)
	}
	return items, nil
}

// InvalidateMentorFeed drops the cached feed after a mentor initiates a
// match, since the new pending pair must disappear from the feed.
func (uc *UseCase) InvalidateMentorFeed(ctx context.Context, mentorID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, MentorFeedKey(mentorID))
	}
}

// scorePairs maps the candidate pool onto scored items on a bounded worker
// pool. Goal alignment is the only network-bound step; its failures are
// absorbed by the degrading scorer, so a worker only errors on
// cancellation.
func (uc *UseCase) scorePairs(ctx context.Context, pairs []pair, decorate func(pair, Item) Item) ([]Item, error) {
	results := make([]Item, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.MaxConcurrent)

	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			factors := uc.scorer.ScoreFactors(p.mentor, p.prefs, p.mentee, p.needs)

			align, err := uc.aligner.Score(gctx, alignmentRequest(p))
			if err != nil {
				// Degrading scorer never errors; a raw scorer wired in
				// directly still must not sink the batch.
				uc.logger.Warn("goal alignment unavailable",
					zap.String("mentee_id", p.mentee.ID), zap.Error(err))
				align = alignment.Result{Reasoning: "goal alignment unavailable", Fallback: true}
			}
			factors.GoalAlignment = align.Score

			combined := matching.Combine(factors, p.prefs.Weights(), domain.DefaultMenteeWeights())

			results[i] = decorate(p, Item{
				BilateralScore:        combined.BilateralScore,
				MentorScore:           combined.MentorScore,
				MenteeScore:           combined.MenteeScore,
				GoalAlignment:         align.Score,
				GoalReasoning:         align.Reasoning,
				AcceptanceProbability: matching.AcceptanceProbability(combined.MenteeScore),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// rank filters by threshold, orders by bilateral score descending with
// mentor score then candidate ID as tie-breaks, and truncates.
func (uc *UseCase) rank(items []Item) []Item {
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.BilateralScore >= uc.opts.Threshold {
			kept = append(kept, it)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].BilateralScore != kept[j].BilateralScore {
			return kept[i].BilateralScore > kept[j].BilateralScore
		}
		if kept[i].MentorScore != kept[j].MentorScore {
			return kept[i].MentorScore > kept[j].MentorScore
		}
		return kept[i].CandidateID < kept[j].CandidateID
	})

	if len(kept) > uc.opts.Limit {
		kept = kept[:uc.opts.Limit]
	}
	return kept
}

func (uc *UseCase) excludedSet(ctx context.Context, anchorID string, asMentor bool) (map[string]struct{}, error) {
	var ids []string
	var err error
	if asMentor {
		ids, err = uc.matchRepo.ListActiveMenteeIDs(ctx, anchorID)
	} else {
		ids, err = uc.matchRepo.ListActiveMentorIDs(ctx, anchorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list active matches: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// menteeNeedsOrEmpty substitutes an empty needs record when none is
// stored, so one incomplete candidate degrades to zero sub-scores instead
// of failing the feed.
func (uc *UseCase) menteeNeedsOrEmpty(ctx context.Context, menteeID string) *domain.MenteeNeeds {
	needs, err := uc.profileRepo.GetMenteeNeeds(ctx, menteeID)
	if err != nil {
		uc.logger.Debug("mentee needs missing, using empty defaults",
			zap.String("mentee_id", menteeID), zap.Error(err))
		return &domain.MenteeNeeds{MenteeID: menteeID}
	}
	return needs
}

func alignmentRequest(p pair) alignment.Request {
	var career []string
	for _, pos := range p.mentor.PastPositions {
		if pos.Duration != "" && !pos.IsEducation {
			career = append(career, pos.Title+" at "+pos.Organization)
		}
	}

	return alignment.Request{
		MenteeName:     p.mentee.FullName,
		Goals:          p.needs.Goals,
		MoreInfo:       p.needs.MoreInfo,
		NeedTags:       p.needs.HelpTags,
		MenteeRole:     deref(p.mentee.CurrentPosition),
		MenteeCompany:  deref(p.mentee.CurrentCompany),
		MenteeIndustry: deref(p.mentee.CurrentIndustry),
		Mentor: alignment.MentorSummary{
			Name:       p.mentor.FullName,
			Role:       deref(p.mentor.CurrentPosition),
			Company:    deref(p.mentor.CurrentCompany),
			Industry:   deref(p.mentor.CurrentIndustry),
			HelpTags:   p.prefs.HelpTags,
			Details:    p.prefs.HelpDetails,
			CareerPath: career,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
