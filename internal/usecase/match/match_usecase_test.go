package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]*domain.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*domain.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, m *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.matches {
		if existing.MentorID == m.MentorID && existing.MenteeID == m.MenteeID && existing.Active() {
			return domain.ErrDuplicateMatch
		}
	}
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetActiveByPair(_ context.Context, mentorID, menteeID string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.MentorID == mentorID && m.MenteeID == menteeID && m.Active() {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListSent(_ context.Context, mentorID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.MentorID == mentorID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListReceived(_ context.Context, menteeID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.MenteeID == menteeID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListActiveMenteeIDs(_ context.Context, mentorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, m := range r.matches {
		if m.MentorID == mentorID && m.Active() {
			ids = append(ids, m.MenteeID)
		}
	}
	return ids, nil
}

func (r *fakeMatchRepo) ListActiveMentorIDs(_ context.Context, menteeID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, m := range r.matches {
		if m.MenteeID == menteeID && m.Active() {
			ids = append(ids, m.MentorID)
		}
	}
	return ids, nil
}

func (r *fakeMatchRepo) TransitionFromPending(_ context.Context, id string, to domain.MatchStatus, menteeDecidedAt *time.Time) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	if m.Status != domain.MatchStatusPending {
		return nil, domain.ErrMatchNotPending
	}
	m.Status = to
	if menteeDecidedAt != nil {
		m.MenteeDecidedAt = menteeDecidedAt
	}
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.matches {
		if m.Status == domain.MatchStatusPending && now.After(m.ExpiresAt) {
			m.Status = domain.MatchStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeConvRepo struct {
	mu      sync.Mutex
	byMatch map[string]*domain.Conversation
	creates int
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{byMatch: make(map[string]*domain.Conversation)}
}

func (r *fakeConvRepo) CreateIfAbsent(_ context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byMatch[conv.MatchID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *conv
	cp.CreatedAt = time.Now()
	r.byMatch[conv.MatchID] = &cp
	r.creates++
	out := cp
	return &out, nil
}

func (r *fakeConvRepo) GetByMatchID(_ context.Context, matchID string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.byMatch[matchID]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	cp := *conv
	return &cp, nil
}

func (r *fakeConvRepo) ListForUser(_ context.Context, userID string) ([]*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Conversation
	for _, c := range r.byMatch {
		if _, ok := c.OtherParty(userID); ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (r *fakeProfileRepo) GetProfile(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) GetMentorPreferences(_ context.Context, _ string) (*domain.MentorPreferences, error) {
	return nil, domain.ErrPreferencesNotFound
}

func (r *fakeProfileRepo) GetMenteeNeeds(_ context.Context, _ string) (*domain.MenteeNeeds, error) {
	return nil, domain.ErrNeedsNotFound
}

func (r *fakeProfileRepo) ListMenteeCandidates(_ context.Context, _ int) ([]*domain.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) ListMentorCandidates(_ context.Context, _ int) ([]*domain.Profile, error) {
	return nil, nil
}

type fixture struct {
	uc        *UseCase
	matchRepo *fakeMatchRepo
	convRepo  *fakeConvRepo
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"mentor-1": {ID: "mentor-1", FullName: "Alex Rivera", IsMentor: true},
		"mentee-1": {ID: "mentee-1", FullName: "Jordan Kim", IsMentee: true},
		"mentee-2": {ID: "mentee-2", FullName: "Sam Lee", IsMentee: true},
	}}
	matchRepo := newFakeMatchRepo()
	convRepo := newFakeConvRepo()

	uc := NewUseCase(matchRepo, convRepo, profiles, zap.NewNop(), DefaultExpiryWindow)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	return &fixture{uc: uc, matchRepo: matchRepo, convRepo: convRepo, now: now}
}

func (f *fixture) initiate(t *testing.T, menteeID string) *domain.Match {
	t.Helper()
	m, err := f.uc.Initiate(context.Background(), "mentor-1", InitiateRequest{
		MenteeID:       menteeID,
		BilateralScore: 80.9,
		MentorScore:    82.5,
		MenteeScore:    78.4,
		GoalAlignment:  0.85,
		GoalReasoning:  "Strong trajectory match",
	})
	require.NoError(t, err)
	return m
}

func TestInitiate(t *testing.T) {
	f := newFixture(t)

	m := f.initiate(t, "mentee-1")

	assert.Equal(t, domain.MatchStatusPending, m.Status)
	assert.Equal(t, "mentor-1", m.MentorID)
	assert.Equal(t, "mentee-1", m.MenteeID)
	require.NotNil(t, m.MentorDecidedAt)
	assert.Equal(t, f.now, *m.MentorDecidedAt)
	assert.Nil(t, m.MenteeDecidedAt)
	assert.Equal(t, f.now.Add(14*24*time.Hour), m.ExpiresAt)
	require.NotNil(t, m.GoalReasoning)
	assert.Equal(t, "Strong trajectory match", *m.GoalReasoning)
}

func TestInitiateDuplicatePair(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "mentee-1")

	_, err := f.uc.Initiate(context.Background(), "mentor-1", InitiateRequest{MenteeID: "mentee-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateMatch)
}

func TestInitiateAfterDeclineAllowed(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	_, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", false)
	require.NoError(t, err)

	again := f.initiate(t, "mentee-1")
	assert.NotEqual(t, m.ID, again.ID, "a declined pair may be re-requested")
}

func TestInitiateRejectsNonMentor(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Initiate(context.Background(), "mentee-1", InitiateRequest{MenteeID: "mentee-2"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestInitiateFiresHook(t *testing.T) {
	f := newFixture(t)

	var hookedMentor string
	f.uc.OnInitiated(func(_ context.Context, mentorID string) {
		hookedMentor = mentorID
	})

	f.initiate(t, "mentee-1")
	assert.Equal(t, "mentor-1", hookedMentor)
}

func TestRespondAccept(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	res, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", true)
	require.NoError(t, err)

	assert.Equal(t, domain.MatchStatusAccepted, res.Match.Status)
	require.NotNil(t, res.Match.MenteeDecidedAt)
	assert.Equal(t, f.now, *res.Match.MenteeDecidedAt)
	require.NotNil(t, res.Conversation)
	assert.Equal(t, m.ID, res.Conversation.MatchID)
	assert.Equal(t, 1, f.convRepo.creates)
}

func TestRespondDecline(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	res, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", false)
	require.NoError(t, err)

	assert.Equal(t, domain.MatchStatusDeclined, res.Match.Status)
	assert.Nil(t, res.Conversation)
	assert.Zero(t, f.convRepo.creates)
}

func TestRespondOnlyAddressedMentee(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	_, err := f.uc.Respond(context.Background(), m.ID, "mentee-2", true)
	assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)

	_, err = f.uc.Respond(context.Background(), m.ID, "mentor-1", true)
	assert.ErrorIs(t, err, domain.ErrNotMatchParticipant, "the mentor cannot answer their own request")
}

func TestRespondTerminalMatch(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	_, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", false)
	require.NoError(t, err)

	_, err = f.uc.Respond(context.Background(), m.ID, "mentee-1", true)
	assert.ErrorIs(t, err, domain.ErrMatchNotPending, "a declined match stays declined")
}

func TestRespondUnknownMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Respond(context.Background(), uuid.NewString(), "mentee-1", true)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestRespondOverdueExpiresLazily(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	f.uc.now = func() time.Time { return f.now.Add(15 * 24 * time.Hour) }

	_, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", true)
	assert.ErrorIs(t, err, domain.ErrMatchNotPending)

	stored, err := f.matchRepo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusExpired, stored.Status)
	assert.Zero(t, f.convRepo.creates)
}

func TestRespondConcurrentExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, accept := range []bool{true, false} {
		wg.Add(1)
		go func(accept bool) {
			defer wg.Done()
			_, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", accept)
			results <- err
		}(accept)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case err == domain.ErrMatchNotPending:
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one responder wins the compare-and-set")
	assert.Equal(t, 1, losses)

	stored, err := f.matchRepo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, stored.Status.Terminal())
	assert.LessOrEqual(t, f.convRepo.creates, 1)
}

func TestRespondAcceptReusesExistingConversation(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	seeded, err := f.convRepo.CreateIfAbsent(context.Background(), &domain.Conversation{
		ID:       uuid.NewString(),
		MatchID:  m.ID,
		MentorID: m.MentorID,
		MenteeID: m.MenteeID,
	})
	require.NoError(t, err)

	res, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", true)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, res.Conversation.ID, "conversation creation is idempotent per match")
	assert.Equal(t, 1, f.convRepo.creates)
}

func TestExpireOverdue(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "mentee-1")
	f.initiate(t, "mentee-2")

	f.uc.now = func() time.Time { return f.now.Add(15 * 24 * time.Hour) }

	n, err := f.uc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// A second sweep finds nothing left to expire.
	n, err = f.uc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListSent(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "mentee-1")

	sent, err := f.uc.ListSent(context.Background(), "mentor-1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "Jordan Kim", sent[0].MenteeName)
	assert.Equal(t, "mentee-1", sent[0].MenteeID)
}

func TestListReceivedHidesUndecided(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	// Simulate a scored-but-never-sent row.
	require.NoError(t, f.matchRepo.Create(context.Background(), &domain.Match{
		ID:       uuid.NewString(),
		MentorID: "mentor-2",
		MenteeID: "mentee-1",
		Status:   domain.MatchStatusPending,
	}))

	received, err := f.uc.ListReceived(context.Background(), "mentee-1")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, m.ID, received[0].ID)
	assert.Equal(t, "Alex Rivera", received[0].MentorName)
}

func TestListConversations(t *testing.T) {
	f := newFixture(t)
	m := f.initiate(t, "mentee-1")

	_, err := f.uc.Respond(context.Background(), m.ID, "mentee-1", true)
	require.NoError(t, err)

	for _, userID := range []string{"mentor-1", "mentee-1"} {
		convs, err := f.uc.ListConversations(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, convs, 1, "user %s", userID)
		assert.Equal(t, m.ID, convs[0].MatchID)
	}

	convs, err := f.uc.ListConversations(context.Background(), "mentee-2")
	require.NoError(t, err)
	assert.Empty(t, convs)
}
