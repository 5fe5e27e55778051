package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	apperrors "github.com/yungbote/neurobridge-recommender/internal/pkg/errors"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGateways serves every gateway from in-memory fixtures and counts calls.
type fakeGateways struct {
	profiles  map[string]*learning.UserProfile
	completed map[string][]string
	scores    map[string]map[string]float64
	skills    map[string][]string
	courses   []learning.Course
	jobs      []learning.JobListing
	similar   map[string][]string
	outcomes  map[string][]learning.PeerOutcome
	history   map[string][]learning.ProgressPoint

	failOp string
	cause  error
	block  bool

	calls atomic.Int32
	mu    sync.Mutex
	ops   []string
}

func (f *fakeGateways) enter(ctx context.Context, op string) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.ops = append(f.ops, op)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if op == f.failOp {
		return f.cause
	}
	return nil
}

func (f *fakeGateways) GetUserProfile(ctx context.Context, userID string) (*learning.UserProfile, error) {
	if err := f.enter(ctx, gateway.OpGetUserProfile); err != nil {
		return nil, err
	}
	return f.profiles[userID], nil
}

func (f *fakeGateways) GetCompletedCourses(ctx context.Context, userID string) ([]string, error) {
	if err := f.enter(ctx, gateway.OpGetCompletedCourses); err != nil {
		return nil, err
	}
	return f.completed[userID], nil
}

func (f *fakeGateways) GetAssessmentScores(ctx context.Context, userID string) (map[string]float64, error) {
	if err := f.enter(ctx, gateway.OpGetAssessmentScores); err != nil {
		return nil, err
	}
	return f.scores[userID], nil
}

func (f *fakeGateways) GetUserSkills(ctx context.Context, userID string) ([]string, error) {
	if err := f.enter(ctx, gateway.OpGetUserSkills); err != nil {
		return nil, err
	}
	return f.skills[userID], nil
}

func (f *fakeGateways) GetAllCourses(ctx context.Context) ([]learning.Course, error) {
	if err := f.enter(ctx, gateway.OpGetAllCourses); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakeGateways) GetJobListings(ctx context.Context, activeOnly bool) ([]learning.JobListing, error) {
	if err := f.enter(ctx, gateway.OpGetJobListings); err != nil {
		return nil, err
	}
	out := []learning.JobListing{}
	for _, j := range f.jobs {
		if !activeOnly || j.Active {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeGateways) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	if err := f.enter(ctx, gateway.OpFindSimilarUsers); err != nil {
		return nil, err
	}
	ids := f.similar[userID]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeGateways) GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	if err := f.enter(ctx, gateway.OpGetPeerOutcomes); err != nil {
		return nil, err
	}
	want := map[string]bool{}
	for _, id := range peerIDs {
		want[id] = true
	}
	out := []learning.PeerOutcome{}
	for _, o := range f.outcomes[courseID] {
		if want[o.UserID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeGateways) GetHistoricalProgress(ctx context.Context, userID string) ([]learning.ProgressPoint, error) {
	if err := f.enter(ctx, gateway.OpGetHistoricalProgress); err != nil {
		return nil, err
	}
	return f.history[userID], nil
}

func (f *fakeGateways) bundle() gateway.Gateways {
	return gateway.Gateways{Profiles: f, Catalog: f, Peers: f, History: f}
}

var pathStart = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func fixture() *fakeGateways {
	return &fakeGateways{
		profiles: map[string]*learning.UserProfile{
			"u1": {
				ID:                "u1",
				CurrentSkillLevel: 40,
				LearningPace:      learning.PaceModerate,
				PreferredTopics:   []string{"AI"},
				TimeCommitment:    10,
			},
		},
		completed: map[string][]string{"u1": {"c1"}},
		scores:    map[string]map[string]float64{"u1": {"AI": 70}},
		skills:    map[string][]string{"u1": {"Git"}},
		courses: []learning.Course{
			{ID: "c1", Title: "Python Basics", Difficulty: learning.DifficultyBeginner, Topics: []string{"AI"}, EstimatedHours: 10, Skills: []string{"python"}, CompletionRate: 0.9, AverageRating: 4.5},
			{ID: "c2", Title: "Data Wrangling", Difficulty: learning.DifficultyBeginner, Topics: []string{"AI"}, EstimatedHours: 10, Skills: []string{"numpy", "pandas"}, CompletionRate: 0.8, AverageRating: 4},
			{ID: "c3", Title: "Applied ML", Difficulty: learning.DifficultyIntermediate, Topics: []string{"AI"}, EstimatedHours: 10, Prerequisites: []string{"c2"}, Skills: []string{"sklearn"}, CompletionRate: 0.7, AverageRating: 4},
		},
		jobs: []learning.JobListing{
			{ID: "j1", Title: "ML Engineer", RequiredSkills: []string{"Python", "numpy", "sql"}, Active: true},
			{ID: "j2", Title: "Archived", RequiredSkills: []string{"git"}, Active: false},
			{ID: "j3", Title: "Tooling", RequiredSkills: []string{"git"}, Active: true},
		},
		similar: map[string][]string{"u1": {"u1", "p1", "p2"}},
		outcomes: map[string][]learning.PeerOutcome{
			"c2": {{UserID: "p1", Progress: 100, Rating: 5}, {UserID: "p2", Progress: 60, Rating: 3}},
		},
		history: map[string][]learning.ProgressPoint{},
	}
}

func newTestService(f *fakeGateways, m *observability.Metrics) RecommendationService {
	return NewRecommendationService(logger.NewNop(), f.bundle(), Engines{}, m, RecommendationConfig{
		Now: func() time.Time { return pathStart },
	})
}

func TestValidationHappensBeforeGatewayCalls(t *testing.T) {
	f := fixture()
	svc := newTestService(f, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"empty user", func() error { _, err := svc.GenerateRecommendations(ctx, "  ", 10); return err }},
		{"zero limit", func() error { _, err := svc.GenerateRecommendations(ctx, "u1", 0); return err }},
		{"negative job limit", func() error { _, err := svc.MatchJobs(ctx, "u1", -1); return err }},
		{"target above range", func() error { _, err := svc.GenerateLearningPath(ctx, "u1", 101, 4); return err }},
		{"target below range", func() error { _, err := svc.ForecastProgress(ctx, "u1", -0.5); return err }},
		{"target nan", func() error { _, err := svc.ForecastProgress(ctx, "u1", math.NaN()); return err }},
		{"zero weeks", func() error { _, err := svc.GenerateLearningPath(ctx, "u1", 80, 0); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			var ve *apperrors.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
	assert.Zero(t, f.calls.Load())
}

func TestGenerateRecommendations(t *testing.T) {
	f := fixture()
	m := observability.NewMetrics()
	svc := newTestService(f, m)

	recs, err := svc.GenerateRecommendations(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	ids := []string{recs[0].CourseID, recs[1].CourseID}
	assert.ElementsMatch(t, []string{"c2", "c3"}, ids)
	for i, r := range recs {
		assert.NotEqual(t, "c1", r.CourseID)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].Score, r.Score)
		}
	}

	byID := map[string]learning.Recommendation{recs[0].CourseID: recs[0], recs[1].CourseID: recs[1]}
	// the learner's own id is dropped from the peer set: (100+100)/2 and (60+60)/2
	assert.InDelta(t, 80, byID["c2"].Signals["peer_success"], 1e-9)
	assert.InDelta(t, 50, byID["c3"].Signals["peer_success"], 1e-9)
	// python is acquired through the completed course
	assert.Equal(t, []string{"numpy", "pandas"}, byID["c2"].SkillGapFilled)
	assert.Equal(t, 7, byID["c2"].EstimatedCompletionDays)

	limited, err := svc.GenerateRecommendations(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
	assert.Equal(t, recs[0].CourseID, limited[0].CourseID)
}

func TestGenerateLearningPathOrdersPrerequisites(t *testing.T) {
	f := fixture()
	svc := newTestService(f, nil)

	path, err := svc.GenerateLearningPath(context.Background(), "u1", 100, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"c2", "c3"}, path.Courses)
	assert.Empty(t, path.Unschedulable)
	assert.Equal(t, 55.0, path.ProjectedSkillLevel)
	assert.Equal(t, 100.0, path.TargetSkillLevel)
	assert.Equal(t, 2, path.EstimatedDurationWeeks)
	require.Len(t, path.Milestones, 2)
	assert.Equal(t, pathStart.AddDate(0, 0, 7), path.Milestones[0].TargetDate)
	assert.Equal(t, pathStart.AddDate(0, 0, 14), path.Milestones[1].TargetDate)
	assert.Equal(t, []string{"sklearn"}, path.Milestones[1].SkillsAcquired)

	again, err := svc.GenerateLearningPath(context.Background(), "u1", 100, 4)
	require.NoError(t, err)
	assert.Equal(t, path.ID, again.ID)
}

func TestMatchJobsUsesAcquiredSkills(t *testing.T) {
	f := fixture()
	svc := newTestService(f, nil)

	matches, err := svc.MatchJobs(context.Background(), "u1", 20)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "j3", matches[0].ID)
	assert.Equal(t, 100, matches[0].MatchScore)
	assert.Equal(t, "j1", matches[1].ID)
	// python comes from the completed course, Git from the skills table
	assert.Equal(t, 33, matches[1].MatchScore)
	assert.Equal(t, []string{"numpy", "sql"}, matches[1].SkillGaps)
	assert.Equal(t, 6, matches[1].EstimatedTimeToQualifyWeeks)
}

func TestForecastDefaultsForUnknownLearner(t *testing.T) {
	f := fixture()
	svc := newTestService(f, nil)

	fc, err := svc.ForecastProgress(context.Background(), "ghost", 90)
	require.NoError(t, err)
	assert.Equal(t, 50.0, fc.CurrentLevel)
	assert.Equal(t, learning.RateDefault, fc.RateSource)
	// (90-50)/5 weeks at 5h/week against the 10h reference
	assert.Equal(t, 16, fc.EstimatedWeeks)
	assert.Len(t, fc.Milestones, 4)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.NotContains(t, f.ops, gateway.OpGetAllCourses)
	assert.NotContains(t, f.ops, gateway.OpFindSimilarUsers)
	assert.Contains(t, f.ops, gateway.OpGetHistoricalProgress)
}

func TestUpstreamFailureIsTyped(t *testing.T) {
	cause := errors.New("connection reset")
	for _, op := range []string{gateway.OpGetAllCourses, gateway.OpGetUserProfile, gateway.OpFindSimilarUsers, gateway.OpGetPeerOutcomes} {
		t.Run(op, func(t *testing.T) {
			f := fixture()
			f.failOp, f.cause = op, cause
			svc := newTestService(f, nil)

			_, err := svc.GenerateRecommendations(context.Background(), "u1", 5)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
			assert.ErrorIs(t, err, cause)
			var ue *apperrors.UpstreamError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, op, ue.Op)
		})
	}
}

func TestCanceledContextStopsLoad(t *testing.T) {
	f := fixture()
	f.block = true
	svc := newTestService(f, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.ForecastProgress(ctx, "u1", 80)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMissingGatewaysFallBackToDefaults(t *testing.T) {
	svc := NewRecommendationService(logger.NewNop(), gateway.Gateways{}, Engines{}, nil, RecommendationConfig{})

	recs, err := svc.GenerateRecommendations(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)

	path, err := svc.GenerateLearningPath(context.Background(), "u1", 60, 2)
	require.NoError(t, err)
	assert.Empty(t, path.Courses)
	assert.Equal(t, 50.0, path.ProjectedSkillLevel)
}
