package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/engine/forecast"
	"github.com/yungbote/neurobridge-recommender/internal/engine/jobmatch"
	"github.com/yungbote/neurobridge-recommender/internal/engine/planner"
	"github.com/yungbote/neurobridge-recommender/internal/engine/scoring"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	apperrors "github.com/yungbote/neurobridge-recommender/internal/pkg/errors"
	"github.com/yungbote/neurobridge-recommender/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

const (
	DefaultRecommendationLimit = 10
	DefaultJobMatchLimit       = 20
	DefaultPeerLimit           = 50
	// DefaultPathCandidates is how many ranked courses the planner chooses from.
	DefaultPathCandidates = 20
)

type RecommendationService interface {
	GenerateRecommendations(ctx context.Context, userID string, limit int) ([]learning.Recommendation, error)
	GenerateLearningPath(ctx context.Context, userID string, targetSkillLevel float64, timeframeWeeks int) (learning.LearningPath, error)
	MatchJobs(ctx context.Context, userID string, limit int) ([]learning.JobMatch, error)
	ForecastProgress(ctx context.Context, userID string, targetSkillLevel float64) (learning.ProgressForecast, error)
}

type RecommendationConfig struct {
	PeerLimit      int
	PathCandidates int
	// Now is the path start clock; defaults to time.Now.
	Now func() time.Time
}

// Engines holds the scoring components. Nil members get defaults.
type Engines struct {
	Scoring  *scoring.Engine
	Planner  *planner.Planner
	Jobs     *jobmatch.Matcher
	Forecast *forecast.Engine
}

type recommendationService struct {
	log     *logger.Logger
	gw      gateway.Gateways
	engines Engines
	metrics *observability.Metrics
	cfg     RecommendationConfig
}

func NewRecommendationService(log *logger.Logger, gw gateway.Gateways, engines Engines, metrics *observability.Metrics, cfg RecommendationConfig) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	if engines.Scoring == nil {
		engines.Scoring = scoring.New(gw.Peers, scoring.Config{}, log).WithMetrics(metrics)
	}
	if engines.Planner == nil {
		engines.Planner = planner.New(log)
	}
	if engines.Jobs == nil {
		engines.Jobs = jobmatch.New(log)
	}
	if engines.Forecast == nil {
		engines.Forecast = forecast.New(log)
	}
	if cfg.PeerLimit <= 0 {
		cfg.PeerLimit = DefaultPeerLimit
	}
	if cfg.PathCandidates <= 0 {
		cfg.PathCandidates = DefaultPathCandidates
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &recommendationService{
		log:     serviceLog,
		gw:      gw,
		engines: engines,
		metrics: metrics,
		cfg:     cfg,
	}
}

func (s *recommendationService) GenerateRecommendations(ctx context.Context, userID string, limit int) (out []learning.Recommendation, err error) {
	ctx, done := s.begin(ctx, "generate_recommendations", userID)
	defer func() { done(err) }()

	userID, err = validUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validLimit(limit); err != nil {
		return nil, err
	}

	snap, err := s.load(ctx, userID, needCourses|needPeers)
	if err != nil {
		return nil, err
	}
	return s.engines.Scoring.Recommend(ctx, snap.profile(userID), snap.courses, snap.peers, limit)
}

func (s *recommendationService) GenerateLearningPath(ctx context.Context, userID string, targetSkillLevel float64, timeframeWeeks int) (path learning.LearningPath, err error) {
	ctx, done := s.begin(ctx, "generate_learning_path", userID)
	defer func() { done(err) }()

	userID, err = validUserID(userID)
	if err != nil {
		return path, err
	}
	if err := validTarget(targetSkillLevel); err != nil {
		return path, err
	}
	if timeframeWeeks <= 0 {
		return path, apperrors.Invalid("timeframe_weeks", "must be positive, got %d", timeframeWeeks)
	}

	snap, err := s.load(ctx, userID, needCourses|needPeers)
	if err != nil {
		return path, err
	}
	profile := snap.profile(userID)
	recs, err := s.engines.Scoring.Recommend(ctx, profile, snap.courses, snap.peers, s.cfg.PathCandidates)
	if err != nil {
		return path, err
	}
	return s.engines.Planner.Plan(profile, recs, targetSkillLevel, timeframeWeeks, s.cfg.Now()), nil
}

func (s *recommendationService) MatchJobs(ctx context.Context, userID string, limit int) (out []learning.JobMatch, err error) {
	ctx, done := s.begin(ctx, "match_jobs", userID)
	defer func() { done(err) }()

	userID, err = validUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validLimit(limit); err != nil {
		return nil, err
	}

	snap, err := s.load(ctx, userID, needCourses|needJobs)
	if err != nil {
		return nil, err
	}
	profile := snap.profile(userID)
	return s.engines.Jobs.Match(profile, profile.Skills, snap.jobs, limit), nil
}

func (s *recommendationService) ForecastProgress(ctx context.Context, userID string, targetSkillLevel float64) (fc learning.ProgressForecast, err error) {
	ctx, done := s.begin(ctx, "forecast_progress", userID)
	defer func() { done(err) }()

	userID, err = validUserID(userID)
	if err != nil {
		return fc, err
	}
	if err := validTarget(targetSkillLevel); err != nil {
		return fc, err
	}

	snap, err := s.load(ctx, userID, needHistory)
	if err != nil {
		return fc, err
	}
	return s.engines.Forecast.Forecast(snap.profile(userID), snap.history, targetSkillLevel), nil
}

// begin opens the span for op and returns a completion func that records the outcome.
func (s *recommendationService) begin(ctx context.Context, op, userID string) (context.Context, func(error)) {
	ctx = ctxutil.Default(ctx)
	ctx, span := observability.StartSpan(ctx, "recommendation."+op, attribute.String("operation", op))
	start := time.Now()
	return ctx, func(err error) {
		dur := time.Since(start)
		outcome := outcomeOf(err)
		s.metrics.ObserveOperation(op, outcome, dur)
		fields := append([]interface{}{"op", op, "user_id", userID, "outcome", outcome, "duration_ms", dur.Milliseconds()}, ctxutil.LogFields(ctx)...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if outcome == "upstream_failure" {
				s.log.Warn("recommendation operation failed", append(fields, "error", err)...)
			} else {
				s.log.Debug("recommendation operation rejected", append(fields, "error", err)...)
			}
		} else {
			s.log.Debug("recommendation operation done", fields...)
		}
		span.End()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, apperrors.ErrUpstream):
		return "upstream_failure"
	default:
		return "error"
	}
}

func validUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apperrors.Invalid("user_id", "must not be empty")
	}
	return userID, nil
}

func validLimit(limit int) error {
	if limit <= 0 {
		return apperrors.Invalid("limit", "must be positive, got %d", limit)
	}
	return nil
}

func validTarget(target float64) error {
	if math.IsNaN(target) || target < 0 || target > 100 {
		return apperrors.Invalid("target_skill_level", "must be within [0,100], got %v", target)
	}
	return nil
}

type need uint8

const (
	needCourses need = 1 << iota
	needPeers
	needJobs
	needHistory
)

// snapshot is everything one operation read from the gateways.
type snapshot struct {
	stored    *learning.UserProfile
	completed []string
	scores    map[string]float64
	skills    []string
	courses   []learning.Course
	peers     []string
	jobs      []learning.JobListing
	history   []learning.ProgressPoint
}

// load issues the independent gateway reads concurrently. The first failure cancels
// the rest and is returned as an UpstreamError.
func (s *recommendationService) load(ctx context.Context, userID string, n need) (*snapshot, error) {
	snap := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	if p := s.gw.Profiles; p != nil {
		s.fetch(g, gctx, gateway.OpGetUserProfile, func(ctx context.Context) (err error) {
			snap.stored, err = p.GetUserProfile(ctx, userID)
			return err
		})
		s.fetch(g, gctx, gateway.OpGetCompletedCourses, func(ctx context.Context) (err error) {
			snap.completed, err = p.GetCompletedCourses(ctx, userID)
			return err
		})
		s.fetch(g, gctx, gateway.OpGetAssessmentScores, func(ctx context.Context) (err error) {
			snap.scores, err = p.GetAssessmentScores(ctx, userID)
			return err
		})
		s.fetch(g, gctx, gateway.OpGetUserSkills, func(ctx context.Context) (err error) {
			snap.skills, err = p.GetUserSkills(ctx, userID)
			return err
		})
	}
	if c := s.gw.Catalog; c != nil {
		if n&needCourses != 0 {
			s.fetch(g, gctx, gateway.OpGetAllCourses, func(ctx context.Context) (err error) {
				snap.courses, err = c.GetAllCourses(ctx)
				return err
			})
		}
		if n&needJobs != 0 {
			s.fetch(g, gctx, gateway.OpGetJobListings, func(ctx context.Context) (err error) {
				snap.jobs, err = c.GetJobListings(ctx, true)
				return err
			})
		}
	}
	if p := s.gw.Peers; p != nil && n&needPeers != 0 {
		s.fetch(g, gctx, gateway.OpFindSimilarUsers, func(ctx context.Context) (err error) {
			snap.peers, err = p.FindSimilarUsers(ctx, userID, s.cfg.PeerLimit)
			return err
		})
	}
	if h := s.gw.History; h != nil && n&needHistory != 0 {
		s.fetch(g, gctx, gateway.OpGetHistoricalProgress, func(ctx context.Context) (err error) {
			snap.history, err = h.GetHistoricalProgress(ctx, userID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap.peers = withoutID(snap.peers, userID)
	return snap, nil
}

func (s *recommendationService) fetch(g *errgroup.Group, ctx context.Context, op string, fn func(context.Context) error) {
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				s.metrics.IncGatewayError(op)
			}
			return apperrors.Upstream(op, err)
		}
		return nil
	})
}

// profile merges the stored profile with the per-table reads. Skills taught by completed
// catalog courses count as acquired.
func (snap *snapshot) profile(userID string) learning.UserProfile {
	p := snap.stored.WithDefaults(userID)
	p.CompletedCourses = append(p.CompletedCourses, snap.completed...)
	for topic, score := range snap.scores {
		p.AssessmentScores[topic] = score
	}
	p.Skills = append(p.Skills, snap.skills...)
	if len(p.CompletedCourses) > 0 {
		done := make(map[string]struct{}, len(p.CompletedCourses))
		for _, id := range p.CompletedCourses {
			done[id] = struct{}{}
		}
		for _, c := range snap.courses {
			if _, ok := done[c.ID]; ok {
				p.Skills = append(p.Skills, c.Skills...)
			}
		}
	}
	return p.WithDefaults(userID)
}

func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != "" && v != id {
			out = append(out, v)
		}
	}
	return out
}
