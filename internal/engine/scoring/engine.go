package scoring

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	apperrors "github.com/yungbote/neurobridge-recommender/internal/pkg/errors"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

const DefaultConcurrency = 8

// PeerOutcomeSource returns how the given peers fared in one course.
type PeerOutcomeSource interface {
	GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error)
}

type Config struct {
	Weights     Weights
	Concurrency int
}

type Engine struct {
	signals     Aggregator
	outcomes    PeerOutcomeSource
	concurrency int
	metrics     *observability.Metrics
	log         *logger.Logger
}

func New(outcomes PeerOutcomeSource, cfg Config, baseLog *logger.Logger) *Engine {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	w := cfg.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	n := cfg.Concurrency
	if n <= 0 {
		n = DefaultConcurrency
	}
	return &Engine{
		signals:     NewAggregator(w),
		outcomes:    outcomes,
		concurrency: n,
		log:         baseLog.With("service", "ScoringEngine"),
	}
}

// WithMetrics counts failed peer outcome reads in the gateway error series.
func (e *Engine) WithMetrics(m *observability.Metrics) *Engine {
	e.metrics = m
	return e
}

// Score returns the 0..100 fit of one course for the learner.
func (e *Engine) Score(ctx context.Context, profile learning.UserProfile, course learning.Course, peerIDs []string) (float64, error) {
	peers, err := e.peerOutcomes(ctx, course.ID, peerIDs)
	if err != nil {
		return 0, err
	}
	total, _ := e.signals.Evaluate(Input{Learner: NewLearner(profile), Course: course, Peers: peers})
	return learning.Round(total, 2), nil
}

// Recommend scores every course the learner has not completed and returns the best
// limit of them, highest score first with ties broken by course id.
func (e *Engine) Recommend(ctx context.Context, profile learning.UserProfile, catalog []learning.Course, peerIDs []string, limit int) ([]learning.Recommendation, error) {
	if limit <= 0 {
		return []learning.Recommendation{}, nil
	}
	learner := NewLearner(profile)
	candidates := eligible(profile, catalog)
	out := make([]learning.Recommendation, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, course := range candidates {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := e.recommend(gctx, learner, course, peerIDs)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop can stop on cancellation before any goroutine observed it
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortRecommendations(out)
	if len(out) > limit {
		out = out[:limit]
	}
	e.log.Debug("scored catalog",
		"user_id", profile.ID,
		"candidates", len(candidates),
		"returned", len(out),
	)
	return out, nil
}

func (e *Engine) recommend(ctx context.Context, learner *Learner, course learning.Course, peerIDs []string) (learning.Recommendation, error) {
	peers, err := e.peerOutcomes(ctx, course.ID, peerIDs)
	if err != nil {
		return learning.Recommendation{}, err
	}
	in := Input{Learner: learner, Course: course, Peers: peers}
	total, parts := e.signals.Evaluate(in)
	score := learning.Round(total, 2)
	for k, v := range parts {
		parts[k] = learning.Round(v, 2)
	}
	p := learner.Profile
	gaps := learner.skills.Missing(course.Skills)
	return learning.Recommendation{
		CourseID:                course.ID,
		Title:                   course.Title,
		Score:                   score,
		Reasons:                 buildReasons(in, parts, gaps),
		EstimatedCompletionDays: course.CompletionDays(p.LearningPace, p.TimeCommitment),
		SkillGapFilled:          gaps,
		Confidence:              confidence(p, score),
		Signals:                 parts,
		Prerequisites:           append([]string(nil), course.Prerequisites...),
	}, nil
}

func (e *Engine) peerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	if len(peerIDs) == 0 || e.outcomes == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	peers, err := e.outcomes.GetPeerOutcomes(ctx, courseID, peerIDs)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.metrics.IncGatewayError(gateway.OpGetPeerOutcomes)
		}
		return nil, apperrors.Upstream(gateway.OpGetPeerOutcomes, err)
	}
	return peers, nil
}

// eligible drops completed courses, blank ids and repeated ids (first wins).
func eligible(profile learning.UserProfile, catalog []learning.Course) []learning.Course {
	completed := make(map[string]struct{}, len(profile.CompletedCourses))
	for _, id := range profile.CompletedCourses {
		completed[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(catalog))
	out := make([]learning.Course, 0, len(catalog))
	for _, c := range catalog {
		if c.ID == "" {
			continue
		}
		if _, done := completed[c.ID]; done {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SortRecommendations orders by score descending, then course id ascending.
func SortRecommendations(recs []learning.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].CourseID < recs[j].CourseID
	})
}
