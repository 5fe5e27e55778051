package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// BreakerSettings configures one circuit breaker per gateway.
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval resets closed-state counts; zero never resets.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// ConsecutiveFailures trips the breaker regardless of ratio.
	ConsecutiveFailures uint32
	MinRequests         uint32
	FailureRatio        float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		MinRequests:         10,
		FailureRatio:        0.6,
	}
}

type breaker struct {
	cb      *gobreaker.CircuitBreaker[any]
	name    string
	metrics *observability.Metrics
	log     *logger.Logger
}

func newBreaker(name string, s BreakerSettings, metrics *observability.Metrics, log *logger.Logger) *breaker {
	metrics.SetBreakerState(name, 0)
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if s.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= s.ConsecutiveFailures {
				return true
			}
			if s.MinRequests == 0 || counts.Requests < s.MinRequests || s.FailureRatio <= 0 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.SetBreakerState(name, stateToFloat(to))
		},
		// a caller giving up is not an upstream fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &breaker{cb: cb, name: name, metrics: metrics, log: log}
}

func (b *breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		b.metrics.IncBreakerRequest(b.name, "success")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		b.metrics.IncBreakerRequest(b.name, "rejected")
	default:
		b.metrics.IncBreakerRequest(b.name, "failure")
	}
	return result, err
}

func (b *breaker) State() gobreaker.State {
	return b.cb.State()
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// WithBreakers decorates every gateway with its own circuit breaker. Nil gateways stay nil.
func WithBreakers(gw Gateways, s BreakerSettings, metrics *observability.Metrics, baseLog *logger.Logger) Gateways {
	log := baseLog.With("gateway", "Breaker")
	out := Gateways{}
	if gw.Profiles != nil {
		out.Profiles = &breakerProfiles{next: gw.Profiles, b: newBreaker("profiles", s, metrics, log)}
	}
	if gw.Catalog != nil {
		out.Catalog = &breakerCatalog{next: gw.Catalog, b: newBreaker("catalog", s, metrics, log)}
	}
	if gw.Peers != nil {
		out.Peers = &breakerPeers{next: gw.Peers, b: newBreaker("peers", s, metrics, log)}
	}
	if gw.History != nil {
		out.History = &breakerHistory{next: gw.History, b: newBreaker("history", s, metrics, log)}
	}
	return out
}

type breakerProfiles struct {
	next ProfileGateway
	b    *breaker
}

func (g *breakerProfiles) GetUserProfile(ctx context.Context, userID string) (*learning.UserProfile, error) {
	return castResult[*learning.UserProfile](g.b.execute(func() (any, error) {
		return g.next.GetUserProfile(ctx, userID)
	}))
}

func (g *breakerProfiles) GetCompletedCourses(ctx context.Context, userID string) ([]string, error) {
	return castResult[[]string](g.b.execute(func() (any, error) {
		return g.next.GetCompletedCourses(ctx, userID)
	}))
}

func (g *breakerProfiles) GetAssessmentScores(ctx context.Context, userID string) (map[string]float64, error) {
	return castResult[map[string]float64](g.b.execute(func() (any, error) {
		return g.next.GetAssessmentScores(ctx, userID)
	}))
}

func (g *breakerProfiles) GetUserSkills(ctx context.Context, userID string) ([]string, error) {
	return castResult[[]string](g.b.execute(func() (any, error) {
		return g.next.GetUserSkills(ctx, userID)
	}))
}

type breakerCatalog struct {
	next CatalogGateway
	b    *breaker
}

func (g *breakerCatalog) GetAllCourses(ctx context.Context) ([]learning.Course, error) {
	return castResult[[]learning.Course](g.b.execute(func() (any, error) {
		return g.next.GetAllCourses(ctx)
	}))
}

func (g *breakerCatalog) GetJobListings(ctx context.Context, activeOnly bool) ([]learning.JobListing, error) {
	return castResult[[]learning.JobListing](g.b.execute(func() (any, error) {
		return g.next.GetJobListings(ctx, activeOnly)
	}))
}

type breakerPeers struct {
	next PeerSimilarityGateway
	b    *breaker
}

func (g *breakerPeers) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	return castResult[[]string](g.b.execute(func() (any, error) {
		return g.next.FindSimilarUsers(ctx, userID, limit)
	}))
}

func (g *breakerPeers) GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	return castResult[[]learning.PeerOutcome](g.b.execute(func() (any, error) {
		return g.next.GetPeerOutcomes(ctx, courseID, peerIDs)
	}))
}

type breakerHistory struct {
	next HistoryGateway
	b    *breaker
}

func (g *breakerHistory) GetHistoricalProgress(ctx context.Context, userID string) ([]learning.ProgressPoint, error) {
	return castResult[[]learning.ProgressPoint](g.b.execute(func() (any, error) {
		return g.next.GetHistoricalProgress(ctx, userID)
	}))
}
