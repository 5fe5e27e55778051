package gateway

import (
	"context"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

// ProfileGateway reads one learner's state. Absent data comes back as nil or empty,
// never as an error.
type ProfileGateway interface {
	// GetUserProfile returns nil when the learner has no stored profile.
	GetUserProfile(ctx context.Context, userID string) (*learning.UserProfile, error)
	GetCompletedCourses(ctx context.Context, userID string) ([]string, error)
	GetAssessmentScores(ctx context.Context, userID string) (map[string]float64, error)
	GetUserSkills(ctx context.Context, userID string) ([]string, error)
}

type CatalogGateway interface {
	GetAllCourses(ctx context.Context) ([]learning.Course, error)
	GetJobListings(ctx context.Context, activeOnly bool) ([]learning.JobListing, error)
}

// PeerSimilarityGateway finds learners similar to a subject and reports how they did.
type PeerSimilarityGateway interface {
	FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error)
	GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error)
}

type HistoryGateway interface {
	GetHistoricalProgress(ctx context.Context, userID string) ([]learning.ProgressPoint, error)
}

// Gateways is everything the recommendation service reads from.
type Gateways struct {
	Profiles ProfileGateway
	Catalog  CatalogGateway
	Peers    PeerSimilarityGateway
	History  HistoryGateway
}

// Operation names, used for error wrapping, metrics and breaker labels.
const (
	OpGetUserProfile        = "get_user_profile"
	OpGetCompletedCourses   = "get_completed_courses"
	OpGetAssessmentScores   = "get_assessment_scores"
	OpGetUserSkills         = "get_user_skills"
	OpGetAllCourses         = "get_all_courses"
	OpGetJobListings        = "get_job_listings"
	OpFindSimilarUsers      = "find_similar_users"
	OpGetPeerOutcomes       = "get_peer_outcomes"
	OpGetHistoricalProgress = "get_historical_progress"
)
