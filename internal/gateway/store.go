package gateway

import (
	"context"

	"github.com/yungbote/neurobridge-recommender/internal/data/repos"
	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// Store serves the profile, catalog and history gateways from the relational read models.
type Store struct {
	repos repos.Set
	log   *logger.Logger
}

func NewStore(set repos.Set, baseLog *logger.Logger) *Store {
	return &Store{repos: set, log: baseLog.With("gateway", "Store")}
}

func (s *Store) GetUserProfile(ctx context.Context, userID string) (*learning.UserProfile, error) {
	rec, err := s.repos.Profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return rec.ToDomain(), nil
}

func (s *Store) GetCompletedCourses(ctx context.Context, userID string) ([]string, error) {
	return s.repos.Enrollments.CompletedCourseIDs(ctx, nil, userID)
}

func (s *Store) GetAssessmentScores(ctx context.Context, userID string) (map[string]float64, error) {
	return s.repos.Assessments.AverageByCategory(ctx, nil, userID)
}

func (s *Store) GetUserSkills(ctx context.Context, userID string) ([]string, error) {
	return s.repos.Skills.ListSkillNames(ctx, nil, userID)
}

func (s *Store) GetAllCourses(ctx context.Context) ([]learning.Course, error) {
	rows, err := s.repos.Courses.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]learning.Course, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, r.ToDomain())
	}
	return out, nil
}

func (s *Store) GetJobListings(ctx context.Context, activeOnly bool) ([]learning.JobListing, error) {
	rows, err := s.repos.Jobs.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]learning.JobListing, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, r.ToDomain())
	}
	return out, nil
}

func (s *Store) GetHistoricalProgress(ctx context.Context, userID string) ([]learning.ProgressPoint, error) {
	rows, err := s.repos.Progress.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	out := make([]learning.ProgressPoint, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// EnrollmentPeers treats learners who share the most enrollments as similar.
type EnrollmentPeers struct {
	enrollments repos.EnrollmentRepo
	log         *logger.Logger
}

func NewEnrollmentPeers(enrollments repos.EnrollmentRepo, baseLog *logger.Logger) *EnrollmentPeers {
	return &EnrollmentPeers{enrollments: enrollments, log: baseLog.With("gateway", "EnrollmentPeers")}
}

func (p *EnrollmentPeers) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := p.enrollments.CoEnrolledUsers(ctx, nil, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.UserID)
	}
	return out, nil
}

func (p *EnrollmentPeers) GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	rows, err := p.enrollments.ListByCourseAndUsers(ctx, nil, courseID, peerIDs)
	if err != nil {
		return nil, err
	}
	out := make([]learning.PeerOutcome, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, outcomeFromEnrollment(r.UserID, r.Progress, r.Rating))
	}
	return out, nil
}

// An unrated enrollment reports rating 0, so peer success averages its progress with zero.
func outcomeFromEnrollment(userID string, progress float64, rating *float64) learning.PeerOutcome {
	o := learning.PeerOutcome{UserID: userID, Progress: learning.Clamp(progress, 0, 100)}
	if rating != nil {
		o.Rating = learning.Clamp(*rating, 0, 5)
	}
	return o
}
