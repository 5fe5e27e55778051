package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-recommender/internal/data/repos"
	"github.com/yungbote/neurobridge-recommender/internal/data/repos/testutil"
	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

func TestStoreProfileGateway(t *testing.T) {
	db := testutil.SQLite(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	store := NewStore(repos.NewSet(db, log), log)

	testutil.SeedProfile(t, ctx, db, "u1", 30, "slow", "AI")
	testutil.SeedCourse(t, ctx, db, "c1", "beginner", []string{"AI"}, []string{"python"}, nil)
	testutil.SeedCourse(t, ctx, db, "c2", "intermediate", []string{"AI"}, []string{"numpy"}, nil)
	testutil.SeedEnrollment(t, ctx, db, "u1", "c1", 100, testutil.PtrFloat(5))
	testutil.SeedEnrollment(t, ctx, db, "u1", "c2", 40, nil)
	testutil.SeedAssessment(t, ctx, db, "u1", "AI", 60)
	testutil.SeedAssessment(t, ctx, db, "u1", "AI", 80)
	testutil.SeedSkill(t, ctx, db, "u1", "sql")

	p, err := store.GetUserProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 30.0, p.CurrentSkillLevel)
	assert.Equal(t, learning.LearningPace("slow"), p.LearningPace)

	missing, err := store.GetUserProfile(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	completed, err := store.GetCompletedCourses(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, completed)

	scores, err := store.GetAssessmentScores(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 70, scores["AI"], 1e-9)

	skills, err := store.GetUserSkills(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sql"}, skills)

	none, err := store.GetCompletedCourses(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreCatalogAndHistory(t *testing.T) {
	db := testutil.SQLite(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	store := NewStore(repos.NewSet(db, log), log)

	testutil.SeedCourse(t, ctx, db, "c2", "advanced", []string{"ML"}, []string{"pytorch"}, []string{"c1"})
	testutil.SeedCourse(t, ctx, db, "c1", "beginner", []string{"AI"}, []string{"python"}, nil)
	testutil.SeedJob(t, ctx, db, "j1", true, "python")
	testutil.SeedJob(t, ctx, db, "j2", false, "go")

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedProgress(t, ctx, db, "u1", t0.Add(14*24*time.Hour), 60)
	testutil.SeedProgress(t, ctx, db, "u1", t0, 50)

	courses, err := store.GetAllCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "c1", courses[0].ID)
	assert.Equal(t, []string{"c1"}, courses[1].Prerequisites)

	active, err := store.GetJobListings(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "j1", active[0].ID)

	all, err := store.GetJobListings(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	history, err := store.GetHistoricalProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 50.0, history[0].SkillLevel)
	assert.True(t, history[0].Timestamp.Before(history[1].Timestamp))
}

func TestEnrollmentPeers(t *testing.T) {
	db := testutil.SQLite(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	peers := NewEnrollmentPeers(repos.NewEnrollmentRepo(db, log), log)

	testutil.SeedEnrollment(t, ctx, db, "me", "c1", 100, nil)
	testutil.SeedEnrollment(t, ctx, db, "me", "c2", 50, nil)
	testutil.SeedEnrollment(t, ctx, db, "p1", "c1", 100, testutil.PtrFloat(4))
	testutil.SeedEnrollment(t, ctx, db, "p1", "c2", 80, nil)
	testutil.SeedEnrollment(t, ctx, db, "p2", "c1", 30, testutil.PtrFloat(9))
	testutil.SeedEnrollment(t, ctx, db, "p3", "c9", 100, nil)

	ids, err := peers.FindSimilarUsers(ctx, "me", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	ids, err = peers.FindSimilarUsers(ctx, "me", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	outcomes, err := peers.GetPeerOutcomes(ctx, "c1", []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	byUser := map[string]learning.PeerOutcome{}
	for _, o := range outcomes {
		byUser[o.UserID] = o
	}
	assert.Equal(t, learning.PeerOutcome{UserID: "p1", Progress: 100, Rating: 4}, byUser["p1"])
	// ratings above the 5-star scale are clamped
	assert.Equal(t, 5.0, byUser["p2"].Rating)

	empty, err := peers.GetPeerOutcomes(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOutcomeFromEnrollment(t *testing.T) {
	// unrated: rating 0, not omitted
	assert.Equal(t, learning.PeerOutcome{UserID: "u", Progress: 100, Rating: 0}, outcomeFromEnrollment("u", 140, nil))
	r := -2.0
	assert.Equal(t, learning.PeerOutcome{UserID: "u", Progress: 0, Rating: 0}, outcomeFromEnrollment("u", -5, &r))
}
