package graph

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/platform/neo4jdb"
)

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	if n, err := UpsertEnrollments(ctx, nil, nil, nil); err != nil || n != 0 {
		t.Fatalf("UpsertEnrollments(nil): %d %v", n, err)
	}
	ids, err := SimilarLearners(ctx, &neo4jdb.Client{}, "u1", 5)
	if err != nil || len(ids) != 0 {
		t.Fatalf("SimilarLearners without driver: %v %v", ids, err)
	}
	outcomes, err := PeerOutcomes(ctx, nil, "c1", []string{"p1"})
	if err != nil || len(outcomes) != 0 {
		t.Fatalf("PeerOutcomes(nil): %v %v", outcomes, err)
	}
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{float64(4.5), 4.5},
		{int64(3), 3},
		{nil, 0},
		{"7", 0},
	}
	for _, tc := range cases {
		if got := toFloat(tc.in); got != tc.want {
			t.Fatalf("toFloat(%v): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoEnrollmentGraphIntegration(t *testing.T) {
	uri := os.Getenv("TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TEST_NEO4J_URI not set")
	}
	ctx := context.Background()
	log := logger.NewNop()
	client, err := neo4jdb.New(neo4jdb.Config{
		URI:      uri,
		User:     os.Getenv("TEST_NEO4J_USER"),
		Password: os.Getenv("TEST_NEO4J_PASSWORD"),
	}, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	// unique ids keep runs independent on a shared database
	run := fmt.Sprintf("it-%d-", time.Now().UnixNano())
	rating := 4.0
	rows := []*types.CourseEnrollment{
		{UserID: run + "me", CourseID: run + "c1", Progress: 100},
		{UserID: run + "me", CourseID: run + "c2", Progress: 50},
		{UserID: run + "p1", CourseID: run + "c1", Progress: 100, Rating: &rating},
		{UserID: run + "p1", CourseID: run + "c2", Progress: 80},
		{UserID: run + "p2", CourseID: run + "c1", Progress: 30},
		{UserID: "", CourseID: run + "c1"},
	}
	n, err := UpsertEnrollments(ctx, client, log, rows)
	if err != nil {
		t.Fatalf("UpsertEnrollments: %v", err)
	}
	if n != 5 {
		t.Fatalf("upserted: got %d want 5", n)
	}

	ids, err := SimilarLearners(ctx, client, run+"me", 10)
	if err != nil {
		t.Fatalf("SimilarLearners: %v", err)
	}
	if len(ids) != 2 || ids[0] != run+"p1" || ids[1] != run+"p2" {
		t.Fatalf("similar: got %v", ids)
	}

	outcomes, err := PeerOutcomes(ctx, client, run+"c1", ids)
	if err != nil {
		t.Fatalf("PeerOutcomes: %v", err)
	}
	if len(outcomes) != 2 || outcomes[0].Rating != 4 || outcomes[1].Progress != 30 {
		t.Fatalf("outcomes: got %+v", outcomes)
	}
}
