package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-recommender/internal/app"
	"github.com/yungbote/neurobridge-recommender/internal/data/graph"
)

var syncBatch int

var syncGraphCmd = &cobra.Command{
	Use:   "sync-graph",
	Short: "Mirror enrollments into the Neo4j co-enrollment graph",
	Long: `Pages through course_enrollments and upserts each row as
(:Learner)-[:ENROLLED_IN {progress, rating}]->(:Course). Requires NEO4J_URI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncBatch <= 0 {
			return fmt.Errorf("--batch must be positive, got %d", syncBatch)
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if a.Clients.Neo4j == nil {
				return fmt.Errorf("NEO4J_URI is not configured")
			}
			var after int64
			total := 0
			for {
				rows, err := a.Repos.Enrollments.ListAfter(ctx, nil, after, syncBatch)
				if err != nil {
					return fmt.Errorf("list enrollments after %d: %w", after, err)
				}
				if len(rows) == 0 {
					break
				}
				n, err := graph.UpsertEnrollments(ctx, a.Clients.Neo4j, a.Log, rows)
				if err != nil {
					return fmt.Errorf("upsert enrollments: %w", err)
				}
				total += n
				after = rows[len(rows)-1].ID
				a.Log.Info("synced enrollment batch", "rows", n, "last_id", after)
			}
			return printJSON(cmd.OutOrStdout(), map[string]int{"synced": total})
		})
	},
}

func init() {
	syncGraphCmd.Flags().IntVar(&syncBatch, "batch", 500, "Rows per upsert batch")
}
