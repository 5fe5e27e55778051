// Command recsysctl runs the recommendation engine against the configured stores
// and prints results as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-recommender/internal/app"
)

var (
	timeout time.Duration
	compact bool
)

var rootCmd = &cobra.Command{
	Use:   "recsysctl",
	Short: "Operate the learner recommendation engine",
	Long: `recsysctl loads configuration from the environment (and RECOMMENDER_CONFIG_FILE),
connects to the same stores as the server and runs one engine operation.

Available subcommands:
  recommend  - Ranked course recommendations for a learner
  path       - Learning path toward a target skill level
  jobs       - Job listings ranked by skill match
  forecast   - Weeks until a target skill level
  sync-graph - Mirror enrollments into the Neo4j co-enrollment graph`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().BoolVar(&compact, "compact", false, "Print single-line JSON")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(syncGraphCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp builds the application, runs fn under the command timeout, and closes it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
