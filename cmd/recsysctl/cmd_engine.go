package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-recommender/internal/app"
	"github.com/yungbote/neurobridge-recommender/internal/services"
)

var (
	recommendLimit int
	jobsLimit      int
	pathTarget     float64
	pathWeeks      int
	forecastTarget float64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <learner-id>",
	Short: "Ranked course recommendations for a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			recs, err := a.Services.Recommendation.GenerateRecommendations(ctx, args[0], recommendLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recs)
		})
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <learner-id>",
	Short: "Learning path toward a target skill level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			path, err := a.Services.Recommendation.GenerateLearningPath(ctx, args[0], pathTarget, pathWeeks)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), path)
		})
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs <learner-id>",
	Short: "Job listings ranked by skill match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			matches, err := a.Services.Recommendation.MatchJobs(ctx, args[0], jobsLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matches)
		})
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast <learner-id>",
	Short: "Weeks until a target skill level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			fc, err := a.Services.Recommendation.ForecastProgress(ctx, args[0], forecastTarget)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fc)
		})
	},
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", services.DefaultRecommendationLimit, "Maximum recommendations")
	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "n", services.DefaultJobMatchLimit, "Maximum job matches")

	pathCmd.Flags().Float64Var(&pathTarget, "target", 0, "Target skill level (0-100)")
	pathCmd.Flags().IntVar(&pathWeeks, "weeks", 0, "Timeframe in weeks")
	_ = pathCmd.MarkFlagRequired("target")
	_ = pathCmd.MarkFlagRequired("weeks")

	forecastCmd.Flags().Float64Var(&forecastTarget, "target", 0, "Target skill level (0-100)")
	_ = forecastCmd.MarkFlagRequired("target")
}
