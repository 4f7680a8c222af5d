package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fadilmartias/skillmatch/internal/config"
	"github.com/fadilmartias/skillmatch/internal/database"
	"github.com/fadilmartias/skillmatch/internal/logger"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/repository"
	"github.com/fadilmartias/skillmatch/internal/service"
	"github.com/fadilmartias/skillmatch/internal/usecase"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var projectCmd = &cobra.Command{
	Use:   "project <id>",
	Short: "Rank freelancers for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatch(cmd, args[0], func(ctx context.Context, uc *usecase.MatchingUsecase, id uuid.UUID, p usecase.MatchParams) (any, error) {
			return uc.MatchProject(ctx, id, p)
		})
	},
}

var freelancerCmd = &cobra.Command{
	Use:   "freelancer <id>",
	Short: "Rank open projects for a freelancer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatch(cmd, args[0], func(ctx context.Context, uc *usecase.MatchingUsecase, id uuid.UUID, p usecase.MatchParams) (any, error) {
			return uc.MatchFreelancer(ctx, id, p)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{projectCmd, freelancerCmd} {
		c.Flags().StringP("weights", "w", "", "similarity,experience,rating weights, e.g. 2,1,1")
		c.Flags().IntP("top-n", "n", 0, "number of results (1-100, default from MATCH_TOP_N)")
		c.Flags().Bool("dry-run", false, "rank without saving matches")
		rootCmd.AddCommand(c)
	}
}

type matchFunc func(ctx context.Context, uc *usecase.MatchingUsecase, id uuid.UUID, p usecase.MatchParams) (any, error)

func runMatch(cmd *cobra.Command, rawID string, match matchFunc) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", rawID, err)
	}

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zl.Sync()

	params := matchParams(cmd, zl)

	appConfig := config.LoadAppConfig()
	db, err := database.Open(config.LoadDBConfig(), appConfig)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("timeout"))
	defer cancel()

	mc := config.LoadMatchingConfig()
	scorer, err := service.NewScorer(ctx, mc, config.LoadGeminiConfig(), zl)
	if err != nil {
		return err
	}
	engine := matching.NewEngine(scorer, matching.Config{
		Weights:     &mc.Weights,
		TopN:        mc.TopN,
		MaxFeatures: mc.MaxFeatures,
	})
	uc := usecase.NewMatchingUsecase(
		repository.NewProjectRepository(db),
		repository.NewFreelancerRepository(db),
		repository.NewMatchRepository(db),
		engine,
		zl,
	)

	zl.Debug("matching", zap.String("id", id.String()), zap.Bool("dry_run", params.DryRun), zap.Int("top_n", params.Options.TopN))
	res, err := match(ctx, uc, id, params)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// matchParams reads the ranking flags. A malformed --weights is logged and
// dropped so the configured weights apply, as they do for the HTTP API.
func matchParams(cmd *cobra.Command, zl *zap.Logger) usecase.MatchParams {
	var p usecase.MatchParams

	raw, _ := cmd.Flags().GetString("weights")
	if raw != "" {
		w, err := parseWeights(raw)
		if err != nil {
			zl.Warn("ignoring --weights, using configured weights", zap.String("weights", raw), zap.Error(err))
		} else {
			p.Options.Weights = &w
		}
	}
	if cmd.Flags().Changed("top-n") {
		n, _ := cmd.Flags().GetInt("top-n")
		p.Options.TopN = matching.ClampTopN(n)
	}
	p.DryRun, _ = cmd.Flags().GetBool("dry-run")
	return p
}
