package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/config"
	"github.com/mo-shahab/go-pong-ai/sim"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play a headless bot-vs-bot match and print the result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env")
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		opts := sim.DefaultOptions(cfg.Game)

		points, _ := cmd.Flags().GetInt32("points")
		opts.PointsToWin = points
		opts.MaxTicks, _ = cmd.Flags().GetInt64("max-ticks")
		opts.Seed, _ = cmd.Flags().GetInt64("seed")

		if opts.LeftTuning, err = sideTuning(cmd, "left-tuning", cfg.Tuning); err != nil {
			return err
		}
		if opts.RightTuning, err = sideTuning(cmd, "right-tuning", cfg.Tuning); err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			prev := log.Writer()
			log.SetOutput(io.Discard)
			defer log.SetOutput(prev)
		}

		res, err := sim.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		winner := string(res.Winner)
		if winner == "" {
			winner = "none (tick limit)"
		}
		fmt.Fprintf(out, "winner: %s\n", winner)
		fmt.Fprintf(out, "score:  %d-%d\n", res.Scores.LeftScores, res.Scores.RightScores)
		fmt.Fprintf(out, "ticks:  %d\n", res.Ticks)
		fmt.Fprintf(out, "hits:   left %d, right %d\n", res.LeftHits, res.RightHits)
		fmt.Fprintf(out, "rally:  mean %.1f ticks, stddev %.1f\n", res.MeanRally, res.StdDevRally)
		return nil
	},
}

// sideTuning applies the overrides file named by flag, if any, on base.
func sideTuning(cmd *cobra.Command, flag string, base ai.Tuning) (ai.Tuning, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return base, nil
	}
	tc, err := config.LoadTuningConfig(path)
	if err != nil {
		return base, err
	}
	return tc.Apply(base)
}

func init() {
	simCmd.Flags().String("env", ".env", "dotenv file to load before reading the environment")
	simCmd.Flags().Int32("points", 11, "points needed to win")
	simCmd.Flags().Int64("max-ticks", 1_000_000, "stop after this many ticks, 0 for no limit")
	simCmd.Flags().Int64("seed", 1, "seed for serves and bounce noise")
	simCmd.Flags().String("left-tuning", "", "JSON tuning overrides for the left bot")
	simCmd.Flags().String("right-tuning", "", "JSON tuning overrides for the right bot")
	simCmd.Flags().Bool("verbose", false, "keep engine logging")
	rootCmd.AddCommand(simCmd)
}
