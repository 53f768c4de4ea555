package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/athlete-load-api/internal/repository"
	"github.com/noah-isme/athlete-load-api/internal/service"
)

var (
	seedDays     int
	seedAthletes int
	seedValue    int64
	seedEnd      string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic wellness history in the developer namespace",
	Long: `Seed drives the regular check-in/check-out workflow with generated
answers, so every record passes the same validation as real submissions.
Records land in the developer namespace and never mix with standard data.

  $ wellnessctl seed                          # 28 days for the existing roster
  $ wellnessctl seed --athletes 12 --seed 42  # add 12 DEV squad athletes first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		end := time.Now().In(cfg.Wellness.Location())
		if seedEnd != "" {
			parsed, err := time.ParseInLocation("2006-01-02", seedEnd, cfg.Wellness.Location())
			if err != nil {
				return fmt.Errorf("--end must be YYYY-MM-DD: %w", err)
			}
			end = parsed
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		// Each generated day is stamped at the end of its session window.
		recordedAt := end
		referenceRepo := repository.NewReferenceRepository(conn)
		roster := service.NewReferenceService(referenceRepo, nil, cfg.Cache.ReferenceTTL, logr)
		workflow := service.NewWellnessService(service.WellnessServiceParams{
			Store:             repository.NewWellnessRepository(conn),
			Roster:            roster,
			Logger:            logr,
			Clock:             func() time.Time { return recordedAt },
			RehabStimulusName: cfg.Wellness.RehabStimulusName,
		})

		result, err := service.NewSeedService(referenceRepo, workflow, logr).Seed(cmd.Context(), service.SeedOptions{
			Days:     seedDays,
			Athletes: seedAthletes,
			Seed:     seedValue,
			End:      end,
			OnDay:    func(day time.Time) { recordedAt = day.Add(18 * time.Hour) },
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d athletes: %d check-ins, %d check-outs\n", result.Athletes, result.CheckIns, result.CheckOuts)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 28, "number of days of history to generate")
	seedCmd.Flags().IntVar(&seedAthletes, "athletes", 0, "synthetic athletes to create (0 uses the existing roster)")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (0 picks one)")
	seedCmd.Flags().StringVar(&seedEnd, "end", "", "last generated day, YYYY-MM-DD (defaults to today)")
	rootCmd.AddCommand(seedCmd)
}
