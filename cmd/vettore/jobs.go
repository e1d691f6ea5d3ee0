package vettore

import (
	"fmt"
	"time"

	"github.com/soundprediction/vettore/pkg/checkpoint"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List pending bulk embedding jobs",
	Long: `List the checkpoints of bulk embedding jobs that have not completed.

A pending job can be resumed by re-running 'vettore embed' with the same
input file and job ID. Use --clean to remove stale checkpoints.`,
	RunE: runJobs,
}

var (
	jobsCheckpointDir string
	jobsClean         bool
	jobsMaxAge        time.Duration
	jobsVerbose       bool
)

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringVar(&jobsCheckpointDir, "checkpoint-dir", "", "Directory for job checkpoints")
	jobsCmd.Flags().BoolVar(&jobsClean, "clean", false, "Remove checkpoints older than --max-age")
	jobsCmd.Flags().DurationVar(&jobsMaxAge, "max-age", 7*24*time.Hour, "Age threshold for --clean")
	jobsCmd.Flags().BoolVarP(&jobsVerbose, "verbose", "v", false, "Show full checkpoint details")
}

func runJobs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	manager, err := checkpoint.NewCheckpointManager(jobsCheckpointDir)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}

	if jobsClean {
		removed, err := manager.CleanOld(ctx, jobsMaxAge)
		if err != nil {
			return fmt.Errorf("failed to clean checkpoints: %w", err)
		}
		fmt.Printf("Removed %d checkpoint(s) older than %s\n", removed, jobsMaxAge)
	}

	checkpoints, err := manager.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list checkpoints: %w", err)
	}

	if len(checkpoints) == 0 {
		fmt.Println("No pending jobs")
		return nil
	}

	for _, ckpt := range checkpoints {
		if jobsVerbose {
			fmt.Println(ckpt.Summary())
			continue
		}

		line := fmt.Sprintf("%s  %s  model=%s", ckpt.JobID, ckpt.GetProgress(), ckpt.Model)
		if ckpt.LastError != "" {
			line += fmt.Sprintf("  last_error=%q", ckpt.LastError)
		}
		fmt.Println(line)
	}

	return nil
}
