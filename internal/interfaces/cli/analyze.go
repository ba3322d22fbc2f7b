package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/task"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		pollInterval time.Duration
		timeout      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "analyze <file.pdf>",
		Short: "Analyze a single PDF and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			svc := buildService(cfg, nil, logging.NewNopLogger())
			defer svc.Close()

			t, err := svc.Submit(args[0], data)
			if err != nil {
				return err
			}

			deadline := time.Now().Add(timeout)
			for {
				snap, err := svc.GetStatus(t.ID)
				if err != nil {
					return err
				}
				if snap.Status.IsTerminal() {
					if snap.Status == task.StatusFailed {
						return fmt.Errorf("analysis failed: %s", snap.Error)
					}
					break
				}
				if time.Now().After(deadline) {
					return fmt.Errorf("analysis did not finish within %s", timeout)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%-12s %3d%%  %s\n", snap.Status, snap.Progress, snap.Message)
				time.Sleep(pollInterval)
			}

			doc, err := svc.BuildReport(t.ID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 200*time.Millisecond, "status poll interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "maximum time to wait for the analysis")
	return cmd
}
