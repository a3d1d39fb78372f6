package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"agentgauge/pkg/reporter"
	"agentgauge/pkg/store"
)

func newHistoryCommand() *cobra.Command {
	var (
		storePath    string
		limit        int
		evaluationID string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or inspect stored evaluation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			storeResolved := resolveString(storePath, appConfig.StorePath)
			if storeResolved == "" {
				return errors.New("store path is required")
			}

			history, err := store.Open(storeResolved)
			if err != nil {
				return err
			}
			defer history.Close()

			if evaluationID != "" {
				result, err := history.Get(evaluationID)
				if err != nil {
					return err
				}
				rep, err := reporter.ForFormat(format, os.Stdout)
				if err != nil {
					return err
				}
				return rep.Report(result)
			}

			summaries, err := history.List(limit)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"Evaluation", "Agent", "Timestamp", "Score", "Passed", "Cases"})
			for _, summary := range summaries {
				table.Append([]string{
					summary.EvaluationID,
					summary.AgentID,
					summary.Timestamp,
					fmt.Sprintf("%.3f", summary.OverallScore),
					fmt.Sprintf("%t", summary.Passed),
					fmt.Sprintf("%d", summary.TestCasesCount),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "sqlite database with evaluation history")
	cmd.Flags().IntVar(&limit, "limit", 20, "max rows to list (0 = all)")
	cmd.Flags().StringVar(&evaluationID, "id", "", "show one evaluation in full")
	cmd.Flags().StringVar(&format, "format", reporter.FormatTerminal, "format for --id output")

	return cmd
}
