package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agentgauge/pkg/synthetic"
)

func newGenerateCommand() *cobra.Command {
	var (
		outputPath    string
		seed          int64
		standard      int
		hallucination int
		fairness      int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic refund dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return errors.New("output path is required")
			}

			generator := synthetic.NewRefundGenerator(seed)
			cases := generator.Dataset(standard, hallucination, fairness)
			if err := generator.Save(cases, outputPath); err != nil {
				return err
			}

			logger.Info("dataset generated",
				zap.String("path", outputPath),
				zap.Int("cases", len(cases)),
				zap.Int64("seed", seed))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "dataset file to write")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for deterministic generation")
	cmd.Flags().IntVar(&standard, "standard", 10, "number of standard cases")
	cmd.Flags().IntVar(&hallucination, "hallucination", 3, "number of hallucination probes")
	cmd.Flags().IntVar(&fairness, "fairness", 5, "number of fairness probes")

	return cmd
}
