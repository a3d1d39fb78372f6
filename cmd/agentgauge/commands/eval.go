package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agentgauge/pkg/agent"
	"agentgauge/pkg/core"
	"agentgauge/pkg/dataset"
	"agentgauge/pkg/metrics"
	"agentgauge/pkg/reporter"
	"agentgauge/pkg/store"
)

func newEvalCommand() *cobra.Command {
	var (
		datasetPath string
		agentName   string
		agentID     string
		modelName   string
		workers     int
		timeout     time.Duration
		format      string
		outputPath  string
		storePath   string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a layered evaluation against an agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(datasetPath, appConfig.Dataset)
			if path == "" {
				return errors.New("dataset path is required")
			}
			agentResolved := resolveString(agentName, appConfig.Agent)
			if agentResolved == "" {
				agentResolved = "refund"
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = reporter.FormatTerminal
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			storeResolved := resolveString(storePath, appConfig.StorePath)
			agentIDResolved := resolveString(agentID, appConfig.AgentID)
			workerCount := resolveInt(workers, appConfig.Workers, 1)

			cases, err := dataset.Load(path)
			if err != nil {
				return err
			}

			target, err := buildAgent(agentResolved, modelName)
			if err != nil {
				return err
			}

			evaluator := core.NewEvaluator(target, agentIDResolved)
			evaluator.Workers = workerCount
			evaluator.Timeout = timeout
			evaluator.LoadTestCases(cases)
			suite, err := metrics.DefaultSuite()
			if err != nil {
				return err
			}
			if err := evaluator.AddMetrics(suite); err != nil {
				return err
			}

			logger.Info("starting evaluation",
				zap.String("agent", agentResolved),
				zap.Int("test_cases", len(cases)),
				zap.Int("workers", workerCount))

			result, err := evaluator.Evaluate(cmd.Context(), nil)
			if err != nil {
				return err
			}

			logger.Info("evaluation finished",
				zap.String("evaluation_id", result.EvaluationID),
				zap.Float64("overall_score", result.OverallScore),
				zap.Bool("passed", result.Passed))

			writer := os.Stdout
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := reporter.ForFormat(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(&result); err != nil {
				return err
			}

			if storeResolved != "" {
				history, err := store.Open(storeResolved)
				if err != nil {
					return err
				}
				defer history.Close()
				if err := history.Save(&result); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to dataset file")
	cmd.Flags().StringVar(&agentName, "agent", "", "agent under evaluation (refund, anthropic, openai, gemini)")
	cmd.Flags().StringVar(&agentID, "agent-id", "", "identifier recorded in the result")
	cmd.Flags().StringVar(&modelName, "model", "", "model name for LLM agents")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent test cases per metric")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-invocation timeout (0 = none)")
	cmd.Flags().StringVar(&format, "format", "", "output format (terminal, json, markdown)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&storePath, "store", "", "sqlite database for evaluation history")

	return cmd
}

func buildAgent(name, modelName string) (core.Agent, error) {
	switch name {
	case "refund":
		return agent.Refund{}, nil
	case "anthropic":
		target, err := agent.NewAnthropicFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Anthropic
		if cfg.Model != "" && modelName == "" {
			target.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			target.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			target.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			target.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		if cfg.MaxTokens > 0 {
			target.MaxTokens = cfg.MaxTokens
		}
		return target, nil
	case "openai":
		target, err := agent.NewOpenAIFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.OpenAI
		if cfg.Model != "" && modelName == "" {
			target.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			target.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			target.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			target.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return target, nil
	case "gemini":
		target, err := agent.NewGeminiFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Gemini
		if cfg.Model != "" && modelName == "" {
			target.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			target.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			target.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			target.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return target, nil
	default:
		return nil, fmt.Errorf("unknown agent: %s", name)
	}
}
