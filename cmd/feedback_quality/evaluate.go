package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/feedback-quality/internal/analysis"
	"github.com/jonathan/feedback-quality/internal/assessment"
	"github.com/jonathan/feedback-quality/internal/observability"
	"github.com/jonathan/feedback-quality/internal/schemas"
	"github.com/jonathan/feedback-quality/internal/types"
)

var (
	evalFile     string
	evalNoAI     bool
	evalParallel int
	evalUseDB    bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate response sets from a JSON file",
	Long: `Evaluate one response set, or a JSON array of them, and print the results.

Arrays are evaluated concurrently (--parallel) and printed in input order. Without
--verbose the output is JSON: an object for a single set, an array otherwise.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalFile, "file", "f", "", "Path to the response set JSON (use - for stdin)")
	evaluateCmd.Flags().BoolVar(&evalNoAI, "no-ai", false, "Skip the model and use rule-based evaluation only")
	evaluateCmd.Flags().IntVarP(&evalParallel, "parallel", "p", 4, "Maximum sets evaluated at once")
	evaluateCmd.Flags().BoolVar(&evalUseDB, "use-db", false, "Resolve campaign settings from DATABASE_URL")
	_ = evaluateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(evaluateCmd)
}

// evaluationInput is one response set plus an optional campaign AI override.
type evaluationInput struct {
	types.ResponseSet
	CampaignAIEnabled *bool `json:"campaign_ai_enabled,omitempty"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd.InOrStdin(), evalFile)
	if err != nil {
		return err
	}

	inputs, single, err := parseInputs(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	e, err := newEngine(ctx, cfg, evalUseDB)
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := evaluateAll(ctx, e.service, inputs, evalNoAI, evalParallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		printVerbose(out, inputs, results)
		return nil
	}
	return writeJSON(out, results, single)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// parseInputs accepts one response set or an array of them. Every set is
// checked against the JSON schema and struct validation before any is evaluated.
func parseInputs(data []byte) ([]*evaluationInput, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("input is empty")
	}

	single := trimmed[0] != '['
	var docs []json.RawMessage
	if single {
		docs = []json.RawMessage{trimmed}
	} else if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, false, fmt.Errorf("failed to parse input array: %w", err)
	}
	if len(docs) == 0 {
		return nil, false, fmt.Errorf("input array is empty")
	}

	inputs := make([]*evaluationInput, len(docs))
	for i, doc := range docs {
		if err := schemas.ValidateResponseSet(doc); err != nil {
			return nil, false, fmt.Errorf("response set %d: %w", i, err)
		}
		var in evaluationInput
		if err := json.Unmarshal(doc, &in); err != nil {
			return nil, false, fmt.Errorf("response set %d: %w", i, err)
		}
		if err := in.ResponseSet.Validate(); err != nil {
			return nil, false, fmt.Errorf("response set %d: %w", i, err)
		}
		inputs[i] = &in
	}
	return inputs, single, nil
}

// evaluateAll runs at most parallel evaluations at once. Results keep input order.
func evaluateAll(ctx context.Context, service *assessment.Service, inputs []*evaluationInput, noAI bool, parallel int) ([]*types.EvaluationResult, error) {
	if parallel < 1 {
		parallel = 1
	}
	disabled := false

	results := make([]*types.EvaluationResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			aiEnabled := in.CampaignAIEnabled
			if noAI {
				aiEnabled = &disabled
			}
			results[i] = service.Evaluate(ctx, &in.ResponseSet, aiEnabled)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printVerbose(out io.Writer, inputs []*evaluationInput, results []*types.EvaluationResult) {
	printer := observability.NewPrinter(out)
	analyzer := analysis.NewDefaultAnalyzer()
	for i, in := range inputs {
		printer.PrintResponseSet(&in.ResponseSet)
		printer.PrintAnalysisReport(analyzer.Analyze(&in.ResponseSet))
		printer.PrintEvaluation(results[i])
		if i < len(inputs)-1 {
			fmt.Fprintln(out) //nolint:errcheck // writing to stdout; errors are not recoverable
		}
	}
}

func writeJSON(out io.Writer, results []*types.EvaluationResult, single bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if single {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
