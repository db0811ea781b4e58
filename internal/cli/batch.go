package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bjwhitworth/cricket-data/internal/llm"
	"github.com/bjwhitworth/cricket-data/internal/model"
	"github.com/bjwhitworth/cricket-data/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// llmProvider, llmModel and llmMaxTokens are defined in narrate.go and
	// shared here.
)

// batchNarrateCmd represents the batch-narrate command
var batchNarrateCmd = &cobra.Command{
	Use:   "batch-narrate <dir|file-list>",
	Short: "Generate narratives for many match files in parallel",
	Long: `batch-narrate runs narrate over a whole directory of Cricsheet match
files, or over a newline-separated list of paths. Files are processed by a
worker pool and calls against the provider API are rate limited.

One .md file per match is written into the output directory.

Example:
  cricket-data batch-narrate data/raw/all_json --llm-provider openai
  cricket-data batch-narrate matches.txt --concurrency 4 --output-dir ./narratives`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchNarrate,
}

func init() {
	rootCmd.AddCommand(batchNarrateCmd)

	defaults := model.DefaultConfig()
	batchNarrateCmd.Flags().IntVar(&concurrency, "concurrency", defaults.Concurrency.Workers, "number of concurrent workers")
	batchNarrateCmd.Flags().StringVar(&outputDir, "output-dir", "./narratives", "output directory for narratives")
	batchNarrateCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	batchNarrateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchNarrateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	batchNarrateCmd.Flags().IntVar(&llmMaxTokens, "max-tokens", defaults.LLM.MaxTokens, "max response tokens per match")
}

func runBatchNarrate(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Concurrency.Workers = concurrency
	if err := llmConfigFromFlags(cfg); err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured")
	}

	paths, err := worker.CollectMatchFiles(input)
	if err != nil {
		return fmt.Errorf("collect match files: %w", err)
	}
	if len(paths) == 0 {
		fmt.Println("No match files to narrate.")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Narrating %d match files with %d workers...\n", len(paths), concurrency)

	batch := worker.NewBatchNarrator(provider, concurrency,
		cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	results := batch.Process(ctx, paths)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, result.MatchID+".md")
		if err := os.WriteFile(outPath, []byte(result.Narrative+"\n"), 0644); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write narrative: %v\n", result.Path, err)
			continue
		}

		successCount++
		if verbose {
			fmt.Fprintf(os.Stderr, "ok   %s -> %s\n", result.MatchID, outPath)
		}
	}

	fmt.Printf("Batch narration summary\n")
	fmt.Printf("- total: %d\n", len(results))
	fmt.Printf("- success: %d\n", successCount)
	fmt.Printf("- failures: %d\n", failureCount)
	fmt.Printf("- output: %s\n", outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d narrations failed", failureCount, len(results))
	}
	return nil
}
