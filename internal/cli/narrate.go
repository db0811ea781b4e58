package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bjwhitworth/cricket-data/internal/cricsheet"
	"github.com/bjwhitworth/cricket-data/internal/llm"
	"github.com/bjwhitworth/cricket-data/internal/model"
	"github.com/spf13/cobra"
)

var (
	llmProvider    string
	llmModel       string
	llmMaxTokens   int
	narrateOut     string
	narrateTimeout time.Duration
	promptOnly     bool
)

// narrateCmd represents the narrate command
var narrateCmd = &cobra.Command{
	Use:   "narrate <match.json>",
	Short: "Generate a natural-language narrative for one match",
	Long: `narrate builds a compact summary of a Cricsheet match file (innings
totals, standout batting and bowling, fall of wickets) and asks an LLM
provider for a short briefing-style narrative.

Example:
  cricket-data narrate data/raw/all_json/1384439.json --llm-provider openai
  cricket-data narrate 1384439.json --llm-provider ollama --llm-model llama3
  cricket-data narrate 1384439.json --prompt-only`,
	Args: cobra.ExactArgs(1),
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)

	defaults := model.DefaultConfig()
	narrateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	narrateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	narrateCmd.Flags().IntVar(&llmMaxTokens, "max-tokens", defaults.LLM.MaxTokens, "max response tokens")
	narrateCmd.Flags().StringVar(&narrateOut, "out", "", "write the narrative to a file instead of stdout")
	narrateCmd.Flags().DurationVar(&narrateTimeout, "timeout", 2*time.Minute, "overall timeout")
	narrateCmd.Flags().BoolVar(&promptOnly, "prompt-only", false, "print the generated prompt and exit (no API call)")
}

// llmConfigFromFlags assembles provider configuration, pulling API keys from
// the environment.
func llmConfigFromFlags(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.MaxTokens = llmMaxTokens

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

func runNarrate(cmd *cobra.Command, args []string) error {
	matchPath := args[0]

	summary, err := cricsheet.ParseMatch(matchPath)
	if err != nil {
		return fmt.Errorf("parse match: %w", err)
	}

	if promptOnly {
		fmt.Println(llm.BuildMatchPrompt(*summary))
		return nil
	}

	cfg := model.DefaultConfig()
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

	ctx, cancel := context.WithTimeout(context.Background(), narrateTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Narrating %s via %s\n", summary.MatchID, provider.Name())
	}

	resp, err := provider.Narrate(ctx, llm.NarrateRequest{Summary: *summary, MaxTokens: llmMaxTokens})
	if err != nil {
		return fmt.Errorf("generate narrative: %w", err)
	}

	if narrateOut != "" {
		if err := os.WriteFile(narrateOut, []byte(resp.Narrative+"\n"), 0644); err != nil {
			return fmt.Errorf("write narrative: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote narrative for %s to %s (%d tokens)\n", summary.MatchID, narrateOut, resp.TokensUsed)
		return nil
	}

	fmt.Printf("MATCH NARRATIVE: %s\n\n", summary.MatchID)
	fmt.Println(resp.Narrative)
	return nil
}
