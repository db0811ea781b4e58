package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bjwhitworth/cricket-data/internal/llm"
	"github.com/bjwhitworth/cricket-data/internal/model"
	"github.com/bjwhitworth/cricket-data/internal/seeds"
	"github.com/spf13/cobra"
)

var (
	enrichInput      string
	enrichOutUpdates string
	enrichOutAliases string
	enrichMaxChars   int
	enrichTimeout    time.Duration
)

// enrichSeedsCmd represents the enrich-seeds command
var enrichSeedsCmd = &cobra.Command{
	Use:   "enrich-seeds",
	Short: "Ask an LLM for venue seed corrections and alias candidates",
	Long: `enrich-seeds sends the venue seed rows to an LLM provider and writes two
review files: per-row city/country suggestions, and alias-mapping candidate
rows grouping venue strings that likely name the same physical venue.

Nothing it produces feeds the reconciler directly. Candidate alias rows are
stamped review_status=candidate; only rows a reviewer promotes to approved
enter the curated set.

Large seeds are split into multiple provider calls so each prompt stays
under --max-input-chars.

Example:
  cricket-data enrich-seeds --llm-provider openai
  cricket-data enrich-seeds --input seeds/venue_country_mapping.csv --prompt-only`,
	Args: cobra.NoArgs,
	RunE: runEnrichSeeds,
}

func init() {
	rootCmd.AddCommand(enrichSeedsCmd)

	defaults := model.DefaultConfig()
	enrichSeedsCmd.Flags().StringVar(&enrichInput, "input", defaults.Seeds.CountrySeed, "venue seed CSV to enrich")
	enrichSeedsCmd.Flags().StringVar(&enrichOutUpdates, "output-updates", "seeds/venue_country_mapping_suggestions.csv", "output CSV for row-level city/country suggestions")
	enrichSeedsCmd.Flags().StringVar(&enrichOutAliases, "output-aliases", "seeds/venue_alias_mapping_candidates.csv", "output CSV for alias candidate rows")
	enrichSeedsCmd.Flags().IntVar(&enrichMaxChars, "max-input-chars", 50000, "max prompt size per provider call (0 = single call)")
	enrichSeedsCmd.Flags().DurationVar(&enrichTimeout, "timeout", 10*time.Minute, "overall timeout")

	enrichSeedsCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	enrichSeedsCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	enrichSeedsCmd.Flags().IntVar(&llmMaxTokens, "max-tokens", 8192, "max response tokens per call")
	enrichSeedsCmd.Flags().BoolVar(&promptOnly, "prompt-only", false, "print the generated prompt(s) and exit (no API call)")
}

func runEnrichSeeds(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	rows, err := seeds.LoadEnrichRows(enrichInput)
	if err != nil {
		return fmt.Errorf("load seed rows: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No seed rows to enrich.")
		return nil
	}

	chunks := llm.ChunkRows(rows, enrichMaxChars)

	if promptOnly {
		for i, chunk := range chunks {
			fmt.Fprintf(out, "### CHUNK %d/%d ###\n", i+1, len(chunks))
			fmt.Fprintln(out, llm.BuildEnrichPrompt(chunk))
		}
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

	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	updates := make(map[string]llm.RowUpdate)
	var groups []llm.AliasGroup

	for i, chunk := range chunks {
		if verbose {
			fmt.Fprintf(os.Stderr, "Enriching chunk %d/%d (%d rows) via %s\n",
				i+1, len(chunks), len(chunk), provider.Name())
		}
		resp, err := provider.Narrate(ctx, llm.NarrateRequest{
			Prompt:    llm.BuildEnrichPrompt(chunk),
			System:    llm.EnrichSystemPrompt,
			MaxTokens: llmMaxTokens,
		})
		if err != nil {
			return fmt.Errorf("enrich chunk %d/%d: %w", i+1, len(chunks), err)
		}
		result, err := llm.ParseEnrichResponse(resp.Narrative)
		if err != nil {
			return fmt.Errorf("parse chunk %d/%d: %w", i+1, len(chunks), err)
		}
		updates = collectRowUpdates(updates, result.RowUpdates, rows)
		groups = append(groups, result.AliasGroups...)
	}

	if err := seeds.WriteSuggestions(enrichOutUpdates, rows, updates); err != nil {
		return fmt.Errorf("write suggestions: %w", err)
	}
	aliasRows, err := seeds.WriteAliasCandidates(enrichOutAliases, groups)
	if err != nil {
		return fmt.Errorf("write alias candidates: %w", err)
	}

	fmt.Fprintln(out, "Seed enrichment summary")
	fmt.Fprintf(out, "- seed_rows: %d\n", len(rows))
	fmt.Fprintf(out, "- provider_calls: %d\n", len(chunks))
	fmt.Fprintf(out, "- row_suggestions: %d\n", countSuggestions(updates))
	fmt.Fprintf(out, "- alias_candidate_rows: %d\n", aliasRows)
	fmt.Fprintf(out, "Wrote %s and %s. Review candidates before promoting any to approved.\n",
		enrichOutUpdates, enrichOutAliases)
	return nil
}

// collectRowUpdates merges provider row updates into acc, resolving blank
// row IDs through a normalized (venue, city) lookup over the seed rows.
func collectRowUpdates(acc map[string]llm.RowUpdate, incoming []llm.RowUpdate, rows []llm.EnrichRow) map[string]llm.RowUpdate {
	if acc == nil {
		acc = make(map[string]llm.RowUpdate)
	}

	lookup := make(map[[2]string]string, len(rows))
	for _, row := range rows {
		lookup[[2]string{model.Normalize(row.Venue), model.Normalize(row.City)}] = row.RowID
	}

	for _, upd := range incoming {
		id := model.Clean(upd.RowID)
		if id == "" {
			id = lookup[[2]string{model.Normalize(upd.SourceVenue), model.Normalize(upd.SourceCity)}]
		}
		if id == "" {
			continue
		}
		acc[id] = upd
	}
	return acc
}

func countSuggestions(updates map[string]llm.RowUpdate) int {
	n := 0
	for _, upd := range updates {
		if model.Clean(upd.SuggestedCity) != "" || model.Clean(upd.SuggestedCountry) != "" {
			n++
		}
	}
	return n
}
