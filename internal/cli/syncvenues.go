package cli

import (
	"fmt"

	"github.com/bjwhitworth/cricket-data/internal/model"
	"github.com/bjwhitworth/cricket-data/internal/registry"
	"github.com/bjwhitworth/cricket-data/internal/seeds"
	"github.com/spf13/cobra"
)

var (
	countrySeed  string
	aliasSeed    string
	masterSeed   string
	applyChanges bool
	previewLimit int
)

// syncVenuesCmd represents the sync-venues command
var syncVenuesCmd = &cobra.Command{
	Use:   "sync-venues",
	Short: "Reconcile the venue master registry against curated seed mappings",
	Long: `sync-venues merges the curated venue/country seed and the approved rows of
the alias seed into one candidate set, then reconciles the master registry
against it:

- Rows whose canonical triple already appears in the candidates are kept.
- Rows whose venue name maps to exactly one candidate take its city/country,
  venue ID preserved.
- Rows whose venue name maps to several candidates are left untouched and
  listed for manual review. The tool never guesses.
- Candidates with no registry row are appended with new stable ven_ IDs, in
  deterministic order. Nothing is ever deleted.

By default the result is only summarised (dry run). Re-run with --apply to
rewrite the registry file; the write is atomic and wholesale.

Example:
  cricket-data sync-venues
  cricket-data sync-venues --preview-limit 25
  cricket-data sync-venues --apply`,
	Args: cobra.NoArgs,
	RunE: runSyncVenues,
}

func init() {
	rootCmd.AddCommand(syncVenuesCmd)

	defaults := model.DefaultConfig()
	syncVenuesCmd.Flags().StringVar(&countrySeed, "country-seed", defaults.Seeds.CountrySeed, "path to venue_country_mapping.csv")
	syncVenuesCmd.Flags().StringVar(&aliasSeed, "alias-seed", defaults.Seeds.AliasSeed, "path to venue_alias_mapping.csv")
	syncVenuesCmd.Flags().StringVar(&masterSeed, "master-seed", defaults.Seeds.MasterSeed, "path to venue_master_mapping.csv")
	syncVenuesCmd.Flags().BoolVar(&applyChanges, "apply", false, "write updates in place (default is dry run)")
	syncVenuesCmd.Flags().IntVar(&previewLimit, "preview-limit", defaults.Output.PreviewLimit, "how many appended rows to print in dry-run preview")
}

func runSyncVenues(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	curated, err := seeds.LoadCuratedTriples(countrySeed, aliasSeed)
	if err != nil {
		return fmt.Errorf("load curated seeds: %w", err)
	}
	master, err := seeds.ReadMaster(masterSeed)
	if err != nil {
		return fmt.Errorf("load master registry: %w", err)
	}

	updated, result := registry.Sync(master, curated)

	registry.WriteSummary(out, len(curated), len(master), updated, result)

	if !applyChanges {
		registry.WritePreview(out, result, previewLimit)
		fmt.Fprintln(out, "Dry run complete. Re-run with --apply to write changes.")
		return nil
	}

	if err := seeds.WriteMaster(masterSeed, updated); err != nil {
		return fmt.Errorf("write master registry: %w", err)
	}
	fmt.Fprintf(out, "Applied updates to %s\n", masterSeed)
	return nil
}
