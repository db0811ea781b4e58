package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bjwhitworth/cricket-data/internal/cache"
	"github.com/bjwhitworth/cricket-data/internal/cricsheet"
	"github.com/bjwhitworth/cricket-data/internal/model"
	"github.com/bjwhitworth/cricket-data/internal/util"
	"github.com/spf13/cobra"
)

var (
	download      bool
	downloadLimit int
	dataDir       string
	archiveURL    string
	listArchives  bool
	noCache       bool
	httpTimeout   time.Duration
	httpProxy     string
	httpsProxy    string
)

// checkUpdatesCmd represents the check-updates command
var checkUpdatesCmd = &cobra.Command{
	Use:   "check-updates",
	Short: "Check Cricsheet for new match data and optionally download it",
	Long: `check-updates downloads the Cricsheet all_json.zip archive, compares its
contents against your local raw data directory, and reports which match
files are new. With --download the new files are extracted in place.

The archive download respects cricsheet.org's robots.txt and is cached on
disk, so repeated runs within the cache window reuse the same bytes.

Example:
  cricket-data check-updates
  cricket-data check-updates --download
  cricket-data check-updates --download --limit 50
  cricket-data check-updates --list-archives`,
	Args: cobra.NoArgs,
	RunE: runCheckUpdates,
}

func init() {
	rootCmd.AddCommand(checkUpdatesCmd)

	defaults := model.DefaultConfig()
	checkUpdatesCmd.Flags().BoolVarP(&download, "download", "d", false, "download new files (default is check only)")
	checkUpdatesCmd.Flags().IntVarP(&downloadLimit, "limit", "l", 0, "limit number of files to download (0 = all)")
	checkUpdatesCmd.Flags().StringVar(&dataDir, "data-dir", defaults.Data.RawDir, "local raw match data directory")
	checkUpdatesCmd.Flags().StringVar(&archiveURL, "archive-url", defaults.Data.ArchiveURL, "Cricsheet archive URL")
	checkUpdatesCmd.Flags().BoolVar(&listArchives, "list-archives", false, "list available archives on the downloads page and exit")
	checkUpdatesCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	checkUpdatesCmd.Flags().DurationVar(&httpTimeout, "timeout", defaults.HTTP.Timeout, "overall HTTP timeout")
	checkUpdatesCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkUpdatesCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runCheckUpdates(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Data.RawDir = dataDir
	cfg.Data.ArchiveURL = archiveURL
	cfg.HTTP.Timeout = httpTimeout
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	client := util.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy)
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second)

	var archiveCache cache.Cache
	if cfg.Cache.Enabled {
		archiveCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	checker := cricsheet.NewChecker(client, archiveCache, robots, cfg.Data.ArchiveURL, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)

	if listArchives {
		archives, err := checker.ListArchives(ctx, cfg.Data.DownloadsURL)
		if err != nil {
			return fmt.Errorf("list archives: %w", err)
		}
		fmt.Printf("Available archives at %s:\n", cfg.Data.DownloadsURL)
		for _, a := range archives {
			fmt.Printf("  %s -> %s\n", a.Name, a.URL)
		}
		return nil
	}

	fmt.Fprintln(os.Stderr, "Checking for updates on Cricsheet...")
	fmt.Fprintf(os.Stderr, "  Source: %s\n", cfg.Data.ArchiveURL)
	fmt.Fprintf(os.Stderr, "  Local:  %s\n\n", cfg.Data.RawDir)

	result, zipData, err := checker.Check(ctx, cfg.Data.RawDir)
	if err != nil {
		return fmt.Errorf("check updates: %w", err)
	}

	fmt.Printf("Cricsheet update summary\n")
	fmt.Printf("- remote_files: %d\n", len(result.Remote))
	fmt.Printf("- local_files: %d\n", result.Local)
	fmt.Printf("- new_files: %d\n", len(result.New))

	if len(result.New) == 0 {
		fmt.Println("Local data is up to date.")
		return nil
	}

	if !download {
		fmt.Println("Re-run with --download to extract the new files.")
		return nil
	}

	n, err := cricsheet.Extract(zipData, result.New, cfg.Data.RawDir, downloadLimit)
	if err != nil {
		return fmt.Errorf("extract new files (%d written): %w", n, err)
	}
	fmt.Printf("Extracted %d new match files into %s\n", n, cfg.Data.RawDir)
	return nil
}
