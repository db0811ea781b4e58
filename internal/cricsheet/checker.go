package cricsheet

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/cache"
	"github.com/bjwhitworth/cricket-data/internal/util"
)

// Checker compares the upstream Cricsheet archive against the local raw data
// directory and extracts the match files we do not have yet.
type Checker struct {
	httpClient *http.Client
	cache      cache.Cache
	robots     *util.RobotsChecker
	archiveURL string
	userAgent  string
	maxBytes   int64
}

// NewChecker creates a checker. The cache may be nil to force a fresh
// download on every run.
func NewChecker(client *http.Client, c cache.Cache, robots *util.RobotsChecker, archiveURL, userAgent string, maxBytes int64) *Checker {
	return &Checker{
		httpClient: client,
		cache:      c,
		robots:     robots,
		archiveURL: archiveURL,
		userAgent:  userAgent,
		maxBytes:   maxBytes,
	}
}

// CheckResult describes the difference between upstream and local data.
type CheckResult struct {
	Remote []string // JSON members of the upstream archive
	Local  int      // match files already on disk
	New    []string // remote members missing locally, sorted
}

// LocalFiles lists the match files already downloaded. The directory is
// created if missing.
func LocalFiles(dir string) (map[string]bool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	files := make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files[e.Name()] = true
		}
	}
	return files, nil
}

// FetchArchive downloads the upstream zip, honouring robots.txt and reusing
// a cached copy when one is fresh.
func (c *Checker) FetchArchive(ctx context.Context) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(cache.Key(c.archiveURL)); ok {
			return data, nil
		}
	}

	if c.robots != nil && !c.robots.IsAllowed(ctx, c.archiveURL) {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", c.archiveURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch archive: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching archive: %d %s", resp.StatusCode, resp.Status)
	}

	reader := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBytes)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read archive body: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(cache.Key(c.archiveURL), data, 0)
	}
	return data, nil
}

// ArchiveMembers lists the JSON match files inside the zip, skipping macOS
// resource-fork entries.
func ArchiveMembers(zipData []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	var members []string
	for _, f := range zr.File {
		name := f.Name
		if strings.HasPrefix(name, "__MACOSX") || !strings.HasSuffix(name, ".json") {
			continue
		}
		members = append(members, name)
	}
	sort.Strings(members)
	return members, nil
}

// Check fetches the archive and diffs it against the local directory. The
// archive bytes are returned alongside the result so a subsequent Extract
// needs no second download.
func (c *Checker) Check(ctx context.Context, dataDir string) (*CheckResult, []byte, error) {
	local, err := LocalFiles(dataDir)
	if err != nil {
		return nil, nil, err
	}

	zipData, err := c.FetchArchive(ctx)
	if err != nil {
		return nil, nil, err
	}
	members, err := ArchiveMembers(zipData)
	if err != nil {
		return nil, nil, err
	}

	result := &CheckResult{Remote: members, Local: len(local)}
	for _, name := range members {
		if !local[filepath.Base(name)] {
			result.New = append(result.New, name)
		}
	}
	return result, zipData, nil
}

// Extract writes the named archive members into dataDir. Members nested in
// archive subdirectories are flattened to their base name. Up to limit files
// are extracted (0 or negative means all); returns how many succeeded.
func Extract(zipData []byte, names []string, dataDir string, limit int) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}

	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
	}

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	extracted := 0
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			continue
		}
		if err := extractMember(f, filepath.Join(dataDir, filepath.Base(name))); err != nil {
			return extracted, fmt.Errorf("extract %s: %w", name, err)
		}
		extracted++
	}
	return extracted, nil
}

func extractMember(f *zip.File, dest string) (err error) {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, rc)
	return err
}
