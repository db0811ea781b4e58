package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/cricsheet"
	"github.com/bjwhitworth/cricket-data/internal/llm"
	"github.com/bjwhitworth/cricket-data/internal/model"
)

// Narrator generates one narrative; satisfied by llm.Provider.
type Narrator interface {
	Narrate(ctx context.Context, req llm.NarrateRequest) (*llm.NarrateResponse, error)
}

// NarrateJob narrates one match file.
type NarrateJob struct {
	Path     string
	Narrator Narrator
	Limiter  *Limiter
}

// Execute parses the match file and generates its narrative.
func (j *NarrateJob) Execute(ctx context.Context) Result {
	summary, err := cricsheet.ParseMatch(j.Path)
	if err != nil {
		return &NarrateResult{Path: j.Path, Error: err}
	}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &NarrateResult{Path: j.Path, MatchID: summary.MatchID, Error: err}
		}
	}

	resp, err := j.Narrator.Narrate(ctx, llm.NarrateRequest{Summary: *summary})
	if err != nil {
		return &NarrateResult{Path: j.Path, MatchID: summary.MatchID, Error: err}
	}
	return &NarrateResult{
		Path:      j.Path,
		MatchID:   summary.MatchID,
		Summary:   summary,
		Narrative: resp.Narrative,
	}
}

// NarrateResult is the outcome of one narration job.
type NarrateResult struct {
	Path      string
	MatchID   string
	Summary   *model.MatchSummary
	Narrative string
	Error     error
}

// GetError returns the job error, if any.
func (r *NarrateResult) GetError() error {
	return r.Error
}

// BatchNarrator narrates many match files concurrently.
type BatchNarrator struct {
	narrator    Narrator
	concurrency int
	limiter     *Limiter
}

// NewBatchNarrator creates a batch narrator. Rate limiting applies across
// all workers; a zero rate disables it.
func NewBatchNarrator(narrator Narrator, concurrency int, requestsPerSecond float64, burst int) *BatchNarrator {
	return &BatchNarrator{
		narrator:    narrator,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// Process narrates the given match files.
func (b *BatchNarrator) Process(ctx context.Context, paths []string) []*NarrateResult {
	if len(paths) == 0 {
		return []*NarrateResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&NarrateJob{Path: path, Narrator: b.narrator, Limiter: b.limiter})
	}

	results := pool.Wait()
	out := make([]*NarrateResult, len(results))
	for i, r := range results {
		out[i] = r.(*NarrateResult)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// CollectMatchFiles resolves the batch input: a directory yields every
// .json file inside it, any other path is read as a newline-separated list
// of match file paths. Blank lines and # comments are skipped, duplicates
// collapse.
func CollectMatchFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", input, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", input, err)
		}
		var paths []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				paths = append(paths, filepath.Join(input, e.Name()))
			}
		}
		sort.Strings(paths)
		return paths, nil
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}
	defer func() { _ = f.Close() }()

	var paths []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", input, err)
	}
	return paths, nil
}
