package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bjwhitworth/cricket-data/internal/llm"
)

const minimalMatch = `{
	"info": {
		"city": "Kolkata",
		"venue": "Eden Gardens",
		"dates": ["2023-04-01"],
		"teams": ["A", "B"],
		"event": {"name": "Test Series"},
		"toss": {"winner": "A", "decision": "bat"},
		"outcome": {"winner": "A", "by": {"runs": 10}}
	},
	"innings": []
}`

type fakeNarrator struct {
	shouldError bool
}

func (f *fakeNarrator) Narrate(ctx context.Context, req llm.NarrateRequest) (*llm.NarrateResponse, error) {
	if f.shouldError {
		return nil, errors.New("narrate error")
	}
	return &llm.NarrateResponse{Narrative: "A beat B.", Model: "fake"}, nil
}

func writeMatchFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(minimalMatch), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestBatchNarrator_Process(t *testing.T) {
	dir := t.TempDir()
	paths := writeMatchFiles(t, dir, "m1.json", "m2.json", "m3.json")

	batch := NewBatchNarrator(&fakeNarrator{}, 2, 0, 0)
	results := batch.Process(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Narrative != "A beat B." {
			t.Errorf("unexpected narrative: %q", res.Narrative)
		}
		if res.MatchID == "" {
			t.Errorf("missing match ID for %s", res.Path)
		}
	}
}

func TestBatchNarrator_ProviderErrorsSurfacePerFile(t *testing.T) {
	dir := t.TempDir()
	paths := writeMatchFiles(t, dir, "m1.json")

	batch := NewBatchNarrator(&fakeNarrator{shouldError: true}, 1, 0, 0)
	results := batch.Process(context.Background(), paths)

	if len(results) != 1 || results[0].Error == nil {
		t.Fatalf("expected failing result, got %+v", results)
	}
	// The match parsed fine, so its ID is still attached to the failure.
	if results[0].MatchID != "m1" {
		t.Errorf("expected match ID on failed result, got %q", results[0].MatchID)
	}
}

func TestBatchNarrator_UnparseableFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(bad, []byte("not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	batch := NewBatchNarrator(&fakeNarrator{}, 1, 0, 0)
	results := batch.Process(context.Background(), []string{bad})

	if len(results) != 1 || results[0].Error == nil {
		t.Fatalf("expected parse failure surfaced, got %+v", results)
	}
}

func TestCollectMatchFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeMatchFiles(t, dir, "b.json", "a.json")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := CollectMatchFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 match files, got %d: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.json" {
		t.Errorf("expected sorted order, got %v", paths)
	}
}

func TestCollectMatchFiles_ListFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "files.txt")
	content := "# matches to narrate\nm1.json\n\nm2.json\nm1.json\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := CollectMatchFiles(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "m1.json" || paths[1] != "m2.json" {
		t.Errorf("unexpected paths: %v", paths)
	}
}
