package cricsheet

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bjwhitworth/cricket-data/internal/cache"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestArchiveMembers_FiltersNonMatches(t *testing.T) {
	zipData := buildZip(t, map[string]string{
		"1001.json":          "{}",
		"1002.json":          "{}",
		"README.txt":         "readme",
		"__MACOSX/1001.json": "junk",
		"nested/1003.json":   "{}",
	})

	members, err := ArchiveMembers(zipData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1001.json", "1002.json", "nested/1003.json"}
	if len(members) != len(want) {
		t.Fatalf("expected %v, got %v", want, members)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Errorf("expected %v, got %v", want, members)
			break
		}
	}
}

func TestChecker_CheckDiffsAgainstLocal(t *testing.T) {
	zipData := buildZip(t, map[string]string{
		"1001.json": "{}",
		"1002.json": "{}",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(zipData)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1001.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("seed local file: %v", err)
	}

	checker := NewChecker(srv.Client(), nil, nil, srv.URL+"/all_json.zip", "test-agent", 0)
	result, gotZip, err := checker.Check(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Local != 1 || len(result.Remote) != 2 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if len(result.New) != 1 || result.New[0] != "1002.json" {
		t.Errorf("expected only 1002.json new, got %v", result.New)
	}
	if !bytes.Equal(gotZip, zipData) {
		t.Error("returned archive bytes do not match server payload")
	}
}

func TestChecker_CacheAvoidsSecondFetch(t *testing.T) {
	zipData := buildZip(t, map[string]string{"1001.json": "{}"})
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write(zipData)
	}))
	defer srv.Close()

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	checker := NewChecker(srv.Client(), c, nil, srv.URL+"/all_json.zip", "test-agent", 0)

	for i := 0; i < 3; i++ {
		if _, err := checker.FetchArchive(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("expected 1 upstream hit, got %d", got)
	}
}

func TestExtract_FlattensAndLimits(t *testing.T) {
	zipData := buildZip(t, map[string]string{
		"a.json":        `{"a":1}`,
		"nested/b.json": `{"b":2}`,
		"c.json":        `{"c":3}`,
	})
	dir := t.TempDir()

	n, err := Extract(zipData, []string{"a.json", "nested/b.json", "c.json"}, dir, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 extracted, got %d", n)
	}

	if _, err := os.Stat(filepath.Join(dir, "a.json")); err != nil {
		t.Errorf("a.json not extracted: %v", err)
	}
	// Nested member is flattened to its base name.
	if _, err := os.Stat(filepath.Join(dir, "b.json")); err != nil {
		t.Errorf("b.json not flattened into dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "c.json")); err == nil {
		t.Error("c.json extracted beyond the limit")
	}
}

func TestLocalFiles_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw", "all_json")
	files, err := LocalFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty set, got %v", files)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
