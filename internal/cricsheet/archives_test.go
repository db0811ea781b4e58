package cricsheet

import "testing"

func TestParseArchiveLinks(t *testing.T) {
	page := `
	<html><body>
		<h1>Downloads</h1>
		<ul>
			<li><a href="/downloads/all_json.zip">All matches</a></li>
			<li><a href="/downloads/t20s_json.zip">T20s</a></li>
			<li><a href="/downloads/all_json.zip">All matches (again)</a></li>
			<li><a href="https://example.org/other.zip">External</a></li>
			<li><a href="/register">Register</a></li>
			<li><a href="#top">Top</a></li>
		</ul>
	</body></html>`

	archives, err := parseArchiveLinks(page, "https://cricsheet.org/downloads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(archives) != 3 {
		t.Fatalf("expected 3 archives, got %d: %v", len(archives), archives)
	}
	// Sorted by name, duplicates collapsed.
	if archives[0].Name != "all_json.zip" || archives[0].URL != "https://cricsheet.org/downloads/all_json.zip" {
		t.Errorf("unexpected first archive: %+v", archives[0])
	}
	if archives[1].Name != "other.zip" || archives[2].Name != "t20s_json.zip" {
		t.Errorf("unexpected ordering: %+v", archives)
	}
}

func TestParseArchiveLinks_EmptyPage(t *testing.T) {
	archives, err := parseArchiveLinks("<html></html>", "https://cricsheet.org/downloads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archives) != 0 {
		t.Errorf("expected no archives, got %v", archives)
	}
}
