package cricsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Archive is one downloadable bundle linked from the Cricsheet downloads
// page.
type Archive struct {
	Name string
	URL  string
}

// ListArchives fetches the downloads page and returns every zip archive it
// links to, so users can discover bundles beyond the default all_json.zip.
func (c *Checker) ListArchives(ctx context.Context, downloadsURL string) ([]Archive, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch downloads page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching downloads page: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read downloads page: %w", err)
	}
	return parseArchiveLinks(string(body), downloadsURL)
}

// parseArchiveLinks walks the page's anchors and keeps the zip links,
// resolved against the page URL and deduplicated.
func parseArchiveLinks(page, baseURL string) ([]Archive, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse downloads page: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	seen := make(map[string]bool)
	var archives []Archive
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if !strings.HasSuffix(href, ".zip") {
					continue
				}
				parsed, err := url.Parse(href)
				if err != nil {
					continue
				}
				resolved := base.ResolveReference(parsed)
				if resolved.Scheme != "http" && resolved.Scheme != "https" {
					continue
				}
				full := resolved.String()
				if seen[full] {
					continue
				}
				seen[full] = true
				name := full[strings.LastIndex(full, "/")+1:]
				archives = append(archives, Archive{Name: name, URL: full})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	sort.Slice(archives, func(i, j int) bool { return archives[i].Name < archives[j].Name })
	return archives, nil
}
