// Package crawler scrapes the portal's public listing of open exams and
// resolves each exam's bulletin PDF link.
package crawler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"concursos/internal/config"
	"concursos/internal/domain"
	"concursos/internal/port"
)

// buttonLabels are generic link texts on the listing page that carry no exam
// name. Links whose text matches one of these are skipped as duplicates of
// the named link pointing at the same detail page.
var buttonLabels = map[string]bool{
	"":                    true,
	"inscrições abertas!": true,
	"inscricoes abertas!": true,
	"mais informações":    true,
	"mais informacoes":    true,
	"inscreva-se":         true,
}

// Crawler is the HTML implementation of port.PortalCrawler. It is polite by
// construction: one request at a time, with a configurable delay between
// detail page visits.
type Crawler struct {
	client      *http.Client
	baseURL     *url.URL
	listingPath string
	userAgent   string
	delay       time.Duration
}

// New creates a Crawler from configuration.
func New(cfg *config.CrawlerConfig) (*Crawler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("crawler: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	return &Crawler{
		client:      &http.Client{Timeout: cfg.Timeout},
		baseURL:     base,
		listingPath: cfg.ListingPath,
		userAgent:   cfg.UserAgent,
		delay:       cfg.RequestDelay,
	}, nil
}

var _ port.PortalCrawler = (*Crawler)(nil)

// DiscoverListings scrapes the open-exams index page. Each exam appears
// several times (name link plus call-to-action buttons); entries are
// deduplicated by the portal ID embedded in the detail URL, keeping the
// first named link.
func (c *Crawler) DiscoverListings(ctx context.Context) ([]domain.ExamListing, error) {
	listingURL := c.baseURL.ResolveReference(&url.URL{Path: c.listingPath}).String()
	root, err := c.getPage(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	var listings []domain.ExamListing
	seen := make(map[string]bool)

	for _, a := range anchors(root) {
		href := attrValue(a, "href")
		if !strings.Contains(href, "/informacoes/") {
			continue
		}
		abs := c.absolute(href)
		portalID := lastPathSegment(abs)
		if portalID == "" || seen[portalID] {
			continue
		}

		name := strings.TrimSpace(anchorText(a))
		if name == "" {
			name = strings.TrimSpace(attrValue(a, "title"))
		}
		if buttonLabels[strings.ToLower(name)] {
			continue
		}

		seen[portalID] = true
		listings = append(listings, domain.ExamListing{
			PortalID: portalID,
			Name:     name,
			URL:      abs,
		})
	}

	log.Printf("crawler: discovered %d open exams", len(listings))
	return listings, nil
}

// ResolveBulletin visits an exam's detail page and picks its bulletin PDF.
// The opening announcement ("edital de abertura das inscrições") wins over
// other editais, which win over any remaining PDF link.
func (c *Crawler) ResolveBulletin(ctx context.Context, listing domain.ExamListing) (string, error) {
	if err := c.sleep(ctx); err != nil {
		return "", err
	}

	root, err := c.getPage(ctx, listing.URL)
	if err != nil {
		return "", err
	}

	var opening, edital, first string
	for _, a := range anchors(root) {
		href := attrValue(a, "href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			continue
		}
		abs := c.absolute(href)
		if first == "" {
			first = abs
		}

		title := strings.ToLower(anchorText(a))
		switch {
		case strings.Contains(title, "abertura") && strings.Contains(title, "inscri"):
			if opening == "" {
				opening = abs
			}
		case strings.Contains(title, "edital"):
			if edital == "" {
				edital = abs
			}
		}
	}

	switch {
	case opening != "":
		return opening, nil
	case edital != "":
		return edital, nil
	default:
		return first, nil
	}
}

func (c *Crawler) getPage(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("crawler: building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crawler: fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crawler: fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("crawler: parsing %s: %w", pageURL, err)
	}
	return root, nil
}

func (c *Crawler) sleep(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Crawler) absolute(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.baseURL.ResolveReference(ref).String()
}

// anchors collects every <a> element under root in document order.
func anchors(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// anchorText concatenates the text content of a node's subtree.
func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	trimmed := strings.TrimRight(u.Path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
