package sources

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fontdex/fontdex/pkg/data"
)

// DefaultListingURL is the Noto fonts dashboard that links every released
// TTF through the jsDelivr CDN.
const DefaultListingURL = "https://notofonts.github.io/"

var ttfLinkPattern = regexp.MustCompile(`https://cdn\.jsdelivr\.net/gh/notofonts/notofonts\.github\.io/[^"'\s]+?\.ttf`)

// NotoSite scrapes the notofonts.github.io dashboard for TTF download links.
type NotoSite struct {
	client     *http.Client
	listingURL string
}

func NewNotoSite() *NotoSite {
	return NewNotoSiteWithURL(DefaultListingURL)
}

func NewNotoSiteWithURL(listingURL string) *NotoSite {
	return &NotoSite{
		client:     &http.Client{Timeout: 30 * time.Second},
		listingURL: listingURL,
	}
}

func (s *NotoSite) Name() string { return "notofonts.github.io" }

// Fonts fetches the dashboard once and extracts every TTF link. A page with
// no matching links yields an empty slice, not an error; only an unreachable
// page or a non-success status is reported, wrapped as ErrRetrieval.
func (s *NotoSite) Fonts() ([]data.FontRef, error) {
	req, err := http.NewRequest("GET", s.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	req.Header.Set("User-Agent", "fontdex/1.0")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrRetrieval, s.listingURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	urls := ttfLinkPattern.FindAllString(string(body), -1)
	sort.Strings(urls)

	var refs []data.FontRef
	var prev string
	for _, u := range urls {
		if u == prev {
			continue
		}
		prev = u
		family, ok := familyFromURL(u)
		if !ok {
			continue
		}
		refs = append(refs, data.FontRef{
			Family:   family,
			Filename: u[strings.LastIndex(u, "/")+1:],
			URL:      u,
		})
	}
	return refs, nil
}

// familyFromURL derives the family from the path segment following "fonts",
// e.g. .../notofonts.github.io/fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf.
func familyFromURL(u string) (string, bool) {
	_, after, found := strings.Cut(u, "github.io/")
	if !found {
		return "", false
	}
	parts := strings.Split(after, "/")
	for i, p := range parts {
		if p == "fonts" && i+1 < len(parts)-1 {
			return parts[i+1], true
		}
	}
	return "", false
}
