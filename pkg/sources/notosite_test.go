package sources

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const dashboardHTML = `<!DOCTYPE html>
<html><body>
<a href="https://cdn.jsdelivr.net/gh/notofonts/notofonts.github.io/fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf">Bold</a>
<a href="https://cdn.jsdelivr.net/gh/notofonts/notofonts.github.io/fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Regular.ttf">Regular</a>
<a href="https://cdn.jsdelivr.net/gh/notofonts/notofonts.github.io/fonts/NotoSerifTodhri/hinted/ttf/NotoSerifTodhri-Regular.ttf">Todhri</a>
<a href="https://cdn.jsdelivr.net/gh/notofonts/notofonts.github.io/fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Regular.ttf">Duplicate</a>
<a href="https://example.com/NotReal.woff2">other</a>
</body></html>`

func TestNotoSite_Fonts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dashboardHTML)
	}))
	defer server.Close()

	site := NewNotoSiteWithURL(server.URL)
	refs, err := site.Fonts()
	assert.NoError(t, err)
	assert.Len(t, refs, 3, "duplicates and non-TTF links must be dropped")

	assert.Equal(t, "NotoSansAdlam", refs[0].Family)
	assert.Equal(t, "NotoSansAdlam-Bold.ttf", refs[0].Filename)
	assert.Equal(t, "NotoSansAdlam", refs[1].Family)
	assert.Equal(t, "NotoSerifTodhri", refs[2].Family)
	assert.Contains(t, refs[2].URL, "NotoSerifTodhri-Regular.ttf")
}

func TestNotoSite_FontsEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>nothing to see here</body></html>")
	}))
	defer server.Close()

	site := NewNotoSiteWithURL(server.URL)
	refs, err := site.Fonts()
	assert.NoError(t, err, "a page without matching links is not an error")
	assert.Empty(t, refs)
}

func TestNotoSite_FontsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	site := NewNotoSiteWithURL(server.URL)
	_, err := site.Fonts()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetrieval))
}

func TestNotoSite_FontsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	site := NewNotoSiteWithURL(server.URL)
	_, err := site.Fonts()
	assert.True(t, errors.Is(err, ErrRetrieval))
}

func TestFamilyFromURL(t *testing.T) {
	family, ok := familyFromURL("https://cdn.jsdelivr.net/gh/notofonts/notofonts.github.io/fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf")
	assert.True(t, ok)
	assert.Equal(t, "NotoSansAdlam", family)

	_, ok = familyFromURL("https://example.com/no-fonts-segment.ttf")
	assert.False(t, ok)
}
