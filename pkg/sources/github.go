package sources

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fontdex/fontdex/pkg/data"
	"github.com/fontdex/fontdex/pkg/utils"
)

const githubAPI = "https://api.github.com"

// contentEntry is one item of a GitHub contents API listing.
type contentEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "file" or "dir"
	DownloadURL string `json:"download_url"`
}

func listContents(api *utils.API, repo, path string) ([]contentEntry, error) {
	p := fmt.Sprintf("/repos/%s/contents", repo)
	if path != "" {
		p += "/" + path
	}
	var entries []contentEntry
	err := api.Get(p, nil, &entries)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrRetrieval, repo, path, err)
	}
	return entries, nil
}

// CJK lists the static CJK OTF fonts from the notofonts/noto-cjk repository.
type CJK struct {
	api *utils.API
}

func NewCJK() *CJK {
	return NewCJKWithURL(githubAPI)
}

func NewCJKWithURL(baseURL string) *CJK {
	return &CJK{api: utils.NewAPI(baseURL)}
}

func (c *CJK) Name() string { return "notofonts/noto-cjk" }

// Fonts walks Sans/OTF/<region> and Serif/OTF/<region>. The family is the
// filename up to the first dash, e.g. NotoSansCJKjp.
func (c *CJK) Fonts() ([]data.FontRef, error) {
	var refs []data.FontRef
	for _, root := range []string{"Sans/OTF", "Serif/OTF"} {
		regions, err := listContents(c.api, "notofonts/noto-cjk", root)
		if err != nil {
			return nil, err
		}
		for _, region := range regions {
			if region.Type != "dir" {
				continue
			}
			files, err := listContents(c.api, "notofonts/noto-cjk", root+"/"+region.Name)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if f.Type != "file" || !strings.HasSuffix(strings.ToLower(f.Name), ".otf") {
					continue
				}
				family, _, _ := strings.Cut(f.Name, "-")
				refs = append(refs, data.FontRef{
					Family:   family,
					Filename: f.Name,
					URL:      f.DownloadURL,
				})
			}
		}
	}
	return refs, nil
}

// Emoji lists the emoji fonts from googlefonts/noto-emoji.
type Emoji struct {
	api *utils.API
}

func NewEmoji() *Emoji {
	return NewEmojiWithURL(githubAPI)
}

func NewEmojiWithURL(baseURL string) *Emoji {
	return &Emoji{api: utils.NewAPI(baseURL)}
}

func (e *Emoji) Name() string { return "googlefonts/noto-emoji" }

func (e *Emoji) Fonts() ([]data.FontRef, error) {
	files, err := listContents(e.api, "googlefonts/noto-emoji", "fonts")
	if err != nil {
		return nil, err
	}
	var refs []data.FontRef
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if f.Type != "file" || (!strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf")) {
			continue
		}
		refs = append(refs, data.FontRef{
			Family:   emojiFamily(f.Name),
			Filename: f.Name,
			URL:      f.DownloadURL,
		})
	}
	return refs, nil
}

func emojiFamily(name string) string {
	switch {
	case strings.HasPrefix(name, "Noto-COLRv1"), strings.HasPrefix(name, "NotoColorEmoji"):
		return "NotoColorEmoji"
	case strings.HasPrefix(name, "NotoEmoji"):
		return "NotoEmoji"
	default:
		family, _, _ := strings.Cut(name, "-")
		return family
	}
}
