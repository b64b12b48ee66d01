package sources

import (
	"errors"

	"github.com/fontdex/fontdex/pkg/data"
)

// ErrRetrieval is wrapped by errors returned when a source's listing cannot
// be retrieved at all. Nothing downstream can proceed for that source.
var ErrRetrieval = errors.New("listing unreachable")

// Source produces the list of downloadable font files it knows about.
// A fresh call re-fetches the listing; results are not cached.
type Source interface {
	Name() string
	Fonts() ([]data.FontRef, error)
}
