// Package composer turns a form submission into a render job: it validates
// the input, picks a background photo, builds the edit and hands it to the
// render provider. It also forwards status lookups.
package composer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"golang.org/x/text/unicode/norm"

	"framecraft/internal/pkg/errors"
	"framecraft/internal/pkg/logger"
	"framecraft/internal/render"
	"framecraft/internal/search"
)

// MaxResults caps the photos a background is picked from.
const MaxResults = 15

// Deps are the collaborators of a Composer. Search and Render are required.
type Deps struct {
	Search  search.Searcher
	Render  render.Client
	Catalog *Catalog
	// Pick returns an index in [0, n). Defaults to a uniform random pick.
	Pick func(n int) int
	Log  *logger.Logger
}

// Composer holds read-only collaborators and is safe for concurrent use.
type Composer struct {
	search  search.Searcher
	render  render.Client
	catalog *Catalog
	pick    func(n int) int
	log     *logger.Logger
}

func New(d Deps) *Composer {
	catalog := d.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	pick := d.Pick
	if pick == nil {
		pick = rand.IntN
	}
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Composer{
		search:  d.Search,
		render:  d.Render,
		catalog: catalog,
		pick:    pick,
		log:     log.WithComponent("composer"),
	}
}

// Submit validates sub, builds its edit and submits it. The render
// provider's response is returned unchanged; it carries the job id.
func (c *Composer) Submit(ctx context.Context, sub Submission) (json.RawMessage, error) {
	log := c.log.FromContext(ctx)

	// Decomposed accents count as one character and render as one glyph.
	sub.Title = norm.NFC.String(sub.Title)

	style, err := sub.Validate()
	if err != nil {
		return nil, err
	}

	res, err := c.search.Search(ctx, search.Query{Text: sub.Search, PerPage: MaxResults, Page: 1})
	if err != nil {
		return nil, errors.Wrap(err, "composer.submit", errors.GetMessage(err))
	}

	n := min(res.TotalResults, len(res.Photos), MaxResults)
	if n <= 0 {
		log.Info("no photos found", "search", sub.Search)
		return nil, errors.NotFound(fmt.Sprintf("No image found for '%s', please try a different keyword.", sub.Search)).
			WithOp("composer.submit").
			WithField("search", sub.Search)
	}

	photo := res.Photos[c.pick(n)]
	edit := BuildEdit(c.catalog.Template(style), sub.Title, photo.Src.Original)

	out, err := c.render.Submit(ctx, edit)
	if err != nil {
		return nil, errors.Wrap(err, "composer.submit", errors.GetMessage(err))
	}

	log.Info("render submitted",
		"style", style.String(),
		"photo_id", photo.ID,
		"candidates", n,
	)
	return out, nil
}

// Status returns the live render provider view of job id.
func (c *Composer) Status(ctx context.Context, id string) (json.RawMessage, error) {
	jobID, err := ParseJobID(id)
	if err != nil {
		return nil, err
	}

	out, err := c.render.Status(logger.ContextWithJobID(ctx, jobID), jobID)
	if err != nil {
		return nil, errors.Wrap(err, "composer.status", errors.GetMessage(err))
	}
	return out, nil
}
