// Package panel implements the search panel: it owns the query, drives the
// manifest fetch and holds the overview and items of the latest applied response.
package panel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/manifest"
	"github.com/syd18b/mvp-search/internal/model"
)

// State is the lifecycle position of a panel.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateEmpty     State = "empty"
	StateError     State = "error"
)

// ErrStale is returned by Submit when a newer query was issued, or the query
// was cleared, before the response arrived. The response is not applied.
var ErrStale = errors.New("response superseded by a newer query")

// Snapshot is a copy of the panel state. It shares nothing with the panel.
type Snapshot struct {
	Query    string             `json:"query"`
	State    State              `json:"state"`
	Overview model.SiteOverview `json:"overview"`
	Items    []model.Item       `json:"items"`
	Message  string             `json:"message,omitempty"`
	Sequence uint64             `json:"sequence"`
}

// Panel is safe for concurrent use.
type Panel struct {
	fetcher manifest.Fetcher
	log     logger.Logger

	mu       sync.Mutex
	query    string
	state    State
	overview model.SiteOverview
	items    []model.Item
	message  string
	seq      uint64
}

// New creates an idle panel that fetches through f.
func New(f manifest.Fetcher, log logger.Logger) *Panel {
	if log == nil {
		log = logger.NewNop()
	}
	return &Panel{
		fetcher: f,
		log:     log,
		state:   StateIdle,
		items:   []model.Item{},
	}
}

// SetQuery stores the query value. An empty value clears the overview and
// items without a network call and invalidates any fetch in flight.
func (p *Panel) SetQuery(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = value
	if value == "" {
		p.seq++
		p.resetLocked(StateIdle, "")
	}
}

// Submit issues a fetch for urlText and applies the result if no newer query
// has been issued meanwhile. Fetch failures are reflected in the returned
// snapshot, not in the error; the error is only ever ErrStale.
func (p *Panel) Submit(ctx context.Context, urlText string) (Snapshot, error) {
	if urlText == "" {
		p.SetQuery("")
		return p.Snapshot(), nil
	}

	p.mu.Lock()
	p.query = urlText
	p.seq++
	seq := p.seq
	p.state = StateLoading
	p.message = ""
	p.mu.Unlock()

	log := p.log.With(logger.String("url", urlText), logger.Uint64("seq", seq))
	log.Debug("Submitting query")

	res, err := p.fetcher.Fetch(ctx, urlText)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		log.Info("Discarding stale response", logger.Uint64("latest_seq", p.seq))
		return p.snapshotLocked(), ErrStale
	}

	switch {
	case err != nil:
		log.Warn("Manifest fetch failed", logger.Error(err))
		p.resetLocked(StateError, failureMessage(err))
	case res.Falsy:
		p.resetLocked(StateEmpty, "")
	default:
		p.overview = res.Manifest.Overview
		p.items = append([]model.Item(nil), res.Manifest.Items...)
		p.message = ""
		p.state = StatePopulated
		if len(p.items) == 0 {
			p.state = StateEmpty
		}
		log.Info("Applied manifest", logger.Int("items", len(p.items)), logger.String("site", p.overview.Name))
	}
	return p.snapshotLocked(), nil
}

// Snapshot returns a copy of the current state.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Panel) snapshotLocked() Snapshot {
	return Snapshot{
		Query:    p.query,
		State:    p.state,
		Overview: p.overview,
		Items:    append([]model.Item{}, p.items...),
		Message:  p.message,
		Sequence: p.seq,
	}
}

func (p *Panel) resetLocked(state State, message string) {
	p.overview = model.SiteOverview{}
	p.items = []model.Item{}
	p.state = state
	p.message = message
}

func failureMessage(err error) string {
	var fe *manifest.FetchError
	if !errors.As(err, &fe) {
		return fmt.Sprintf("Could not load the site manifest: %v", err)
	}
	switch fe.Kind {
	case manifest.KindStatus:
		return fmt.Sprintf("The site responded with status %d %s.", fe.StatusCode, http.StatusText(fe.StatusCode))
	case manifest.KindDecode:
		return "The response is not a valid JSON site manifest."
	case manifest.KindShape:
		return fmt.Sprintf("The site manifest has an unexpected shape: %v.", fe.Err)
	default:
		return fmt.Sprintf("Could not reach the site: %v", fe.Err)
	}
}

// FormatTimestamp renders Unix epoch seconds as a UTC date, for example
// "Thu, 01 Jan 1970 00:00:00 GMT".
func FormatTimestamp(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(http.TimeFormat)
}
