package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/manifest"
	"github.com/syd18b/mvp-search/internal/model"
)

type fetchFunc func(ctx context.Context, url string) (manifest.Result, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) (manifest.Result, error) {
	return f(ctx, url)
}

const siteJSON = `{"items":[{"title":"A","description":"d","slug":"s","location":"l","metadata":{"updated":0,"images":["img.png"],"published":true}}], "description":"site-desc","metadata":{"site":{"name":"N","logo":"logo.png","created":0,"updated":0},"theme":{"name":"T","variables":{"hexCode":"#fff"}}}}`

func newServerPanel(t *testing.T, status int, body string) (*Panel, *int32, string) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := manifest.NewClient(srv.Client(), 0, logger.NewNop())
	return New(client, logger.NewNop()), &hits, srv.URL + "/site.json"
}

func TestSubmitPopulates(t *testing.T) {
	p, hits, url := newServerPanel(t, http.StatusOK, siteJSON)

	snap, err := p.Submit(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, StatePopulated, snap.State)
	assert.Equal(t, url, snap.Query)
	assert.Equal(t, "N", snap.Overview.Name)
	assert.Equal(t, "T", snap.Overview.ThemeName)
	assert.Equal(t, "#fff", snap.Overview.AccentColor)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "A", snap.Items[0].Title)
	assert.Equal(t, "img.png", snap.Items[0].ImagePath)
}

func TestSubmitNotFoundClearsEverything(t *testing.T) {
	p, _, url := newServerPanel(t, http.StatusNotFound, "")
	p.overview = model.SiteOverview{Name: "old"}
	p.items = []model.Item{{Title: "old"}}

	snap, err := p.Submit(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, StateError, snap.State)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Overview.IsZero())
	assert.Contains(t, snap.Message, "404")
}

func TestSubmitMalformedBody(t *testing.T) {
	p, _, url := newServerPanel(t, http.StatusOK, `{"items":`)

	snap, err := p.Submit(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, StateError, snap.State)
	assert.NotEmpty(t, snap.Message)
	assert.Empty(t, snap.Items)
}

func TestSubmitFalsyBody(t *testing.T) {
	p, _, url := newServerPanel(t, http.StatusOK, `null`)
	p.overview = model.SiteOverview{Name: "old"}

	snap, err := p.Submit(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Overview.IsZero())
}

func TestSubmitNoItemsIsEmpty(t *testing.T) {
	p, _, url := newServerPanel(t, http.StatusOK, `{"metadata":{"site":{"name":"N"}}}`)

	snap, err := p.Submit(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, snap.State)
	assert.Equal(t, "N", snap.Overview.Name)
}

func TestEmptyQueryClearsWithoutFetch(t *testing.T) {
	var calls int32
	p := New(fetchFunc(func(context.Context, string) (manifest.Result, error) {
		atomic.AddInt32(&calls, 1)
		return manifest.Result{}, nil
	}), nil)
	p.items = []model.Item{{Title: "x"}}
	p.state = StatePopulated

	snap, err := p.Submit(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, StateIdle, snap.State)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)

	p.items = []model.Item{{Title: "y"}}
	p.SetQuery("")
	assert.Empty(t, p.Snapshot().Items)
}

func TestSetQueryNonEmptyKeepsState(t *testing.T) {
	p := New(fetchFunc(func(context.Context, string) (manifest.Result, error) {
		return manifest.Result{}, nil
	}), nil)
	p.items = []model.Item{{Title: "x"}}

	p.SetQuery("https://example.org/site.json")
	snap := p.Snapshot()
	assert.Equal(t, "https://example.org/site.json", snap.Query)
	assert.Len(t, snap.Items, 1)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := New(fetchFunc(func(_ context.Context, url string) (manifest.Result, error) {
		if url == "slow" {
			close(started)
			<-release
			return manifest.Result{Manifest: model.Manifest{Items: []model.Item{{Title: "slow"}}}}, nil
		}
		return manifest.Result{Manifest: model.Manifest{Items: []model.Item{{Title: "fast"}}}}, nil
	}), nil)

	type out struct {
		snap Snapshot
		err  error
	}
	done := make(chan out, 1)
	go func() {
		s, err := p.Submit(context.Background(), "slow")
		done <- out{s, err}
	}()
	<-started

	fast, err := p.Submit(context.Background(), "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", fast.Items[0].Title)

	close(release)
	slow := <-done
	assert.ErrorIs(t, slow.err, ErrStale)

	snap := p.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fast", snap.Items[0].Title)
	assert.Equal(t, "fast", snap.Query)
}

func TestClearInvalidatesInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := New(fetchFunc(func(context.Context, string) (manifest.Result, error) {
		close(started)
		<-release
		return manifest.Result{Manifest: model.Manifest{Items: []model.Item{{Title: "late"}}}}, nil
	}), nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), "u")
		errCh <- err
	}()
	<-started
	assert.Equal(t, StateLoading, p.Snapshot().State)

	p.SetQuery("")
	close(release)
	assert.ErrorIs(t, <-errCh, ErrStale)
	assert.Empty(t, p.Snapshot().Items)
	assert.Equal(t, StateIdle, p.Snapshot().State)
}

func TestSnapshotIsACopy(t *testing.T) {
	p := New(nil, nil)
	p.items = []model.Item{{Title: "a"}}
	snap := p.Snapshot()
	snap.Items[0].Title = "mutated"
	assert.Equal(t, "a", p.Snapshot().Items[0].Title)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Thu, 01 Jan 1970 00:00:00 GMT", FormatTimestamp(0))
	assert.Equal(t, "Tue, 14 Nov 2023 22:13:20 GMT", FormatTimestamp(1700000000))
	first := FormatTimestamp(1234567890)
	_ = FormatTimestamp(42)
	assert.Equal(t, first, FormatTimestamp(1234567890))
}
