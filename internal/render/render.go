// Package render turns panel snapshots into HTML using the registered
// component templates and a theme capability.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/syd18b/mvp-search/internal/component"
	"github.com/syd18b/mvp-search/internal/model"
	"github.com/syd18b/mvp-search/internal/panel"
	"github.com/syd18b/mvp-search/internal/theme"
)

const baseLayout = "base"

//go:embed templates/base.html
var baseSource string

// Options configures a Renderer.
type Options struct {
	// AssetOrigin is joined with relative image, slug and location paths.
	AssetOrigin string
}

type provider struct {
	theme.Provider
}

// Renderer is safe for concurrent use. The theme may be replaced at any time;
// each render uses the theme current when it started.
type Renderer struct {
	templates *template.Template
	theme     atomic.Pointer[provider]
	origin    string
}

// New parses the base layout and every registered component.
func New(reg *component.Registry, th theme.Provider, opts Options) (*Renderer, error) {
	r := &Renderer{origin: opts.AssetOrigin}
	r.SetTheme(th)

	t, err := template.New(baseLayout).Funcs(r.funcs(th)).Parse(baseSource)
	if err != nil {
		return nil, fmt.Errorf("parse base layout: %w", err)
	}
	for _, c := range reg.Components() {
		if _, err := t.New(c.Tag).Parse(c.Template); err != nil {
			return nil, fmt.Errorf("parse component %s: %w", c.Tag, err)
		}
	}
	for _, tag := range []string{component.SearchTag, component.ItemTag} {
		if t.Lookup(tag) == nil {
			return nil, fmt.Errorf("component %s is not registered", tag)
		}
	}
	r.templates = t
	return r, nil
}

// SetTheme swaps the theme capability.
func (r *Renderer) SetTheme(th theme.Provider) {
	r.theme.Store(&provider{th})
}

// Theme returns the current theme capability.
func (r *Renderer) Theme() theme.Provider {
	return r.theme.Load().Provider
}

// Page writes the full document for snap.
func (r *Renderer) Page(w io.Writer, snap panel.Snapshot) error {
	th := r.Theme()
	t, err := r.bind(th)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, baseLayout, r.pageData(th, snap)); err != nil {
		return fmt.Errorf("execute %s: %w", baseLayout, err)
	}
	return nil
}

// Card writes a single item card.
func (r *Renderer) Card(w io.Writer, card model.Card) error {
	t, err := r.bind(r.Theme())
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, component.ItemTag, card); err != nil {
		return fmt.Errorf("execute %s: %w", component.ItemTag, err)
	}
	return nil
}

// Cards maps the snapshot items onto card attributes.
func (r *Renderer) Cards(snap panel.Snapshot) []model.Card {
	return r.cards(r.Theme(), snap.Items)
}

func (r *Renderer) cards(th theme.Provider, items []model.Item) []model.Card {
	cards := make([]model.Card, 0, len(items))
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = th.TitleFromSlug(item.SlugPath)
		}
		card := model.Card{
			Title:       title,
			LastUpdated: panel.FormatTimestamp(item.Updated),
			Description: item.Description,
			Slug:        JoinAsset(r.origin, item.SlugPath),
			Path:        JoinAsset(r.origin, item.LocationPath),
			Additional:  item.Published,
		}
		if item.ImagePath != "" {
			card.Image = JoinAsset(r.origin, item.ImagePath)
		}
		cards = append(cards, card)
	}
	return cards
}

func (r *Renderer) pageData(th theme.Provider, snap panel.Snapshot) model.PageData {
	return model.PageData{
		Heading:     th.Label("heading"),
		Query:       snap.Query,
		State:       string(snap.State),
		Message:     snap.Message,
		Overview:    snap.Overview,
		Cards:       r.cards(th, snap.Items),
		Intro:       th.Intro(),
		ThemeStyle:  th.Style(),
		Locale:      th.Locale().String(),
		AssetOrigin: r.origin,
	}
}

// bind clones the parsed set with functions bound to th. The parsed set
// itself is never executed, so Clone always succeeds on it.
func (r *Renderer) bind(th theme.Provider) (*template.Template, error) {
	t, err := r.templates.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone templates: %w", err)
	}
	return t.Funcs(r.funcs(th)), nil
}

func (r *Renderer) funcs(th theme.Provider) template.FuncMap {
	return template.FuncMap{
		"label": th.Label,
		"date":  panel.FormatTimestamp,
		"asset": func(fragment string) string { return JoinAsset(r.origin, fragment) },
	}
}

// JoinAsset resolves a relative manifest path against origin. Absolute
// http(s) URLs are returned unchanged.
func JoinAsset(origin, fragment string) string {
	if u, err := url.Parse(fragment); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return fragment
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(fragment, "/")
}
