package manifest

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/syd18b/mvp-search/internal/model"
)

// Fixed JSON paths into a site manifest.
const (
	pathDescription = "description"
	pathSiteName    = "metadata.site.name"
	pathSiteLogo    = "metadata.site.logo"
	pathSiteCreated = "metadata.site.created"
	pathSiteUpdated = "metadata.site.updated"
	pathThemeName   = "metadata.theme.name"
	pathThemeHex    = "metadata.theme.variables.hexCode"
	pathItems       = "items"

	pathItemTitle       = "title"
	pathItemDescription = "description"
	pathItemSlug        = "slug"
	pathItemLocation    = "location"
	pathItemUpdated     = "metadata.updated"
	pathItemImage       = "metadata.images.0"
	pathItemPublished   = "metadata.published"
)

var (
	errInvalidJSON = errors.New("body is not valid JSON")
	errNotObject   = errors.New("top-level value is not an object")
	errItemsList   = errors.New("items is not a list")
)

// Result is a successfully decoded manifest. Falsy is set when the body was a
// falsy JSON value (null, false, 0, ""), in which case Manifest is empty.
type Result struct {
	Manifest model.Manifest
	Falsy    bool
}

// Parse decodes a manifest body. Missing fields decode to zero values.
func Parse(body []byte) (Result, error) {
	if !gjson.ValidBytes(body) {
		return Result{}, errInvalidJSON
	}
	root := gjson.ParseBytes(body)
	if falsy(root) {
		return Result{Falsy: true}, nil
	}
	if !root.IsObject() {
		return Result{}, errNotObject
	}

	m := model.Manifest{
		Overview: model.SiteOverview{
			Name:        root.Get(pathSiteName).String(),
			Description: root.Get(pathDescription).String(),
			LogoPath:    root.Get(pathSiteLogo).String(),
			ThemeName:   root.Get(pathThemeName).String(),
			Created:     root.Get(pathSiteCreated).Int(),
			Updated:     root.Get(pathSiteUpdated).Int(),
			AccentColor: root.Get(pathThemeHex).String(),
		},
		Items: []model.Item{},
	}

	items := root.Get(pathItems)
	if !items.Exists() || items.Type == gjson.Null {
		return Result{Manifest: m}, nil
	}
	if !items.IsArray() {
		return Result{}, errItemsList
	}
	var skipped int
	items.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			skipped++
			return true
		}
		m.Items = append(m.Items, parseItem(v))
		return true
	})
	if skipped > 0 && len(m.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no entry is an object", errItemsList)
	}
	return Result{Manifest: m}, nil
}

func parseItem(v gjson.Result) model.Item {
	item := model.Item{
		Title:        v.Get(pathItemTitle).String(),
		Description:  v.Get(pathItemDescription).String(),
		SlugPath:     v.Get(pathItemSlug).String(),
		LocationPath: v.Get(pathItemLocation).String(),
		Updated:      v.Get(pathItemUpdated).Int(),
		ImagePath:    v.Get(pathItemImage).String(),
	}
	if p := v.Get(pathItemPublished); p.Exists() {
		item.Published = p.String()
	}
	return item
}

func falsy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return r.Num == 0
	case gjson.String:
		return r.Str == ""
	default:
		return false
	}
}
