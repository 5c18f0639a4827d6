package theme

import (
	"fmt"
	"html/template"
	"path"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Provider is the theming and localization capability a renderer is built with.
type Provider interface {
	Name() string
	Locale() language.Tag
	Label(key string) string
	Style() template.CSS
	Intro() template.HTML
	TitleFromSlug(slug string) string
}

var (
	tokenName  = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	tokenValue = regexp.MustCompile(`^[^;{}<>\\]*$`)
)

// Theme is the default Provider.
type Theme struct {
	name   string
	locale language.Tag
	labels map[string]string
	style  template.CSS
	intro  template.HTML
}

// New composes a theme from a document and a catalog. locale overrides the
// document locale when non-empty.
func New(doc *Document, cat Catalog, locale string) (*Theme, error) {
	if locale == "" {
		locale = doc.Locale
	}
	requested := language.English
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		requested = tag
	}

	chosen, labels := pickLabels(cat, requested)
	return &Theme{
		name:   doc.Name,
		locale: chosen,
		labels: labels,
		style:  buildStyle(doc.Tokens),
		intro:  doc.Intro,
	}, nil
}

// Load reads both theme files (embedded defaults for empty paths) and composes them.
func Load(documentPath, catalogPath, locale string) (*Theme, error) {
	doc, err := LoadDocument(documentPath)
	if err != nil {
		return nil, err
	}
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	return New(doc, cat, locale)
}

// Default returns the embedded theme in English.
func Default() *Theme {
	t, err := Load("", "", "")
	if err != nil {
		panic(fmt.Sprintf("embedded theme: %v", err))
	}
	return t
}

// pickLabels matches requested against the catalog languages. Labels of the
// match are layered over English so missing keys still resolve.
func pickLabels(cat Catalog, requested language.Tag) (language.Tag, map[string]string) {
	keys := make([]string, 0, len(cat))
	for k := range cat {
		if _, err := language.Parse(k); err == nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		// English first so it is the matcher's fallback.
		if (keys[i] == "en") != (keys[j] == "en") {
			return keys[i] == "en"
		}
		return keys[i] < keys[j]
	})

	labels := make(map[string]string)
	for k, v := range cat["en"] {
		labels[k] = v
	}
	if len(keys) == 0 {
		return requested, labels
	}

	tags := make([]language.Tag, len(keys))
	for i, k := range keys {
		tags[i] = language.MustParse(k)
	}
	_, idx, conf := language.NewMatcher(tags).Match(requested)
	if conf == language.No {
		idx = 0
	}
	for k, v := range cat[keys[idx]] {
		labels[k] = v
	}
	return tags[idx], labels
}

func buildStyle(tokens map[string]string) template.CSS {
	names := make([]string, 0, len(tokens))
	for k := range tokens {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		name := strings.TrimPrefix(k, "--")
		v := strings.TrimSpace(tokens[k])
		if !tokenName.MatchString(name) || !tokenValue.MatchString(v) || v == "" {
			continue
		}
		fmt.Fprintf(&b, "--%s: %s; ", name, v)
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

func (t *Theme) Name() string { return t.name }

func (t *Theme) Locale() language.Tag { return t.locale }

func (t *Theme) Style() template.CSS { return t.style }

func (t *Theme) Intro() template.HTML { return t.intro }

// Label returns the localized label for key, or key itself when unknown.
func (t *Theme) Label(key string) string {
	if v, ok := t.labels[key]; ok {
		return v
	}
	return key
}

// TitleFromSlug derives a display title from the last segment of a slug.
func (t *Theme) TitleFromSlug(slug string) string {
	base := path.Base(strings.Trim(slug, "/"))
	if base == "." || base == "/" {
		return ""
	}
	base = strings.TrimSuffix(base, ".html")
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	// Casers are stateful; build one per call.
	return cases.Title(t.locale).String(base)
}
