// Package theme supplies the design tokens, localized labels and intro text
// that the renderer is composed with.
package theme

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v2"
)

//go:embed defaults/theme.md defaults/labels.yaml
var defaults embed.FS

// Document is a theme file: YAML front matter followed by a Markdown intro.
type Document struct {
	Name   string            `yaml:"name"`
	Locale string            `yaml:"locale"`
	Tokens map[string]string `yaml:"tokens"`
	Intro  template.HTML     `yaml:"-"`
}

// Catalog maps a language tag to its labels.
type Catalog map[string]map[string]string

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// ParseDocument reads a theme document. A file without front matter is
// treated as a pure Markdown intro.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	body, err := frontmatter.Parse(r, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse theme front matter: %w", err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("convert theme intro: %w", err)
	}
	// goldmark escapes raw HTML unless WithUnsafe is set.
	doc.Intro = template.HTML(buf.String())
	return &doc, nil
}

// ParseCatalog reads a YAML label catalog.
func ParseCatalog(r io.Reader) (Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return cat, nil
}

// LoadDocument opens path, or the embedded default when path is empty.
func LoadDocument(path string) (*Document, error) {
	f, err := open(path, "defaults/theme.md")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

// LoadCatalog opens path, or the embedded default when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	f, err := open(path, "defaults/labels.yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCatalog(f)
}

func open(path, fallback string) (io.ReadCloser, error) {
	if path == "" {
		return defaults.Open(fallback)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open theme file %s: %w", path, err)
	}
	return f, nil
}
