package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	th := Default()
	assert.Equal(t, "ddd", th.Name())
	assert.Equal(t, "en", th.Locale().String())
	assert.Equal(t, "Site Analyzer", th.Label("heading"))
	assert.Contains(t, string(th.Style()), "--ddd-theme-primary: #001e44;")
	assert.Contains(t, string(th.Intro()), "<strong>HAX site</strong>")
}

func TestParseDocument(t *testing.T) {
	src := `---
name: night
locale: es
tokens:
  "--ddd-theme-accent": "#000"
  bad name: "red"
  ddd-evil: "red; } body { display:none"
---
# Hello

<script>alert(1)</script>
`
	doc, err := ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "night", doc.Name)
	assert.Equal(t, "es", doc.Locale)
	assert.Contains(t, string(doc.Intro), `<h1 id="hello">Hello</h1>`)
	assert.NotContains(t, string(doc.Intro), "<script>")

	style := buildStyle(doc.Tokens)
	assert.Equal(t, "--ddd-theme-accent: #000;", string(style))
}

func TestParseDocumentWithoutFrontMatter(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader("just *text*"))
	require.NoError(t, err)
	assert.Empty(t, doc.Name)
	assert.Contains(t, string(doc.Intro), "<em>text</em>")
}

func TestLocaleMatching(t *testing.T) {
	cat := Catalog{
		"en": {"heading": "Site Analyzer", "clear": "Clear"},
		"es": {"heading": "Analizador de sitios"},
	}
	doc := &Document{Locale: "es"}

	es, err := New(doc, cat, "")
	require.NoError(t, err)
	assert.Equal(t, "Analizador de sitios", es.Label("heading"))
	assert.Equal(t, "Clear", es.Label("clear"), "falls back to English")
	assert.Equal(t, "unknown", es.Label("unknown"), "falls back to the key")

	regional, err := New(doc, cat, "es-MX")
	require.NoError(t, err)
	assert.Equal(t, "Analizador de sitios", regional.Label("heading"))

	unmatched, err := New(doc, cat, "ja")
	require.NoError(t, err)
	assert.Equal(t, "Site Analyzer", unmatched.Label("heading"))

	_, err = New(doc, cat, "not a locale!!")
	assert.Error(t, err)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "theme.md")
	catPath := filepath.Join(dir, "labels.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("---\nname: file\n---\nhi\n"), 0o600))
	require.NoError(t, os.WriteFile(catPath, []byte("en:\n  heading: From File\n"), 0o600))

	th, err := Load(docPath, catPath, "")
	require.NoError(t, err)
	assert.Equal(t, "file", th.Name())
	assert.Equal(t, "From File", th.Label("heading"))

	_, err = Load(filepath.Join(dir, "missing.md"), "", "")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(catPath, []byte("en: [broken"), 0o600))
	_, err = Load(docPath, catPath, "")
	assert.Error(t, err)
}

func TestTitleFromSlug(t *testing.T) {
	th := Default()
	tests := map[string]string{
		"about/our-team":      "Our Team",
		"/posts/hello_world/": "Hello World",
		"page.html":           "Page",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, th.TitleFromSlug(in), in)
	}
}
