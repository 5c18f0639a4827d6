// Package model holds the site manifest types shared by the panel and the renderer.
package model

// SiteOverview describes the site as a whole. Every field is optional; zero
// values render as omitted UI.
type SiteOverview struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	LogoPath    string `json:"logoPath,omitempty"`
	ThemeName   string `json:"themeName,omitempty"`
	Created     int64  `json:"created,omitempty"`
	Updated     int64  `json:"updated,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
}

// IsZero reports whether no overview field is set.
func (o SiteOverview) IsZero() bool {
	return o == SiteOverview{}
}

// Item is one content entry of a manifest.
type Item struct {
	Title        string `json:"title"`
	Updated      int64  `json:"updated"`
	Description  string `json:"description"`
	ImagePath    string `json:"imagePath,omitempty"`
	SlugPath     string `json:"slugPath"`
	LocationPath string `json:"locationPath"`
	Published    string `json:"published,omitempty"`
}

// Manifest is the overview and item list produced from a single response.
type Manifest struct {
	Overview SiteOverview `json:"overview"`
	Items    []Item       `json:"items"`
}
