package model

import "html/template"

// Card carries the attributes of one rendered item card. Links are absolute.
type Card struct {
	Title       string
	LastUpdated string
	Description string
	Image       string
	Slug        string
	Path        string
	Additional  string
}

// PageData is the template context for a full panel page.
type PageData struct {
	Heading     string
	Query       string
	State       string
	Message     string
	Overview    SiteOverview
	Cards       []Card
	Intro       template.HTML
	ThemeStyle  template.CSS
	Locale      string
	AssetOrigin string
}
