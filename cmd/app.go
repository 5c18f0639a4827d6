package cmd

import (
	"fmt"

	"github.com/syd18b/mvp-search/internal/component"
	"github.com/syd18b/mvp-search/internal/config"
	"github.com/syd18b/mvp-search/internal/httpclient"
	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/manifest"
	"github.com/syd18b/mvp-search/internal/panel"
	"github.com/syd18b/mvp-search/internal/render"
	"github.com/syd18b/mvp-search/internal/theme"
)

// app is the wired component graph shared by the commands.
type app struct {
	panel    *panel.Panel
	renderer *render.Renderer
}

// newApp registers the components once and composes the renderer with the
// configured theme.
func newApp(cfg config.Config, log logger.Logger) (*app, error) {
	th, err := loadTheme(cfg)
	if err != nil {
		return nil, err
	}

	registry := component.NewRegistry()
	if err := component.RegisterBuiltins(registry); err != nil {
		return nil, fmt.Errorf("register components: %w", err)
	}

	renderer, err := render.New(registry, th, render.Options{AssetOrigin: cfg.AssetOrigin})
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	httpClient := httpclient.New(httpclient.Config{Timeout: cfg.Fetch.Timeout})
	client := manifest.NewClient(httpClient, cfg.Fetch.MaxBodyBytes, log.With(logger.String("component", "manifest")))

	return &app{
		panel:    panel.New(client, log.With(logger.String("component", component.SearchTag))),
		renderer: renderer,
	}, nil
}

func loadTheme(cfg config.Config) (theme.Provider, error) {
	th, err := theme.Load(cfg.Theme.Document, cfg.Theme.Catalog, cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	return th, nil
}
