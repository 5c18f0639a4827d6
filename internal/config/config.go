package config

import (
	"time"

	"github.com/syd18b/mvp-search/internal/logger"
)

// Config is the decoded application configuration.
type Config struct {
	AssetOrigin string        `mapstructure:"assetOrigin"`
	OutputDir   string        `mapstructure:"outputDir"`
	Locale      string        `mapstructure:"locale"`
	Theme       ThemeConfig   `mapstructure:"theme"`
	Server      ServerConfig  `mapstructure:"server"`
	Fetch       FetchConfig   `mapstructure:"fetch"`
	Log         logger.Config `mapstructure:"log"`
}

// ThemeConfig points at optional theme files. Empty paths use the embedded defaults.
type ThemeConfig struct {
	Document string `mapstructure:"document"`
	Catalog  string `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

type FetchConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"maxBodyBytes"`
}

// Defaults used by the command layer when nothing else sets a key.
const (
	DefaultAssetOrigin  = "https://haxtheweb.org/"
	DefaultOutputDir    = "public"
	DefaultPort         = 1313
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)
