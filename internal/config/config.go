package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize         = 10
	DefaultSnippetLength    = 100
	DefaultPlaceholderImage = "/assets/placeholder.svg"
	DefaultListenAddr       = ":8080"
	DefaultFetchTimeout     = 10 * time.Second
	DefaultFeedURL          = "posts.json"
	DefaultSiteTitle        = "Blog"
)

// DefaultBlockedImageSubstrings - известные иконки "play" и заглушки,
// которые лента отдаёт вместо настоящей картинки.
var DefaultBlockedImageSubstrings = []string{
	"play_button",
	"play-button",
	"ic_play",
	"/play.png",
	"/play.svg",
	"youtube.com/yts/img",
	"default_thumb",
	"default-thumbnail",
	"no_image",
	"noimage",
	"placeholder",
}

// Config хранит настройки ленты, отрисовки страниц и HTTP-сервера.
type Config struct {
	FeedURL                string   `json:"feed_url"                 yaml:"feed_url"                 toml:"feed_url"                 env:"FEED_URL"`
	PageSize               int      `json:"page_size"                yaml:"page_size"                toml:"page_size"                env:"PAGE_SIZE"`
	SnippetLength          int      `json:"snippet_length"           yaml:"snippet_length"           toml:"snippet_length"           env:"SNIPPET_LENGTH"`
	PlaceholderImage       string   `json:"placeholder_image"        yaml:"placeholder_image"        toml:"placeholder_image"        env:"PLACEHOLDER_IMAGE"`
	BlockedImageSubstrings []string `json:"blocked_image_substrings" yaml:"blocked_image_substrings" toml:"blocked_image_substrings" env:"BLOCKED_IMAGE_SUBSTRINGS"`
	BlockedImagePatterns   []string `json:"blocked_image_patterns"   yaml:"blocked_image_patterns"   toml:"blocked_image_patterns"   env:"BLOCKED_IMAGE_PATTERNS"`
	ListenAddr             string   `json:"listen_addr"              yaml:"listen_addr"              toml:"listen_addr"              env:"LISTEN_ADDR"`
	FetchTimeout           Duration `json:"fetch_timeout"            yaml:"fetch_timeout"            toml:"fetch_timeout"            env:"FETCH_TIMEOUT"`
	Location               string   `json:"location"                 yaml:"location"                 toml:"location"                 env:"LOCATION"`
	SiteTitle              string   `json:"site_title"               yaml:"site_title"               toml:"site_title"               env:"SITE_TITLE"`
	MinifyHTML             bool     `json:"minify_html"              yaml:"minify_html"              toml:"minify_html"              env:"MINIFY_HTML"`
	LogLevel               string   `json:"log_level"                yaml:"log_level"                toml:"log_level"                env:"LOG_LEVEL"`
}

// Defaults возвращает конфигурацию, с которой сервис работает без файла.
func Defaults() *Config {
	return &Config{
		FeedURL:                DefaultFeedURL,
		PageSize:               DefaultPageSize,
		SnippetLength:          DefaultSnippetLength,
		PlaceholderImage:       DefaultPlaceholderImage,
		BlockedImageSubstrings: append([]string(nil), DefaultBlockedImageSubstrings...),
		ListenAddr:             DefaultListenAddr,
		FetchTimeout:           Duration(DefaultFetchTimeout),
		Location:               "UTC",
		SiteTitle:              DefaultSiteTitle,
		MinifyHTML:             true,
		LogLevel:               "info",
	}
}

// Validate проверяет размер страницы, длину сниппета, адрес ленты,
// заглушку и регулярные выражения для картинок.
func (cfg *Config) Validate() error {
	if cfg.PageSize < 1 {
		return errors.New("page size must be ≥ 1")
	}
	if cfg.SnippetLength < 1 {
		return errors.New("snippet length must be ≥ 1")
	}
	if strings.TrimSpace(cfg.FeedURL) == "" {
		return errors.New("feed url is required")
	}
	if strings.TrimSpace(cfg.PlaceholderImage) == "" {
		return errors.New("placeholder image is required")
	}
	if cfg.FetchTimeout < 0 {
		return errors.New("fetch timeout must not be negative")
	}
	for _, p := range cfg.BlockedImagePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid image pattern %q: %w", p, err)
		}
	}
	if _, err := cfg.TimeLocation(); err != nil {
		return fmt.Errorf("invalid location %q: %w", cfg.Location, err)
	}
	return nil
}

// TimeLocation возвращает часовой пояс для дат без смещения.
func (cfg *Config) TimeLocation() (*time.Location, error) {
	if strings.TrimSpace(cfg.Location) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(cfg.Location)
}

// LoadConfig читает файл по пути path (JSON, YAML или TOML по расширению)
// поверх Defaults и применяет переменные окружения BLOG_*.
// Пустой path означает конфигурацию только из умолчаний и окружения.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "BLOG_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, cfg)
	case ".toml":
		err = toml.Unmarshal(raw, cfg)
	default:
		err = json.Unmarshal(raw, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return nil
}
