package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lmesias/folio/internal/pages"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: FOLIO_SERVER__PORT sets server.port.
const EnvPrefix = "FOLIO_"

// Load reads configuration from the given YAML file, then a .env file next
// to it, then overlays environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Variables already set in the environment win over the .env file.
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps FOLIO_SLIDESHOW__REDUCED_MOTION to slideshow.reduced_motion.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if filepath.Clean(c.SourceDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output_dir must differ from source_dir")
	}

	if c.DataURL == "" {
		return fmt.Errorf("data_url is required")
	}
	if _, err := url.Parse(c.DataURL); err != nil {
		return fmt.Errorf("invalid data_url %q: %w", c.DataURL, err)
	}
	if c.Data.Site == "" || c.Data.Projects == "" || c.Data.Publications == "" {
		return fmt.Errorf("data.site, data.projects and data.publications are required")
	}

	seen := make(map[string]bool)
	for i, p := range c.Pages {
		if p.Path == "" {
			return fmt.Errorf("pages[%d]: path is required", i)
		}
		if !pages.ValidKind(pages.Kind(p.Kind)) || p.Kind == string(pages.KindProject) {
			return fmt.Errorf("pages[%d]: invalid kind %q: must be one of home, work, publications, static", i, p.Kind)
		}
		if seen[p.Path] {
			return fmt.Errorf("pages[%d]: duplicate path %q", i, p.Path)
		}
		seen[p.Path] = true
	}

	for _, pat := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid glob pattern %q", pat)
		}
	}

	if c.Reveal != RevealStatic && c.Reveal != RevealDeferred {
		return fmt.Errorf("invalid reveal %q: must be one of static, deferred", c.Reveal)
	}

	if c.Slideshow.GalleryDelayMS <= 0 || c.Slideshow.BannerDelayMS <= 0 {
		return fmt.Errorf("slideshow delays must be positive")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	return nil
}

// DataLocation returns the base URL of the data documents and, for local
// data, the directory file:// URLs resolve against. A data_url without a
// scheme is a path inside the source directory.
func (c *Config) DataLocation() (base, fileRoot string) {
	if u, err := url.Parse(c.DataURL); err == nil && u.Scheme != "" {
		return c.DataURL, ""
	}
	p := path.Clean("/" + filepath.ToSlash(c.DataURL))
	return "file://" + p + "/", c.SourceDir
}

// GalleryDelay returns the gallery autoplay delay.
func (c *Config) GalleryDelay() time.Duration {
	return time.Duration(c.Slideshow.GalleryDelayMS) * time.Millisecond
}

// BannerDelay returns the banner autoplay delay.
func (c *Config) BannerDelay() time.Duration {
	return time.Duration(c.Slideshow.BannerDelayMS) * time.Millisecond
}
