package config

// RevealMode decides whether .reveal elements are revealed at build time or
// left for a client-side observer.
type RevealMode string

const (
	RevealStatic   RevealMode = "static"
	RevealDeferred RevealMode = "deferred"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	SourceDir      string          `yaml:"source_dir" koanf:"source_dir"`
	OutputDir      string          `yaml:"output_dir" koanf:"output_dir"`
	DataURL        string          `yaml:"data_url" koanf:"data_url"`
	Data           DataFiles       `yaml:"data" koanf:"data"`
	Owner          string          `yaml:"owner" koanf:"owner"`
	Pages          []PageConfig    `yaml:"pages" koanf:"pages"`
	DetailTemplate string          `yaml:"detail_template" koanf:"detail_template"`
	Include        []string        `yaml:"include" koanf:"include"`
	Exclude        []string        `yaml:"exclude" koanf:"exclude"`
	Reveal         RevealMode      `yaml:"reveal" koanf:"reveal"`
	Slideshow      SlideshowConfig `yaml:"slideshow" koanf:"slideshow"`
	Server         ServerConfig    `yaml:"server" koanf:"server"`
}

// DataFiles names the JSON documents under DataURL.
type DataFiles struct {
	Site         string `yaml:"site" koanf:"site"`
	Projects     string `yaml:"projects" koanf:"projects"`
	Publications string `yaml:"publications" koanf:"publications"`
}

// PageConfig binds a template to a page controller.
type PageConfig struct {
	Path string `yaml:"path" koanf:"path"`
	Kind string `yaml:"kind" koanf:"kind"`
}

// SlideshowConfig holds slideshow timing.
type SlideshowConfig struct {
	GalleryDelayMS int  `yaml:"gallery_delay_ms" koanf:"gallery_delay_ms"`
	BannerDelayMS  int  `yaml:"banner_delay_ms" koanf:"banner_delay_ms"`
	ReducedMotion  bool `yaml:"reduced_motion" koanf:"reduced_motion"`
}

// ServerConfig holds settings for folio serve.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SearchDB        string `yaml:"search_db" koanf:"search_db"`
}
