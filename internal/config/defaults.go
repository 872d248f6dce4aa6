package config

// ConfigFile is the default configuration path.
const ConfigFile = ".folio.yml"

// DefaultExcludes are glob patterns never copied into the built site.
var DefaultExcludes = []string{
	"templates/**",
	".git/**",
	"**/.DS_Store",
	".env",
	".folio.yml",
	"*.db",
}

// DefaultPages are the templates of the starter site.
var DefaultPages = []PageConfig{
	{Path: "index.html", Kind: "home"},
	{Path: "work/index.html", Kind: "work"},
	{Path: "publications/index.html", Kind: "publications"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SourceDir: "site",
		OutputDir: "public",
		DataURL:   "assets/data/",
		Data: DataFiles{
			Site:         "site.json",
			Projects:     "projects.json",
			Publications: "publications.json",
		},
		Pages:          append([]PageConfig(nil), DefaultPages...),
		DetailTemplate: "templates/project.html",
		Include:        []string{"**"},
		Exclude:        append([]string(nil), DefaultExcludes...),
		Reveal:         RevealStatic,
		Slideshow: SlideshowConfig{
			GalleryDelayMS: 4500,
			BannerDelayMS:  4200,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
