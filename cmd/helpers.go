package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/config"
	"github.com/lmesias/folio/internal/loader"
	"github.com/lmesias/folio/internal/pages"
	"github.com/lmesias/folio/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLoaderFromConfig creates a data loader for the configured documents.
func newLoaderFromConfig(cfg *config.Config) (*loader.Loader, error) {
	base, root := cfg.DataLocation()
	opts := []loader.Option{loader.WithNames(loader.Names{
		Site:         cfg.Data.Site,
		Projects:     cfg.Data.Projects,
		Publications: cfg.Data.Publications,
	})}
	if root != "" {
		opts = append(opts, loader.WithFileRoot(root))
	}
	return loader.New(base, opts...)
}

// newRendererFromConfig creates the page renderer shared by build and serve.
func newRendererFromConfig(cfg *config.Config, data pages.DataSource, logger *log.Logger) *pages.Renderer {
	return pages.NewRenderer(data, pages.Options{
		Owner:         cfg.Owner,
		Reveal:        pages.RevealMode(cfg.Reveal),
		GalleryDelay:  cfg.GalleryDelay(),
		BannerDelay:   cfg.BannerDelay(),
		ReducedMotion: cfg.Slideshow.ReducedMotion,
	}, logger)
}

// sitePages converts the configured pages to generator pages.
func sitePages(cfg *config.Config) []site.Page {
	out := make([]site.Page, 0, len(cfg.Pages))
	for _, p := range cfg.Pages {
		out = append(out, site.Page{Path: p.Path, Kind: pages.Kind(p.Kind)})
	}
	return out
}
