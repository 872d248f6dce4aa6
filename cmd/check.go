package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/config"
	"github.com/lmesias/folio/internal/loader"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config, templates and data files",
	Long: `Loads the config and all three data documents and reports problems a
build would hide behind fallback notices: unreadable data, duplicate
project slugs, featured slugs with no project and missing templates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := newLoaderFromConfig(cfg)
		if err != nil {
			return err
		}

		bundle, err := data.LoadAll(cmd.Context())
		if err != nil {
			fmt.Printf("  data: %v\n", err)
			return fmt.Errorf("check failed")
		}

		problems := checkSite(cfg, bundle)
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("check found %d problem(s)", len(problems))
		}
		fmt.Printf("OK: %d projects, %d publications, %d pages\n",
			len(bundle.Projects), len(bundle.Publications), len(cfg.Pages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkSite lists human-readable problems with the loaded site.
func checkSite(cfg *config.Config, b *loader.Bundle) []string {
	var problems []string

	for i, p := range b.Projects {
		switch {
		case p.Slug == "":
			problems = append(problems, fmt.Sprintf("projects[%d] (%q): missing slug", i, p.Title))
		case !catalog.ValidSlug(p.Slug):
			problems = append(problems, fmt.Sprintf("projects[%d] (%q): invalid slug %q", i, p.Title, p.Slug))
		}
	}
	for _, slug := range catalog.DuplicateSlugs(b.Projects) {
		if slug != "" {
			problems = append(problems, fmt.Sprintf("duplicate project slug %q", slug))
		}
	}
	if b.Site != nil {
		for _, slug := range b.Site.FeaturedProjectSlugs {
			if _, err := catalog.BySlug(b.Projects, slug); err != nil {
				problems = append(problems, fmt.Sprintf("featured project %q not found", slug))
			}
		}
	}

	templates := make([]string, 0, len(cfg.Pages)+1)
	for _, p := range cfg.Pages {
		templates = append(templates, p.Path)
	}
	if cfg.DetailTemplate != "" {
		templates = append(templates, cfg.DetailTemplate)
	}
	for _, t := range templates {
		if _, err := os.Stat(filepath.Join(cfg.SourceDir, filepath.FromSlash(t))); err != nil {
			problems = append(problems, fmt.Sprintf("template %s missing from %s", t, cfg.SourceDir))
		}
	}
	return problems
}
