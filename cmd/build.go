package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmesias/folio/internal/progress"
	"github.com/lmesias/folio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site",
	Long: `Renders every configured page and one page per project into the output
directory, copies the remaining source files and writes search-index.json.
Missing or broken data files do not fail the build: pages carry their
fallback notices instead.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	logger := newLogger()
	data, err := newLoaderFromConfig(cfg)
	if err != nil {
		return err
	}

	gen := &site.Generator{
		SourceDir:      cfg.SourceDir,
		OutputDir:      cfg.OutputDir,
		Pages:          sitePages(cfg),
		DetailTemplate: cfg.DetailTemplate,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		Data:           data,
		Renderer:       newRendererFromConfig(cfg, data, logger),
		Reporter:       progress.NewReporter(os.Stderr),
		Logger:         logger,
	}

	res, err := gen.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site built: %s (%d pages, %d project pages, %d files copied, %d unchanged, %d search entries)\n",
		cfg.OutputDir, res.Pages, res.Projects, res.Assets, res.Unchanged, res.Indexed)
	return nil
}
