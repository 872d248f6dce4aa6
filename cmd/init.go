package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmesias/folio/internal/config"
	"github.com/lmesias/folio/internal/site"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize folio configuration and a starter site",
	Long: `Runs an interactive wizard to configure folio, writes .folio.yml and
scaffolds a starter site (templates, stylesheet and sample data) into
the source directory. Existing files are kept unless --force is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		skip, _ := cmd.Flags().GetBool("no-scaffold")

		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}

		written, err := site.Scaffold(cfg.SourceDir, cfg.Owner, force)
		if err != nil {
			return fmt.Errorf("scaffolding site: %w", err)
		}
		for _, f := range written {
			fmt.Printf("  created %s\n", f)
		}
		fmt.Printf("Starter site written to %s (%d files). Run `folio serve` to preview it.\n", cfg.SourceDir, len(written))
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite existing starter files")
	initCmd.Flags().Bool("no-scaffold", false, "only write the config file")
	rootCmd.AddCommand(initCmd)
}
