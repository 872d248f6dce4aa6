package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmesias/folio/internal/db"
	"github.com/lmesias/folio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Starts an HTTP server that renders pages on each request, serves the
JSON API and search, and drives slideshows over a websocket. Data files
are re-read on every request, so edits show up on reload.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured port")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	serveCmd.Flags().Bool("no-search", false, "disable the search database")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	logger := newLogger()
	data, err := newLoaderFromConfig(cfg)
	if err != nil {
		return err
	}

	// Open database.
	var database *db.DB
	if noSearch, _ := cmd.Flags().GetBool("no-search"); !noSearch {
		if cfg.Server.SearchDB != "" {
			database, err = db.Open(cfg.Server.SearchDB)
		} else {
			database, err = db.OpenMemory()
		}
		if err != nil {
			return fmt.Errorf("opening search database: %w", err)
		}
		defer database.Close()
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowAll:       cfg.Server.AllowAllOrigins,
		SourceDir:      cfg.SourceDir,
		Pages:          sitePages(cfg),
		DetailTemplate: cfg.DetailTemplate,
		Exclude:        cfg.Exclude,
		GalleryDelay:   cfg.GalleryDelay(),
		BannerDelay:    cfg.BannerDelay(),
		ReducedMotion:  cfg.Slideshow.ReducedMotion,
	}, database, data, newRendererFromConfig(cfg, data, logger), server.WithLogger(logger))

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Reindex(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search index not built: %v\n", err)
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d/", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "folio %s serving %s at %s\n", Version, cfg.SourceDir, url)
	if database != nil {
		fmt.Fprintf(os.Stderr, "  Search: %s\n", database.Path())
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		server.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
