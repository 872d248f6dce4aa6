package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectSourceDir returns the first directory in the working directory that
// already holds a home page template.
func detectSourceDir() string {
	for _, dir := range []string{"site", "src", "www", "."} {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err == nil {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Owner name, used in document titles.
	ownerPrompt := promptui.Prompt{
		Label:   "Site owner (shown in page titles)",
		Default: os.Getenv("USER"),
	}
	owner, err := ownerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	cfg.Owner = strings.TrimSpace(owner)

	// 2. Source directory.
	sourcePrompt := promptui.Prompt{
		Label:   "Source directory (templates, assets and data)",
		Default: detectSourceDir(),
	}
	sourceDir, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	}
	cfg.SourceDir = sourceDir

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: cfg.OutputDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("output directory is required")
			}
			if filepath.Clean(s) == filepath.Clean(cfg.SourceDir) {
				return fmt.Errorf("output directory must differ from the source directory")
			}
			return nil
		},
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 4. Reveal mode.
	revealPrompt := promptui.Select{
		Label: "Reveal-on-scroll elements",
		Items: []string{
			"static   — reveal everything at build time",
			"deferred — leave it to a client-side observer",
		},
	}
	revealIdx, _, err := revealPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("reveal selection: %w", err)
	}
	cfg.Reveal = []RevealMode{RevealStatic, RevealDeferred}[revealIdx]

	// 5. Preview server port.
	portPrompt := promptui.Prompt{
		Label:   "Preview server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("enter a port between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
