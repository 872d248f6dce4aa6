package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path        string // Path on disk.
	RelPath     string // Slash-separated path relative to the root directory.
	Size        int64  // File size in bytes.
	ContentHash string // SHA-256 hex digest of the file content.
}

// Config controls the behaviour of the Walk function.
type Config struct {
	RootDir string   // Root directory to walk.
	Include []string // Glob patterns; only matching files are included.
	Exclude []string // Glob patterns; matching files are excluded.
	// Skip lists relative paths (files or directories) left out of the walk,
	// such as page templates or an output directory nested in the source.
	Skip []string
}

// Walk traverses the directory tree rooted at config.RootDir and returns
// metadata for every regular file that passes filtering, in lexical order.
// It respects include/exclude patterns and honours a root .gitignore file.
func Walk(config Config) ([]FileInfo, error) {
	root := config.RootDir
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}

	gitignorePatterns := loadGitignore(filepath.Join(root, ".gitignore"))
	skip := make(map[string]bool, len(config.Skip))
	for _, s := range config.Skip {
		skip[strings.Trim(filepath.ToSlash(filepath.Clean(s)), "/")] = true
	}

	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if shouldExcludeDir(d.Name()) || skip[relPath] || matchesGitignore(relPath+"/", gitignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process regular files.
		if !d.Type().IsRegular() || skip[relPath] {
			return nil
		}
		if matchesGitignore(relPath, gitignorePatterns) {
			return nil
		}
		if !Selected(relPath, config.Include, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		hash, err := HashFile(path)
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:        path,
			RelPath:     relPath,
			Size:        info.Size(),
			ContentHash: hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// HashFile computes the SHA-256 digest of the given file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore checks if a relative path matches any gitignore pattern.
// Directory paths carry a trailing slash so directory-only patterns apply.
func matchesGitignore(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	isDir := strings.HasSuffix(relPath, "/")
	normalized := strings.TrimSuffix(relPath, "/")

	for _, pattern := range patterns {
		// Handle directory-only patterns (trailing /).
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.Trim(pattern, "/")
		if dirOnly && !isDir {
			continue
		}

		if !strings.Contains(pattern, "/") {
			// No slash: match the last path component.
			if matched, _ := filepath.Match(pattern, filepath.Base(normalized)); matched {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, normalized); matched {
			return true
		}
	}
	return false
}
