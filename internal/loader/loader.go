// Package loader fetches the site's JSON documents.
//
// Every fetch is a single uncached attempt: there is no retry and no timeout
// beyond the caller's context. A non-success status or a body that does not
// decode as JSON fails the call.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lmesias/folio/internal/models"
)

// Default document names, resolved against the loader's base URL.
const (
	DefaultSiteName         = "site.json"
	DefaultProjectsName     = "projects.json"
	DefaultPublicationsName = "publications.json"
)

// StatusError reports a response whose status was not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to load %s: status %d", e.URL, e.StatusCode)
}

// Names maps each document to its file name under the base URL.
type Names struct {
	Site         string
	Projects     string
	Publications string
}

// Loader resolves document names against a base URL and fetches them.
type Loader struct {
	client *http.Client
	base   *url.URL
	names  Names
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client used for fetches.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithNames overrides the document file names. Empty fields keep their defaults.
func WithNames(n Names) Option {
	return func(l *Loader) {
		if n.Site != "" {
			l.names.Site = n.Site
		}
		if n.Projects != "" {
			l.names.Projects = n.Projects
		}
		if n.Publications != "" {
			l.names.Publications = n.Publications
		}
	}
}

// WithFileRoot serves file:// URLs from the given directory, so a base such as
// "file:///assets/data/" reads <root>/assets/data/*.json.
func WithFileRoot(root string) Option {
	return func(l *Loader) {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.RegisterProtocol("file", http.NewFileTransport(http.Dir(root)))
		l.client = &http.Client{Transport: t}
	}
}

// New creates a Loader for documents under base. The base is treated as a
// directory: a missing trailing slash is added.
func New(base string, opts ...Option) (*Loader, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing data base url %q: %w", base, err)
	}
	l := &Loader{
		client: http.DefaultClient,
		base:   u,
		names: Names{
			Site:         DefaultSiteName,
			Projects:     DefaultProjectsName,
			Publications: DefaultPublicationsName,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// URL resolves a document name against the base URL.
func (l *Loader) URL(name string) string {
	return l.base.ResolveReference(&url.URL{Path: name}).String()
}

// Fetch performs one GET of rawURL and decodes the JSON body into v.
func (l *Loader) Fetch(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}

// LoadSite fetches the site metadata document.
func (l *Loader) LoadSite(ctx context.Context) (*models.Site, error) {
	var site models.Site
	if err := l.Fetch(ctx, l.URL(l.names.Site), &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// LoadProjects fetches the project list in document order.
func (l *Loader) LoadProjects(ctx context.Context) ([]models.Project, error) {
	var list models.ProjectList
	if err := l.Fetch(ctx, l.URL(l.names.Projects), &list); err != nil {
		return nil, err
	}
	return list.Projects, nil
}

// LoadPublications fetches the publication list in document order.
func (l *Loader) LoadPublications(ctx context.Context) ([]models.Publication, error) {
	var list models.PublicationList
	if err := l.Fetch(ctx, l.URL(l.names.Publications), &list); err != nil {
		return nil, err
	}
	return list.Publications, nil
}

// LoadHome fetches the site document and the project list concurrently.
// If either fetch fails the whole load fails.
func (l *Loader) LoadHome(ctx context.Context) (*models.Site, []models.Project, error) {
	var (
		site     *models.Site
		projects []models.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		site, err = l.LoadSite(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = l.LoadProjects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return site, projects, nil
}

// Bundle is every document the site uses.
type Bundle struct {
	Site         *models.Site
	Projects     []models.Project
	Publications []models.Publication
}

// LoadAll fetches all three documents concurrently.
func (l *Loader) LoadAll(ctx context.Context) (*Bundle, error) {
	var b Bundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b.Site, err = l.LoadSite(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		b.Projects, err = l.LoadProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		b.Publications, err = l.LoadPublications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}
