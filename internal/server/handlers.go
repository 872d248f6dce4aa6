package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/catalog"
	"github.com/lmesias/folio/internal/models"
	"github.com/lmesias/folio/internal/pages"
	"github.com/lmesias/folio/internal/site"
	"github.com/lmesias/folio/internal/walker"
)

const (
	defaultSearchLimit = 8
	maxSearchLimit     = 50
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) registerAPI(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/projects/{slug}", s.handleProject)
		r.Get("/publications", s.handlePublications)
		r.Get("/search", s.handleSearch)
		r.Post("/reindex", s.handleReindex)
	})
	r.Get("/"+site.SearchIndexFile, s.handleSearchIndex)
}

func (s *Server) loadFailed(w http.ResponseWriter, what string, err error) {
	s.logger.WithError(err).WithField("data", what).Error("loading data")
	writeError(w, http.StatusBadGateway, "could not load "+what)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.data.LoadProjects(r.Context())
	if err != nil {
		s.loadFailed(w, "projects", err)
		return
	}
	q := r.URL.Query()
	out := catalog.FilterProjects(catalog.SortProjects(projects), catalog.ProjectFilter{
		Tag:   q.Get("tag"),
		Query: q.Get("q"),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": out,
		"tags":     catalog.ProjectTags(projects),
	})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	slug := urlParam(r, "slug")
	projects, err := s.data.LoadProjects(r.Context())
	if err != nil {
		s.loadFailed(w, "projects", err)
		return
	}
	p, err := catalog.BySlug(projects, slug)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Project *models.Project  `json:"project"`
		Related []catalog.Scored `json:"related"`
	}{p, nonNil(catalog.Related(projects, *p, catalog.RelatedLimit))})
}

func nonNil(s []catalog.Scored) []catalog.Scored {
	if s == nil {
		return []catalog.Scored{}
	}
	return s
}

func (s *Server) handlePublications(w http.ResponseWriter, r *http.Request) {
	pubs, err := s.data.LoadPublications(r.Context())
	if err != nil {
		s.loadFailed(w, "publications", err)
		return
	}
	q := r.URL.Query()
	sorted := catalog.SortPublications(pubs)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"publications": catalog.FilterPublications(sorted, catalog.PublicationFilter{
			Type:  q.Get("type"),
			Year:  q.Get("year"),
			Query: q.Get("q"),
		}),
		"types": catalog.PublicationTypes(sorted),
		"years": catalog.PublicationYears(sorted),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "search is not configured")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	hits, err := s.db.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.WithError(err).Error("search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"query": query, "results": hits})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "search is not configured")
		return
	}
	if err := s.Reindex(r.Context()); err != nil {
		s.logger.WithError(err).Error("reindex failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	projects, pubs, err := s.db.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"projects": projects, "publications": pubs})
}

// handleSearchIndex serves the same index a build writes, computed from the
// current data.
func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	projects, err := s.data.LoadProjects(r.Context())
	if err != nil {
		s.loadFailed(w, "projects", err)
		return
	}
	pubs, err := s.data.LoadPublications(r.Context())
	if err != nil {
		s.loadFailed(w, "publications", err)
		return
	}
	writeJSON(w, http.StatusOK, site.BuildSearchIndex(projects, pubs))
}

// pageRoutes maps a template path to the URLs serving it: the file itself
// and, for index.html, its directory.
func pageRoutes(p string) []string {
	p = "/" + strings.TrimPrefix(p, "/")
	routes := []string{p}
	if path.Base(p) == "index.html" {
		routes = append(routes, strings.TrimSuffix(p, "index.html"))
	}
	return routes
}

func (s *Server) registerPages(r chi.Router) {
	for _, p := range s.cfg.Pages {
		h := s.pageHandler(p)
		for _, route := range pageRoutes(p.Path) {
			r.Get(route, h)
			// Relative links need the trailing slash.
			if dir := strings.TrimSuffix(route, "/"); strings.HasSuffix(route, "/") && dir != "" {
				r.Get(dir, redirectTo(route))
			}
		}
	}
	if s.cfg.DetailTemplate != "" {
		r.Get("/work/{slug}/", s.handleProjectPage)
		r.Get("/work/{slug}/index.html", s.handleProjectPage)
		r.Get("/work/{slug}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		})
	}
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dst := target
		if r.URL.RawQuery != "" {
			dst += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, dst, http.StatusMovedPermanently)
	}
}

func viewFor(r *http.Request, p string) pages.View {
	q := r.URL.Query()
	return pages.View{
		Path:  p,
		Tag:   q.Get("tag"),
		Query: q.Get("q"),
		Type:  q.Get("type"),
		Year:  q.Get("year"),
	}
}

func (s *Server) pageHandler(p site.Page) http.HandlerFunc {
	src := filepath.Join(s.cfg.SourceDir, filepath.FromSlash(p.Path))
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, src, p.Kind, viewFor(r, p.Path))
	}
}

func (s *Server) handleProjectPage(w http.ResponseWriter, r *http.Request) {
	slug := urlParam(r, "slug")
	if !catalog.ValidSlug(slug) {
		http.NotFound(w, r)
		return
	}
	view := viewFor(r, site.ProjectPath(slug))
	view.Slug = slug
	src := filepath.Join(s.cfg.SourceDir, filepath.FromSlash(s.cfg.DetailTemplate))
	s.renderPage(w, r, src, pages.KindProject, view)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, src string, kind pages.Kind, view pages.View) {
	body, err := site.RenderFile(r.Context(), s.renderer, src, kind, view)
	if err != nil {
		s.logger.WithFields(log.Fields{"template": src, "path": r.URL.Path}).WithError(err).Error("rendering page")
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(body)
}

// staticHandler serves source files, hiding templates and excluded paths.
func (s *Server) staticHandler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.SourceDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if rel != "" && (rel == s.cfg.DetailTemplate || !walker.Selected(rel, nil, s.cfg.Exclude)) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
