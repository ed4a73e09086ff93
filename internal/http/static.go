package http

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"recipebox/internal/storage"
)

// Rule maps a request path to an asset. A Path ending in "/" is a prefix rule
// whose remainder is looked up under the Target directory; any other Path must
// match exactly and serves Target itself.
type Rule struct {
	Path   string
	Target string
}

// DefaultRules lists the site's pages and assets in lookup order.
func DefaultRules() []Rule {
	rules := []Rule{
		{Path: "/", Target: "public"},
		{Path: "/image/", Target: "image"},
	}
	for _, page := range []string{"front.html", "trial.html", "display.html", "fav.html", "recipie.html", "joke.html"} {
		rules = append(rules, Rule{Path: "/" + page, Target: page})
	}
	return append(rules,
		Rule{Path: "/BG.png", Target: "BG.png"},
		Rule{Path: "/fonts/CuteEasterPersonalUse-Wy8nV.ttf", Target: "fonts/CuteEasterPersonalUse-Wy8nV.ttf"},
	)
}

// DefaultDocument is served for any GET no rule resolves.
const DefaultDocument = "index.html"

// Site resolves request paths to static assets.
type Site struct {
	source   storage.Source
	rules    []Rule
	fallback string
}

func NewSite(source storage.Source, rules []Rule, fallback string) *Site {
	return &Site{source: source, rules: rules, fallback: fallback}
}

// Resolve walks the rules in order and returns the first asset that exists,
// then the fallback document. A rule whose asset is missing falls through.
func (s *Site) Resolve(ctx context.Context, reqPath string) (string, []byte, error) {
	for _, rule := range s.rules {
		name, ok := rule.match(reqPath)
		if !ok {
			continue
		}
		data, err := s.source.Fetch(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return name, data, nil
	}

	if s.fallback == "" {
		return "", nil, storage.ErrNotFound
	}
	data, err := s.source.Fetch(ctx, s.fallback)
	if err != nil {
		return "", nil, err
	}
	return s.fallback, data, nil
}

func (r Rule) match(reqPath string) (string, bool) {
	if !strings.HasSuffix(r.Path, "/") {
		return r.Target, reqPath == r.Path
	}
	if !strings.HasPrefix(reqPath, r.Path) {
		return "", false
	}
	rest := strings.TrimPrefix(reqPath, r.Path)
	if rest == "" || strings.HasSuffix(rest, "/") {
		rest += "index.html"
	}
	if !fs.ValidPath(rest) {
		return "", false
	}
	return path.Join(r.Target, rest), true
}

func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	name, data, err := h.site.Resolve(c.Request.Context(), c.Request.URL.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		h.serverError(c, "serve static", err)
		return
	}

	c.Data(http.StatusOK, contentType(name, data), data)
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
