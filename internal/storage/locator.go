package storage

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"cv-portfolio/internal/domain"
)

// Locator maps stored blob names to something the fetcher can read: a URL on
// the remote media service when one is configured, otherwise a path under the
// local media root.
type Locator struct {
	root    string
	baseURL string
}

func NewLocator(root, baseURL string) *Locator {
	return &Locator{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Remote reports whether blobs live on the remote media service.
func (l *Locator) Remote() bool { return l.baseURL != "" }

// Root is the local media directory.
func (l *Locator) Root() string { return l.root }

// Locate resolves name. Empty names and names that escape the media root
// yield the zero Resource.
func (l *Locator) Locate(name string) domain.Resource {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Resource{}
	}
	if u, err := url.Parse(name); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return domain.Resource{Name: name, URL: name}
	}
	clean := path.Clean("/" + filepath.ToSlash(name))[1:]
	if clean == "" || clean != strings.TrimPrefix(filepath.ToSlash(name), "/") {
		return domain.Resource{}
	}
	if l.baseURL != "" {
		return domain.Resource{Name: clean, URL: l.baseURL + "/" + clean}
	}
	return domain.Resource{Name: clean, Path: filepath.Join(l.root, filepath.FromSlash(clean))}
}
