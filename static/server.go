package static

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed dist
var dist embed.FS

// Handler serves the embedded form. A path naming an embedded file is served
// as that file; every other path gets index.html, uncached, so a reload after
// an upgrade picks up the new form.
func Handler() http.Handler {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		return http.NotFoundHandler()
	}
	return &ui{files: sub, assets: http.FileServerFS(sub)}
}

type ui struct {
	files  fs.FS
	assets http.Handler
}

func (u *ui) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if name := strings.TrimPrefix(path.Clean(r.URL.Path), "/"); u.isAsset(name) {
		u.assets.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, u.files, "index.html")
}

func (u *ui) isAsset(name string) bool {
	if name == "" || name == "." || name == "index.html" {
		return false
	}
	st, err := fs.Stat(u.files, name)
	return err == nil && !st.IsDir()
}
