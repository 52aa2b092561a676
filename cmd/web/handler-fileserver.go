package main

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// fileServerHandler serves ui/static. Unknown paths render the not-found page in the visitor's theme.
func (app *application) fileServerHandler() (http.Handler, error) {
	fileRoot := path.Join(".", "ui", "static")
	var err error
	if _, err = os.Stat(fileRoot); os.IsNotExist(err) {
		var dir string
		dir, err = findModuleDir()
		if err != nil {
			return nil, fmt.Errorf("findModuleDir: %w", err)
		}
		fileRoot = path.Join(dir, "ui", "static")
	}
	var stat os.FileInfo
	if stat, err = os.Stat(fileRoot); os.IsNotExist(err) || !stat.IsDir() {
		return nil, fmt.Errorf("file server root %s does not exist or is not a directory", fileRoot)
	}
	fileServer := http.FileServer(http.Dir(fileRoot))
	notFound := noCache(app.sessionManager.LoadAndSave(app.loadProfile(http.HandlerFunc(app.notFound))))

	static := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.requestMetrics(app.logAndTraceRequest(secureHeaders(commonContext(next)))))
	}

	return static(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleanPath := filepath.Clean(r.URL.Path)
		if strings.Contains(cleanPath, "..") {
			notFound.ServeHTTP(w, r)
			return
		}
		if info, statErr := os.Stat(filepath.Join(fileRoot, cleanPath)); statErr != nil || info.IsDir() {
			notFound.ServeHTTP(w, r)
			return
		}
		// The service worker must be revalidated or clients keep an outdated offline cache.
		if cleanPath == "/sw.js" {
			noCache(fileServer).ServeHTTP(w, r)
			return
		}
		cacheForever(fileServer).ServeHTTP(w, r)
	})), nil
}
