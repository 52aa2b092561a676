package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/myrjola/fitnesspro/internal/contexthelpers"
)

// BaseTemplateData is embedded in the data of every page. base.gohtml uses it for the layout.
type BaseTemplateData struct {
	Theme       string
	CurrentPath string
	HasProfile  bool
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	ctx := r.Context()
	return BaseTemplateData{
		Theme:       contexthelpers.Theme(ctx),
		CurrentPath: contexthelpers.CurrentPath(ctx),
		HasProfile:  contexthelpers.ProfileID(ctx) != 0,
	}
}

// Active reports whether the navigation link to prefix should be highlighted.
func (d BaseTemplateData) Active(prefix string) bool {
	if prefix == "/" {
		return d.CurrentPath == "/"
	}
	return strings.HasPrefix(d.CurrentPath, prefix)
}

// findModuleDir locates the directory containing the go.mod file.
func findModuleDir() (string, error) {
	var (
		dir string
		err error
	)
	dir, err = os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err = os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir { // If we reached the root directory
			break
		}
		dir = parentDir
	}

	return "", os.ErrNotExist
}

// resolveAndVerifyTemplatePath resolves the template path and verifies it.
//
// If the templatePath is empty, it will attempt to find it from the module root.
func resolveAndVerifyTemplatePath(templatePath string) (string, error) {
	var err error
	if templatePath == "" {
		var modulePath string
		if modulePath, err = findModuleDir(); err != nil {
			return "", fmt.Errorf("find module dir: %w", err)
		}
		templatePath = filepath.Join(modulePath, "ui", "templates")
	}
	var stat os.FileInfo
	if stat, err = os.Stat(templatePath); err != nil {
		return "", fmt.Errorf("template path not found %s: %w", templatePath, err)
	}
	if !stat.IsDir() {
		return "", fmt.Errorf("template path is not a directory: %s", templatePath)
	}
	return templatePath, nil
}
