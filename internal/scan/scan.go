// Package scan builds a folder of shortcuts from the files found under a
// directory.
package scan

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

var (
	// ErrNoMatches is returned when nothing under the directory matched
	ErrNoMatches = errors.Base("no matching files found")
	// ErrNotDirectory is returned when the scan root is missing or not a directory
	ErrNotDirectory = errors.Base("not a directory")
)

// DefaultSkip lists name fragments that mark installer and crash-reporter noise
var DefaultSkip = []string{"uninstall", "update", "crash"}

// Options tunes a scan
type Options struct {
	// Ext is the file extension to collect, with or without the dot; default .exe
	Ext  string
	Skip []string
}

// Result is a scanned folder ready to be added at the root
type Result struct {
	Name   string
	Folder *model.Folder
}

// Folder scans dir recursively for files with the configured extension and
// returns a folder holding one shortcut per file. Executables produce
// "<dir> Apps", anything else "<dir> Docs".
func Folder(dir string, opts Options) (Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return Result{}, errors.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	ext := opts.Ext
	if ext == "" {
		ext = ".exe"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	skip := opts.Skip
	if skip == nil {
		skip = DefaultSkip
	}

	matches, err := doublestar.Glob(os.DirFS(abs), "**/*"+ext, doublestar.WithFilesOnly())
	if err != nil {
		return Result{}, errors.Errorf("scanning %s: %w", dir, err)
	}
	slices.Sort(matches)

	base := filepath.Base(abs)
	name := base + " Docs"
	if strings.EqualFold(ext, ".exe") {
		name = base + " Apps"
	}
	folder := model.NewFolder(name, model.DefaultIcon(base))

	for _, rel := range matches {
		file := filepath.Base(rel)
		if shouldSkip(file, skip) {
			continue
		}
		label := CleanName(strings.TrimSuffix(file, filepath.Ext(file)))
		if label == "" {
			continue
		}
		folder.Add(model.NewShortcut(label, "", filepath.Join(abs, filepath.FromSlash(rel)), ""))
	}

	if folder.Len() == 0 {
		return Result{}, errors.Errorf("%s: %w", dir, ErrNoMatches)
	}
	return Result{Name: name, Folder: folder}, nil
}

func shouldSkip(file string, skip []string) bool {
	lower := strings.ToLower(file)
	for _, s := range skip {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

var titler = cases.Title(language.English)

// CleanName turns a file stem like "doom_2-launcher" into "Doom 2 Launcher"
func CleanName(stem string) string {
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.TrimSpace(titler.String(stem))
}
