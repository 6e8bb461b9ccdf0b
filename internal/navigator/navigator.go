// Package navigator tracks the current location in the launcher tree
package navigator

import (
	"slices"
	"strings"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Home is the breadcrumb label of the root folder
const Home = "HOME"

// Navigator holds the folder names leading from the root to the current folder.
// It never holds item references; the path is resolved against a root on demand.
type Navigator struct {
	path []string
}

// New creates a navigator positioned at the root
func New() *Navigator {
	return &Navigator{}
}

// Path returns a copy of the current path
func (n *Navigator) Path() []string {
	return slices.Clone(n.path)
}

// Depth returns the number of path segments
func (n *Navigator) Depth() int {
	return len(n.path)
}

// AtRoot reports whether the navigator is at HOME
func (n *Navigator) AtRoot() bool {
	return len(n.path) == 0
}

// Descend enters the folder called name inside the current folder. It is a
// no-op, returning false, when name does not exist or is not a folder.
func (n *Navigator) Descend(root *model.Folder, name string) bool {
	current, depth := n.resolve(root)
	if _, ok := current.Subfolder(name); !ok {
		return false
	}
	// a stale tail no longer addresses current, drop it
	n.path = append(n.path[:depth], name)
	return true
}

// Ascend leaves the current folder. It is a no-op at the root.
func (n *Navigator) Ascend() bool {
	if len(n.path) == 0 {
		return false
	}
	n.path = n.path[:len(n.path)-1]
	return true
}

// Reset returns to the root
func (n *Navigator) Reset() {
	n.path = nil
}

// SetPath replaces the current path, e.g. when opening a search result.
// Segments are not checked; Resolve stops at the first one that does not exist.
func (n *Navigator) SetPath(path []string) {
	n.path = slices.Clone(path)
}

// Resolve walks from root along the current path and returns the folder it
// reaches. A segment that is missing or not a folder ends the walk early and the
// last folder reached is returned.
func (n *Navigator) Resolve(root *model.Folder) *model.Folder {
	folder, _ := n.resolve(root)
	return folder
}

// Resolved reports whether every segment of the path resolves to a folder
func (n *Navigator) Resolved(root *model.Folder) bool {
	_, depth := n.resolve(root)
	return depth == len(n.path)
}

func (n *Navigator) resolve(root *model.Folder) (*model.Folder, int) {
	folder := root
	for i, name := range n.path {
		sub, ok := folder.Subfolder(name)
		if !ok {
			return folder, i
		}
		folder = sub
	}
	return folder, len(n.path)
}

// Breadcrumb renders the current path, e.g. "HOME > Games > Action"
func (n *Navigator) Breadcrumb() string {
	return Breadcrumb(n.path)
}

// Breadcrumb renders a path the way the navigator does
func Breadcrumb(path []string) string {
	if len(path) == 0 {
		return Home
	}
	return Home + " > " + strings.Join(path, " > ")
}
