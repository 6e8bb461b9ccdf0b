package export

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// ErrUnknownFormat is returned for an export format other than markdown or yaml
var ErrUnknownFormat = errors.Base("unknown export format")

// Format selects the export encoding
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts "markdown", "md", "yaml" and "yml"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Options controls the export header
type Options struct {
	Title string
	// DateFormat is a strftime layout for the "Exported" line; empty omits it
	DateFormat string
	Now        time.Time
}

// ToFile writes the tree to filePath in the given format
func ToFile(root *model.Folder, filePath string, format Format, opts Options) error {
	var sb strings.Builder
	if err := Write(&sb, root, format, opts); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return errors.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// Write renders the tree to w in the given format
func Write(w io.Writer, root *model.Folder, format Format, opts Options) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, root, opts)
	case FormatYAML:
		return YAML(w, root)
	}
	return errors.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Markdown writes the tree as a bullet list. Folders are marked with [F],
// shortcuts show their target and arguments.
func Markdown(w io.Writer, root *model.Folder, opts Options) error {
	var sb strings.Builder

	title := opts.Title
	if title == "" {
		title = "Shortcuts"
	}
	sb.WriteString("# " + title + "\n\n")
	if opts.DateFormat != "" {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		sb.WriteString("Exported " + strftime.Format(opts.DateFormat, now) + "\n\n")
	}

	for _, name := range root.Names() {
		writeItemAsMarkdown(&sb, root.Children[name], 0)
	}

	_, err := io.WriteString(w, sb.String())
	return errors.WithStack(err)
}

// writeItemAsMarkdown writes an item and its children with two spaces of
// indentation per level.
func writeItemAsMarkdown(sb *strings.Builder, item model.Item, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("- ")

	switch it := item.(type) {
	case *model.Folder:
		sb.WriteString("[F] " + it.Name + "\n")
		for _, name := range it.Names() {
			writeItemAsMarkdown(sb, it.Children[name], depth+1)
		}
	case *model.Shortcut:
		sb.WriteString(it.Name)
		if it.Target != "" {
			sb.WriteString(" -> `" + it.Target)
			if it.Args != "" {
				sb.WriteString(" " + it.Args)
			}
			sb.WriteString("`")
		}
		sb.WriteString("\n")
	}
}

// YAML writes the tree using the same keys as the JSON file
func YAML(w io.Writer, root *model.Folder) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(model.EncodeRoot(root)); err != nil {
		return errors.Errorf("failed to encode yaml: %w", err)
	}
	return errors.WithStack(enc.Close())
}
