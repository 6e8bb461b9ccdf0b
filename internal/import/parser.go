// Package import_parser reads launcher trees from hand-written or exported
// files: the Markdown outline written by export, an indented text list, YAML
// and the JSON file format itself.
package import_parser

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// ImportFormat represents the file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatYAML         ImportFormat = "yaml"
	FormatJSON         ImportFormat = "json"
	FormatAuto         ImportFormat = "auto" // detect from extension
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name
	ErrUnsupportedFormat = errors.Base("unsupported import format")
	// ErrUnderShortcut is returned when a line is nested below a shortcut
	ErrUnderShortcut = errors.Base("item nested under a shortcut")
)

// Parser turns file content into a root folder
type Parser interface {
	Parse(content string) (*model.Folder, error)
	Name() string
}

// ParseFormat parses a format name; "" means auto
func ParseFormat(s string) (ImportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "indented", "text", "txt":
		return FormatIndentedText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ImportFile parses content in the given format. FormatAuto picks the
// format from filename.
func ImportFile(filename, content string, format ImportFormat) (*model.Folder, error) {
	if format == FormatAuto {
		format = DetectFormat(filename)
	}

	var parser Parser
	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	case FormatYAML:
		parser = &YAMLParser{}
	case FormatJSON:
		parser = &JSONParser{}
	default:
		return nil, errors.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	root, err := parser.Parse(content)
	if err != nil {
		return nil, errors.Errorf("parse error (%s): %w", parser.Name(), err)
	}
	return root, nil
}

// DetectFormat picks the format from the file extension, defaulting to
// indented text
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatIndentedText
}

// YAMLParser reads the YAML written by export, which uses the JSON keys
type YAMLParser struct{}

func (p *YAMLParser) Name() string {
	return "YAML"
}

func (p *YAMLParser) Parse(content string) (*model.Folder, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(content), &raw); err != nil {
		return nil, errors.WithStack(err)
	}
	if raw == nil {
		return model.NewRoot(), nil
	}
	return model.DecodeRoot(raw)
}

// JSONParser reads the shortcuts file format
type JSONParser struct{}

func (p *JSONParser) Name() string {
	return "JSON"
}

func (p *JSONParser) Parse(content string) (*model.Folder, error) {
	return model.ParseRoot([]byte(content))
}

// treeBuilder attaches items to the folder of the nearest shallower line
type treeBuilder struct {
	root  *model.Folder
	stack []level
}

type level struct {
	indent int
	item   model.Item
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{root: model.NewRoot()}
}

func (b *treeBuilder) add(indent int, item model.Item, lineNo int) error {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].indent >= indent {
		b.stack = b.stack[:len(b.stack)-1]
	}

	parent := b.root
	if len(b.stack) > 0 {
		folder, ok := b.stack[len(b.stack)-1].item.(*model.Folder)
		if !ok {
			return errors.Errorf("line %d: %w", lineNo, ErrUnderShortcut)
		}
		parent = folder
	}
	parent.Add(item)
	b.stack = append(b.stack, level{indent: indent, item: item})
	return nil
}

// indentWidth counts leading whitespace, a tab counting as two spaces
func indentWidth(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			indent += 2
		case ' ':
			indent++
		default:
			return indent
		}
	}
	return indent
}

// splitCommand splits a command line into target and args at the first
// unquoted space. A quoted target keeps its spaces.
func splitCommand(cmdline string) (string, string) {
	cmdline = strings.TrimSpace(cmdline)
	if q := cmdline[:min(1, len(cmdline))]; q == `"` || q == "'" {
		if end := strings.Index(cmdline[1:], q); end >= 0 {
			return cmdline[1 : end+1], strings.TrimSpace(cmdline[end+2:])
		}
	}
	target, args, _ := strings.Cut(cmdline, " ")
	return target, strings.TrimSpace(args)
}
