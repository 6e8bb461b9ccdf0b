package import_parser

import (
	"bufio"
	"strings"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// IndentedTextParser reads a plain list where indentation gives nesting:
//
//	Games/
//	  Doom = doom -warp 1
//	Editor = nano
//
// A line ending in "/" is a folder, "name = command" is a shortcut and a
// bare name is a folder. Lines starting with "#" are comments.
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

func (p *IndentedTextParser) Parse(content string) (*model.Folder, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	b := newTreeBuilder()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var item model.Item
		if name, cmd, ok := strings.Cut(text, "="); ok {
			target, args := splitCommand(cmd)
			item = model.NewShortcut(strings.TrimSpace(name), "", target, args)
		} else {
			item = model.NewFolder(strings.TrimSpace(strings.TrimSuffix(text, "/")), "")
		}
		if model.NameOf(item) == "" {
			continue
		}

		if err := b.add(indentWidth(line), item, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.root, nil
}
