package import_parser

import (
	"bufio"
	"strings"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// MarkdownParser reads bullet outlines as written by export:
//
//	- [F] Games
//	  - Doom -> `doom -warp 1`
//
// A bullet without [F] or a target is a folder. Headings and other prose are
// skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

func (p *MarkdownParser) Parse(content string) (*model.Folder, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	b := newTreeBuilder()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		text := strings.TrimSpace(line)

		var rest string
		switch {
		case strings.HasPrefix(text, "- "):
			rest = text[2:]
		case strings.HasPrefix(text, "* "):
			rest = text[2:]
		default:
			continue
		}

		item := parseBullet(strings.TrimSpace(rest))
		if item == nil {
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

func parseBullet(text string) model.Item {
	if name, ok := strings.CutPrefix(text, "[F]"); ok {
		return folderItem(strings.TrimSpace(name))
	}

	name, cmd, ok := strings.Cut(text, " -> ")
	if !ok {
		return folderItem(text)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	target, args := splitCommand(strings.Trim(strings.TrimSpace(cmd), "`"))
	return model.NewShortcut(name, "", target, args)
}

func folderItem(name string) model.Item {
	if name == "" {
		return nil
	}
	return model.NewFolder(name, "")
}
