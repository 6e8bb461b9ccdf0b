package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func testTree() *model.Folder {
	root := model.NewRoot()
	games := model.NewFolder("Games", "G")
	action := model.NewFolder("Action", "A")
	action.Add(model.NewShortcut("Doom", "D", "/usr/games/doom", "-warp 1"))
	games.Add(action)
	games.Add(model.NewShortcut("Chess", "C", "gnome-chess", ""))
	root.Add(games)
	root.Add(model.NewShortcut("Editor", "E", "nano", ""))
	root.Add(model.NewShortcut("Placeholder", "P", "", ""))
	return root
}

func TestExportToMarkdown(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "test_output.md")

	err := ToFile(testTree(), outputFile, FormatMarkdown, Options{Title: "Test Shortcuts"})
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expectedContent := "# Test Shortcuts\n\n" +
		"- Editor -> `nano`\n" +
		"- [F] Games\n" +
		"  - [F] Action\n" +
		"    - Doom -> `/usr/games/doom -warp 1`\n" +
		"  - Chess -> `gnome-chess`\n" +
		"- Placeholder\n"

	if string(content) != expectedContent {
		t.Errorf("Output mismatch.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestExportMarkdownDateHeader(t *testing.T) {
	var sb strings.Builder
	now := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	if err := Markdown(&sb, model.NewRoot(), Options{DateFormat: "%Y-%m-%d %H:%M", Now: now}); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}

	expected := "# Shortcuts\n\nExported 2024-03-09 14:05\n\n"
	if sb.String() != expected {
		t.Errorf("Expected %q, got %q", expected, sb.String())
	}
}

func TestExportYAML(t *testing.T) {
	var sb strings.Builder
	if err := YAML(&sb, testTree()); err != nil {
		t.Fatalf("YAML failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}

	root, err := model.DecodeRoot(decoded)
	if err != nil {
		t.Fatalf("exported YAML is not a valid tree: %v", err)
	}
	games, _ := root.Subfolder("Games")
	if games == nil {
		t.Fatalf("expected Games folder")
	}
	action, _ := games.Subfolder("Action")
	if action == nil {
		t.Fatalf("expected Action folder")
	}
	doomItem, _ := action.Get("Doom")
	doom, ok := doomItem.(*model.Shortcut)
	if !ok {
		t.Fatalf("expected Doom shortcut under Games/Action")
	}
	if doom.Target != "/usr/games/doom" || doom.Args != "-warp 1" {
		t.Errorf("unexpected shortcut fields: %+v", doom)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q): expected ErrUnknownFormat, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.expected)
		}
	}
}
