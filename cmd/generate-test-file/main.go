package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func main() {
	numItems := flag.Int("items", 1000, "Number of items to generate")
	output := flag.String("output", "large_shortcuts.json", "Output file path")
	depth := flag.Int("depth", 3, "Maximum folder nesting depth")
	flag.Parse()

	if *numItems < 1 {
		fmt.Fprintf(os.Stderr, "items must be at least 1\n")
		os.Exit(1)
	}

	root := generateTree(*numItems, *depth)

	data, err := model.MarshalRoot(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	folders, shortcuts := root.Count()
	fmt.Printf("Generated %d folders and %d shortcuts\n", folders, shortcuts)
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(len(data))/(1024*1024))
}

func generateTree(total int, maxDepth int) *model.Folder {
	root := model.NewRoot()
	remaining := total
	for remaining > 0 {
		fill(root, &remaining, 0, maxDepth)
	}
	return root
}

// fill adds one item to parent, and for a folder keeps filling below it
func fill(parent *model.Folder, remaining *int, depth int, maxDepth int) {
	if *remaining <= 0 {
		return
	}
	index := *remaining
	*remaining--

	if depth >= maxDepth || index%4 != 0 {
		name := fmt.Sprintf("%s %d", programs[index%len(programs)], index)
		target := fmt.Sprintf("/opt/%s/bin/run-%d", categories[index%len(categories)], index)
		args := ""
		if index%3 == 0 {
			args = fmt.Sprintf("--profile %d", index%7)
		}
		parent.Add(model.NewShortcut(name, "", target, args))
		return
	}

	folder := model.NewFolder(fmt.Sprintf("%s %d", categories[index%len(categories)], index), "")
	parent.Add(folder)
	for i := 0; i < childCount(*remaining, maxDepth-depth) && *remaining > 0; i++ {
		fill(folder, remaining, depth+1, maxDepth)
	}
}

func childCount(remaining int, depthLeft int) int {
	if depthLeft == 1 {
		if remaining > 10 {
			return 5
		}
		return remaining / 2
	}
	if remaining > 50 {
		return 3
	}
	return 2
}

var categories = []string{
	"Games", "Tools", "Office", "Graphics", "Audio", "Video",
	"Network", "Development", "System", "Emulators", "Docs",
}

var programs = []string{
	"Editor", "Terminal", "Browser", "Player", "Viewer", "Shell",
	"Compiler", "Debugger", "Mixer", "Mail", "Calculator", "Notes",
	"Backup", "Monitor", "Archive",
}
