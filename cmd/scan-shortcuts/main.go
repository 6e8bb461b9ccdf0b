// Command scan-shortcuts adds a folder of shortcuts for the files found under
// a directory, without starting the launcher.
//
//	scan-shortcuts <dir> [ext] [shortcuts.json]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Bladetrain3r/Magic-Launcher/internal/config"
	"github.com/Bladetrain3r/Magic-Launcher/internal/logging"
	"github.com/Bladetrain3r/Magic-Launcher/internal/scan"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
	"github.com/Bladetrain3r/Magic-Launcher/internal/storage"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <dir> [ext] [shortcuts.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	dir := flag.Arg(0)
	ext := ".exe"
	if flag.NArg() > 1 {
		ext = flag.Arg(1)
	}
	file := config.DefaultShortcutsFile()
	if flag.NArg() > 2 {
		file = flag.Arg(2)
	}

	logger, closer, err := logging.Setup(logging.Options{
		Console:      os.Stderr,
		ConsoleLevel: zerolog.WarnLevel,
		Level:        "warn",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	res, err := scan.Folder(dir, scan.Options{Ext: ext})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(storage.NewJSONStore(file, logger), logger)
	if err := sess.AddTo(nil, res.Folder); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added %d shortcuts to '%s'\n", res.Folder.Len(), res.Name)
}
