// Command validate-shortcuts checks a shortcuts file and exits non-zero when
// it has any finding.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/cli"
	"github.com/Bladetrain3r/Magic-Launcher/internal/config"
)

func main() {
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	warningsOK := flag.Bool("warnings-ok", false, "Succeed when there are only warnings")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	path := config.DefaultShortcutsFile()
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	if err := cli.RunValidate(os.Stdout, path, *warningsOK); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		}
		os.Exit(1)
	}
}
