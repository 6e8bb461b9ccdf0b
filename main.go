package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Bladetrain3r/Magic-Launcher/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
