package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/export"
	import_parser "github.com/Bladetrain3r/Magic-Launcher/internal/import"
	"github.com/Bladetrain3r/Magic-Launcher/internal/scan"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
)

func NewScanCmd(env **Env) *cobra.Command {
	var (
		ext  string
		skip []string
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Add a folder of shortcuts for files found under a directory",
		Long: `Walk <dir> recursively and add one shortcut per matching file, in a new folder
at HOME named "<dir> Apps" for executables or "<dir> Docs" otherwise.

Files whose name mentions uninstall, update or crash are skipped.

Examples:
  launcher scan ~/Games                  # Collect .exe files
  launcher scan ~/Manuals --ext .pdf     # Collect documents`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := scan.Folder(args[0], scan.Options{Ext: ext, Skip: skip})
			if err != nil {
				return err
			}
			if err := (*env).Session().AddTo(nil, res.Folder); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d shortcuts to '%s'\n", res.Folder.Len(), res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", ".exe", "File extension to collect")
	cmd.Flags().StringSliceVar(&skip, "skip", slices.Clone(scan.DefaultSkip), "Skip files whose name contains any of these")

	return cmd
}

func NewExportCmd(env **Env) *cobra.Command {
	var (
		formatName string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "export <out>",
		Short: "Export the tree as Markdown or YAML",
		Long: `Write the whole tree to <out>, or to standard output when <out> is "-".

Examples:
  launcher export shortcuts.md
  launcher export --format yaml -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			e := *env
			opts := export.Options{Title: title, DateFormat: e.Config.ExportDateFormat}
			root := e.Session().Root()

			if args[0] == "-" {
				return export.Write(cmd.OutOrStdout(), root, format, opts)
			}
			if err := export.ToFile(root, args[0], format, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(export.FormatMarkdown), "Output format: markdown or yaml")
	cmd.Flags().StringVar(&title, "title", "", "Markdown heading (default \"Shortcuts\")")

	return cmd
}

func NewSettingsCmd(env **Env) *cobra.Command {
	return &cobra.Command{
		Use:   "settings [key [value]]",
		Short: "Show or change the user settings file",
		Long: `Settings are a flat JSON object kept next to the shortcuts file. Values given
here are stored as strings, or as numbers and booleans when they parse as one.

Examples:
  launcher settings                   # Print all settings
  launcher settings window_width      # Print one value
  launcher settings window_width 640  # Set a value`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := (*env).Settings()
			settings := store.Load()
			out := cmd.OutOrStdout()

			switch len(args) {
			case 0:
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case 1:
				if v, ok := settings[args[0]]; ok {
					fmt.Fprintln(out, v)
				}
			case 2:
				settings[args[0]] = settingValue(args[1])
				if err := store.Save(settings); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func settingValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func NewConfigCmd(env **Env) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key [value]]",
		Short: "Show or change the [settings] table of config.toml",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := (*env).Config
			out := cmd.OutOrStdout()

			switch len(args) {
			case 0:
				all := cfg.GetAll()
				keys := make([]string, 0, len(all))
				for k := range all {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s = %s\n", k, all[k])
				}
			case 1:
				fmt.Fprintln(out, cfg.Get(args[0]))
			case 2:
				cfg.Settings[args[0]] = args[1]
				return cfg.Save()
			}
			return nil
		},
	}
}

func NewImportCmd(env **Env) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "import <file> [folder-path]",
		Short: "Merge items from a Markdown, text, YAML or JSON file",
		Long: `Read a tree from <file> and add its top-level items to the folder at
[folder-path] (HOME by default). Items with a taken name are replaced.

The format follows the extension unless --format is given: .md is the
outline written by export, .yaml/.yml and .json use the shortcuts file keys,
anything else is an indented list of "Folder/" and "Name = command" lines.

Examples:
  launcher import backup.yaml
  launcher import games.txt Games`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := import_parser.ParseFormat(formatName)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WithStack(err)
			}
			src, err := import_parser.ImportFile(args[0], string(data), format)
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			n, err := (*env).Session().Merge(session.SplitPath(path), src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "auto", "Input format: auto, markdown, indented, yaml or json")

	return cmd
}
