package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/edit"
	"github.com/Bladetrain3r/Magic-Launcher/internal/launch"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/template"
)

var (
	// ErrNotShortcut is returned when running a folder
	ErrNotShortcut = errors.Base("not a shortcut")
	// ErrBroken is returned when a shortcut target cannot be launched
	ErrBroken = errors.Base("broken shortcut")
)

func NewRunCmd(env **Env) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <folder-path> <name>",
		Short: "Launch a shortcut",
		Long: `Launch the shortcut <name> in the folder at <folder-path>, the same way the
interactive launcher does. Placeholders in the arguments are expanded first:

  {{date:%Y-%m-%d}}  {{now}}  {{weekday(1)|date:%A}}  {{clipboard}}
  {{env:NAME}}  {{home}}  {{name}}  {{target}}   pipes: |upper |lower |quote

Examples:
  launcher run Games/Action Doom
  launcher run Tools Notes --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *env
			sess := e.Session()
			if err := resolveFolder(sess, args[0]); err != nil {
				return err
			}
			item, ok := sess.Current().Get(args[1])
			if !ok {
				return errors.Errorf("%w: %q", edit.ErrNotFound, args[1])
			}
			sc, ok := item.(*model.Shortcut)
			if !ok {
				return errors.Errorf("%w: %q", ErrNotShortcut, args[1])
			}

			scArgs, err := template.ShortcutArgs(sc, e.Placeholders())
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(sc.Target+" "+scArgs))
				return nil
			}
			if !launch.Check(sc.Target) {
				return errors.Errorf("%w: %s (%s)", ErrBroken, sc.Name, sc.Target)
			}
			return launch.NewExec(e.Log).Launch(sc.Target, scArgs)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the command line instead of launching")

	return cmd
}
