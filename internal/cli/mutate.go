package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/edit"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
)

// ErrMissingTarget is returned when a shortcut is added without a target
var ErrMissingTarget = errors.Base("a shortcut needs --target")

func NewAddCmd(env **Env) *cobra.Command {
	var (
		folder bool
		target string
		args   string
		icon   string
	)

	cmd := &cobra.Command{
		Use:   "add <folder-path> <name>",
		Short: "Add a shortcut or folder",
		Long: `Add a shortcut or an empty folder to the folder at <folder-path>. An item with
the same name is replaced. Use "" or / for HOME.

Examples:
  launcher add Games Doom --target /usr/games/doom --args "-warp 1"
  launcher add / Work --folder --icon W
  launcher add Web Docs --target https://go.dev/doc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			var item model.Item
			if folder {
				item = model.NewFolder(posArgs[1], icon)
			} else {
				if target == "" {
					return errors.WithStack(ErrMissingTarget)
				}
				item = model.NewShortcut(posArgs[1], icon, target, args)
			}
			if model.NameOf(item) == "" {
				return errors.WithStack(model.ErrEmptyName)
			}

			sess := (*env).Session()
			if err := sess.AddTo(session.SplitPath(posArgs[0]), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", model.NameOf(item))
			return nil
		},
	}

	cmd.Flags().BoolVar(&folder, "folder", false, "Add an empty folder instead of a shortcut")
	cmd.Flags().StringVar(&target, "target", "", "Program, file or URL to launch")
	cmd.Flags().StringVar(&args, "args", "", "Arguments passed to the target")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon glyph (default: first letter of the name)")
	cmd.MarkFlagsMutuallyExclusive("folder", "target")
	cmd.MarkFlagsMutuallyExclusive("folder", "args")

	return cmd
}

func NewRenameCmd(env **Env) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <folder-path> <old> <new>",
		Aliases: []string{"mv"},
		Short:   "Rename an item",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			if err := resolveFolder(sess, args[0]); err != nil {
				return err
			}
			if err := sess.Rename(args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[1], args[2])
			return nil
		},
	}
}

func NewEditCmd(env **Env) *cobra.Command {
	var upd edit.Update

	cmd := &cobra.Command{
		Use:   "edit <folder-path> <name>",
		Short: "Change the fields of an item",
		Long: `Change the name, icon, target or args of an item. Only the given flags change.

Examples:
  launcher edit Games Doom --args "-warp 2"
  launcher edit Tools Editor --name Vim --target vim`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			if err := resolveFolder(sess, args[0]); err != nil {
				return err
			}
			item, ok := sess.Current().Get(args[1])
			if !ok {
				return errors.Errorf("%w: %q", edit.ErrNotFound, args[1])
			}

			merged := edit.UpdateOf(item)
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = upd.Name
			}
			if flags.Changed("icon") {
				merged.Icon = upd.Icon
			}
			if flags.Changed("target") {
				merged.Target = upd.Target
			}
			if flags.Changed("args") {
				merged.Args = upd.Args
			}

			updated, err := sess.Update(args[1], merged)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Properties(updated))
			return nil
		},
	}

	cmd.Flags().StringVar(&upd.Name, "name", "", "New name")
	cmd.Flags().StringVar(&upd.Icon, "icon", "", "New icon (empty: first letter of the name)")
	cmd.Flags().StringVar(&upd.Target, "target", "", "New target (shortcuts only)")
	cmd.Flags().StringVar(&upd.Args, "args", "", "New arguments (shortcuts only)")

	return cmd
}

func NewDuplicateCmd(env **Env) *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <folder-path> <name>",
		Aliases: []string{"dup"},
		Short:   "Copy an item under a fresh name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			if err := resolveFolder(sess, args[0]); err != nil {
				return err
			}
			dup, err := sess.Duplicate(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as %s\n", args[1], model.NameOf(dup))
			return nil
		},
	}
}

func NewDeleteCmd(env **Env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <folder-path> <name>",
		Aliases: []string{"rm"},
		Short:   "Delete an item and everything below it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			if err := resolveFolder(sess, args[0]); err != nil {
				return err
			}
			if err := sess.Delete(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[1])
			return nil
		},
	}
}

func NewSubstituteCmd(env **Env) *cobra.Command {
	var fieldName string

	cmd := &cobra.Command{
		Use:     "substitute <old> <new>",
		Aliases: []string{"sub"},
		Short:   "Replace a field value across the whole tree",
		Long: `Replace every exact occurrence of <old> in one field of all shortcuts, or of
all items for --field icon.

Examples:
  launcher substitute --field target /opt/old/game /opt/new/game
  launcher substitute --field icon G 🎮`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := edit.ParseField(fieldName)
			if err != nil {
				return err
			}
			n, err := (*env).Session().Substitute(field, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced %d %s values\n", n, field)
			return nil
		},
	}

	cmd.Flags().StringVar(&fieldName, "field", string(edit.FieldTarget), "Field to replace: target, args or icon")

	return cmd
}
