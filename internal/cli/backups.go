package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/diff"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/storage"
)

// ErrNoBackup is returned when a backup number does not exist
var ErrNoBackup = errors.Base("no such backup")

func NewBackupsCmd(env **Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List the saved copies of the shortcuts file",
		Long: `Every save also writes a timestamped copy of the tree to backup_dir. The
newest backups are kept, oldest first in this list.

Examples:
  launcher backups              # List backups
  launcher backups diff 3       # What changed since backup 3
  launcher backups restore 3    # Replace the tree with backup 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *env
			bm := e.Backups()
			if bm == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Backups are disabled")
				return nil
			}
			backups, err := bm.FindBackupsForFile(e.Config.ShortcutsFile)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No backups found")
				return nil
			}
			for i, b := range backups {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %s\n", i+1, b.Timestamp.Format("2006-01-02 15:04:05"), b.SessionID)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <number>",
		Short: "Replace the shortcuts file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *env
			meta, root, err := loadBackup(e, args[0])
			if err != nil {
				return err
			}
			if err := e.Store().Save(root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "diff <number>",
		Short: "Show what changed since a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *env
			_, older, err := loadBackup(e, args[0])
			if err != nil {
				return err
			}
			result := diff.Compare(older, e.Session().Root())
			for _, line := range diff.BuildDiffLines(result) {
				fmt.Fprintln(cmd.OutOrStdout(), colorLine(line))
			}
			return nil
		},
	})

	return cmd
}

// loadBackup reads backup number arg (1 is the oldest)
func loadBackup(e *Env, arg string) (storage.BackupMetadata, *model.Folder, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return storage.BackupMetadata{}, nil, errors.Errorf("backup number %q: %w", arg, err)
	}
	bm := e.Backups()
	if bm == nil {
		return storage.BackupMetadata{}, nil, errors.New("backups are disabled")
	}
	backups, err := bm.FindBackupsForFile(e.Config.ShortcutsFile)
	if err != nil {
		return storage.BackupMetadata{}, nil, err
	}
	if n < 1 || n > len(backups) {
		return storage.BackupMetadata{}, nil, errors.Errorf("%w: %d", ErrNoBackup, n)
	}

	meta := backups[n-1]
	data, err := os.ReadFile(meta.FilePath)
	if err != nil {
		return meta, nil, errors.WithStack(err)
	}
	root, err := model.ParseRoot(data)
	if err != nil {
		return meta, nil, err
	}
	return meta, root, nil
}

func colorLine(line diff.DiffLine) string {
	s := line.String()
	switch line.Type {
	case diff.DiffTypeNewSection, diff.DiffTypeNewItem:
		return color.GreenString(s)
	case diff.DiffTypeDeletedSection, diff.DiffTypeDeletedItem:
		return color.RedString(s)
	case diff.DiffTypeModifiedSection, diff.DiffTypeModifiedItem:
		return color.YellowString(s)
	case diff.DiffTypeSummary:
		return color.New(color.Bold).Sprint(s)
	}
	return s
}
