package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/validate"
)

// ErrInvalid is returned when a validated file has findings
var ErrInvalid = errors.Base("shortcuts file is invalid")

func NewValidateCmd(env **Env) *cobra.Command {
	var warningsOK bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a shortcuts file for structural errors",
		Long: `Check every folder and shortcut of a shortcuts file and report all defects.

Any finding makes the command fail. Missing optional keys are reported as
warnings, which --warnings-ok lets pass.

Examples:
  launcher validate                      # Check the configured file
  launcher validate ~/backup.json        # Check another file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := (*env).Config.ShortcutsFile
			if len(args) == 1 {
				path = args[0]
			}
			return RunValidate(cmd.OutOrStdout(), path, warningsOK)
		},
	}

	cmd.Flags().BoolVar(&warningsOK, "warnings-ok", false, "Succeed when there are only warnings")

	return cmd
}

// RunValidate validates path and prints the findings to w. It returns
// ErrInvalid when there is any finding, or any error finding when
// warningsOK is set.
func RunValidate(w io.Writer, path string, warningsOK bool) error {
	findings, err := validate.ValidateFile(path)
	if err != nil {
		return err
	}
	PrintFindings(w, path, findings, warningsOK)
	if validate.HasErrors(findings) || (len(findings) > 0 && !warningsOK) {
		return errors.WithStack(ErrInvalid)
	}
	return nil
}

// PrintFindings writes one marked line per finding and a summary line
func PrintFindings(w io.Writer, path string, findings []validate.Finding, warningsOK bool) {
	errs := 0
	for _, f := range findings {
		prefix := color.YellowString("!")
		if f.Severity == validate.SeverityError {
			prefix = color.RedString("✗")
			errs++
		}
		fmt.Fprintf(w, "%s %s\n", prefix, f)
	}

	invalid := len(findings)
	if warningsOK {
		invalid = errs
	}
	switch {
	case invalid > 0:
		fmt.Fprintf(w, "%s %s: %d invalid\n", color.RedString("✗"), path, invalid)
	case len(findings) > 0:
		fmt.Fprintf(w, "%s %s: all valid (%d warnings)\n", color.GreenString("✓"), path, len(findings))
	default:
		fmt.Fprintf(w, "%s %s: all valid\n", color.GreenString("✓"), path)
	}
}
