package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bladetrain3r/Magic-Launcher/internal/launch"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/search"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
)

type listOptions struct {
	long      bool
	check     bool
	recursive bool
}

func NewLsCmd(env **Env) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "ls [folder-path...]",
		Aliases: []string{"list"},
		Short:   "List the items of folders",
		Long: `List the items of one or more folders. Paths are "/"-separated from HOME.

Examples:
  launcher ls                       # List HOME
  launcher ls Games/Action          # List a nested folder
  launcher ls -R --check            # Whole tree, marking broken shortcuts
  launcher ls -l Tools              # Full properties of each item`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			if len(args) == 0 {
				args = []string{""}
			}
			out := cmd.OutOrStdout()
			for i, path := range args {
				if err := resolveFolder(sess, path); err != nil {
					return err
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "%s:\n", sess.Breadcrumb())
				}
				listFolder(out, sess.Current(), opts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "Show full properties")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Mark shortcuts whose target cannot be launched")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "R", false, "Descend into subfolders")

	return cmd
}

func listFolder(w io.Writer, folder *model.Folder, opts listOptions) {
	if opts.long {
		first := true
		eachItem(folder, opts.recursive, func(item model.Item, path []string) {
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			if len(path) > 0 {
				fmt.Fprintf(w, "In: %s\n", strings.Join(path, "/"))
			}
			fmt.Fprintln(w, session.Properties(item))
			if opts.check {
				if sc, ok := item.(*model.Shortcut); ok && !launch.Check(sc.Target) {
					fmt.Fprintln(w, "Status: broken")
				}
			}
		})
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	eachItem(folder, opts.recursive, func(item model.Item, path []string) {
		name := strings.Repeat("  ", len(path)) + model.NameOf(item)
		switch it := item.(type) {
		case *model.Folder:
			fmt.Fprintf(tw, "%s\t%s/\t%d items\n", it.Icon, name, it.Len())
		case *model.Shortcut:
			status := ""
			if opts.check && !launch.Check(it.Target) {
				status = "\tBROKEN"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s%s\n", it.Icon, name, strings.TrimSpace(it.Target+" "+it.Args), status)
		}
	})
	tw.Flush()
}

// eachItem visits the children of folder in display order, optionally the
// whole subtree. path is relative to folder.
func eachItem(folder *model.Folder, recursive bool, fn func(model.Item, []string)) {
	if recursive {
		folder.Walk(fn)
		return
	}
	for _, name := range folder.Names() {
		item, _ := folder.Get(name)
		fn(item, nil)
	}
}

func NewSearchCmd(env **Env) *cobra.Command {
	var (
		fuzzy     bool
		substring bool
		query     bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find items anywhere in the tree by name",
		Long: `Find folders and shortcuts whose name matches the query, case-insensitively.

The match mode defaults to the search_mode setting. With --query the
arguments are a filter expression instead:

  word  "two words"   name contains the text
  ~word               fuzzy name match
  /regex/             name matches the regular expression
  kind:folder|shortcut  target:text  args:text  icon:glyph
  in:name             somewhere below a folder whose name contains name
  d:>1  items:0       depth below HOME, number of children of a folder
  a b  a + b  a | b  -a  (a | b)

Examples:
  launcher search doom                                # Substring match
  launcher search --fuzzy gmsact                      # Fuzzy match
  launcher search --query 'kind:shortcut -in:Games'   # Filter expression`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*env).Session()
			switch {
			case fuzzy:
				sess.SetSearchMode(search.ModeFuzzy)
			case substring:
				sess.SetSearchMode(search.ModeSubstring)
			}

			var results []search.Result
			if query {
				var err error
				if results, err = sess.Query(strings.Join(args, " ")); err != nil {
					return err
				}
			} else {
				results = sess.Search(strings.Join(args, " "))
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No results found")
				return nil
			}
			for _, r := range results {
				kind := "shortcut"
				if _, ok := r.Item.(*model.Folder); ok {
					kind = "folder"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.DisplayName, kind)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Fuzzy match (characters in order)")
	cmd.Flags().BoolVar(&substring, "substring", false, "Substring match")
	cmd.Flags().BoolVarP(&query, "query", "q", false, "Treat the arguments as a filter expression")
	cmd.MarkFlagsMutuallyExclusive("fuzzy", "substring", "query")

	return cmd
}
